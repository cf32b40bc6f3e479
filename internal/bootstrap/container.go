package bootstrap

import (
	"context"
	"log"

	"ai-lecture-notes-be/internal/config"
	"ai-lecture-notes-be/internal/controller"
	"ai-lecture-notes-be/internal/handler"
	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/internal/repository/memory"
	"ai-lecture-notes-be/internal/service"
	"ai-lecture-notes-be/internal/websocket"
	"ai-lecture-notes-be/pkg/budget"
	"ai-lecture-notes-be/pkg/capture"
	"ai-lecture-notes-be/pkg/events"
	"ai-lecture-notes-be/pkg/extract"
	"ai-lecture-notes-be/pkg/llm/factory"
	pktNats "ai-lecture-notes-be/pkg/nats"
	"ai-lecture-notes-be/pkg/qa"
	"ai-lecture-notes-be/pkg/synthesis"
	"ai-lecture-notes-be/pkg/transcription"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionEventsTopic = "session_events"

type Container struct {
	// Controllers
	SessionController    controller.ISessionController
	ResourceController   controller.IResourceController
	PreferenceController controller.IPreferenceController
	NoteController       controller.INoteController
	ChatController       controller.IChatController
	ActivityController   controller.IActivityController

	CaptureHandler *handler.CaptureHandler
	WebSocketHub   *websocket.Hub

	// Background services, run by main.go
	ConsumerService service.IConsumerService
	ActivityService service.IActivityService

	Logger logger.ILogger

	closers []func()
}

// Engines holds the domain components shared by the server and the CLI.
type Engines struct {
	Synthesis   *synthesis.Engine
	QA          *qa.Engine
	Transcriber transcription.Transcriber
}

// NewEngines builds generation and transcription from configuration.
func NewEngines(ctx context.Context, cfg *config.Config, sysLogger, captureLogger logger.ILogger) (*Engines, error) {
	llmProvider, err := factory.NewLLMProvider(ctx, cfg.Ai)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	transcriber, err := transcription.NewTranscriber(ctx, cfg.Ai, cfg.Capture.SampleRate, captureLogger)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] Using Transcription Provider: %s", cfg.Ai.TranscriptionProvider)

	b := cfg.Budget
	synthesisLimits := budget.SynthesisLimits().WithCeilings(b.SynthesisTranscript, b.SynthesisPerResource, b.SynthesisResourcesTotal, 0)
	qaLimits := budget.QALimits().WithCeilings(b.QATranscript, b.QAPerResource, b.QAResourcesTotal, b.QANotes)

	return &Engines{
		Synthesis:   synthesis.NewEngine(llmProvider, synthesisLimits, cfg.Timeouts.Synthesis, sysLogger),
		QA:          qa.NewEngine(llmProvider, qaLimits, cfg.Timeouts.QA, sysLogger),
		Transcriber: transcriber,
	}, nil
}

func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	captureLogger := logger.NewIsolatedLogger(cfg.App.CaptureLogFilePath)

	if err := extract.ConfigureLicense(cfg.App.UnidocLicenseKey); err != nil {
		log.Printf("[WARN] PDF support unavailable: %v", err)
	}

	engines, err := NewEngines(ctx, cfg, sysLogger, captureLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize AI providers: %v", err)
	}

	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// NATS is optional; without it domain events are dropped.
	var eventPublisher events.Publisher = events.NopPublisher{}
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}

		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			c.ActivityService = service.NewActivityService(natsSub, sysLogger)
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// Redis is optional; without it the hub serves this instance only.
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	c.WebSocketHub = websocket.NewHub(rdb, uuid.NewString(), wsLogger)

	// 3. Services
	sessionRepo := memory.NewSessionRepository(cfg.App.SessionTTL)

	publisherService := service.NewPublisherService(sessionEventsTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, sessionEventsTopic, c.WebSocketHub, sysLogger)

	sessionService := service.NewSessionService(sessionRepo)
	resourceService := service.NewResourceService(sessionRepo, sysLogger)
	preferenceService := service.NewPreferenceService(sessionRepo)
	noteService := service.NewNoteService(sessionRepo, engines.Synthesis, publisherService, eventPublisher, sysLogger)
	chatService := service.NewChatService(sessionRepo, engines.QA, eventPublisher, sysLogger)
	captureService := service.NewCaptureService(
		sessionRepo,
		engines.Transcriber,
		engines.Synthesis,
		publisherService,
		eventPublisher,
		capture.Config{QueueSize: cfg.Capture.QueueSize, MIMEType: transcription.PCMMimeTypeFor(cfg.Capture.SampleRate)},
		captureLogger,
	)

	// 4. Controllers
	c.SessionController = controller.NewSessionController(sessionService)
	c.ResourceController = controller.NewResourceController(resourceService)
	c.PreferenceController = controller.NewPreferenceController(preferenceService)
	c.NoteController = controller.NewNoteController(noteService)
	c.ChatController = controller.NewChatController(chatService)
	if c.ActivityService != nil {
		c.ActivityController = controller.NewActivityController(c.ActivityService)
	}
	c.CaptureHandler = handler.NewCaptureHandler(captureService, sessionService, c.WebSocketHub, cfg.Capture.QueueSize, wsLogger)

	return c
}

// Close releases bus and cache connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
