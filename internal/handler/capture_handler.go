package handler

import (
	"context"
	"encoding/json"
	"errors"

	"ai-lecture-notes-be/internal/dto"
	"ai-lecture-notes-be/internal/pkg/logger"
	"ai-lecture-notes-be/internal/pkg/serverutils"
	"ai-lecture-notes-be/internal/service"
	internalWS "ai-lecture-notes-be/internal/websocket"
	"ai-lecture-notes-be/pkg/audio"
	"ai-lecture-notes-be/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// CaptureHandler serves the live capture socket. Text frames carry
// start/stop control messages, binary frames carry float32 LE samples, and
// session events flow back through the hub.
type CaptureHandler struct {
	captureService service.ICaptureService
	sessionService service.ISessionService
	hub            *internalWS.Hub
	sourceBuffer   int
	logger         logger.ILogger
}

func NewCaptureHandler(
	captureService service.ICaptureService,
	sessionService service.ISessionService,
	hub *internalWS.Hub,
	sourceBuffer int,
	log logger.ILogger,
) *CaptureHandler {
	return &CaptureHandler{
		captureService: captureService,
		sessionService: sessionService,
		hub:            hub,
		sourceBuffer:   sourceBuffer,
		logger:         log,
	}
}

func (h *CaptureHandler) ServeWs(c *fiber.Ctx) error {
	sessionId := c.Params("id")
	if _, err := h.sessionService.Show(c.UserContext(), sessionId); err != nil {
		return err
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("CaptureHandler", "Capture socket opened", map[string]interface{}{"session_id": sessionId})

		cc := &captureConn{handler: h, sessionId: sessionId}
		internalWS.ServeWs(h.hub, conn, sessionId, cc.handle)
		cc.disconnected()

		h.logger.Info("CaptureHandler", "Capture socket closed", map[string]interface{}{"session_id": sessionId})
	})(c)
}

func (h *CaptureHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	ws := router.Group("/ws/session")
	ws.Use(guard)
	ws.Get("/:id/capture", h.ServeWs)
}

func (h *CaptureHandler) sendError(sessionId, message string) {
	data, _ := json.Marshal(dto.SessionEvent{
		Type:      dto.SessionEventError,
		SessionId: sessionId,
		Message:   message,
	})
	h.hub.SendToSession(sessionId, data)
}

// captureConn is the per-socket state. It is only touched from the
// socket's reading goroutine.
type captureConn struct {
	handler   *CaptureHandler
	sessionId string
	source    *audio.StreamSource
}

func (cc *captureConn) handle(messageType int, data []byte) {
	switch messageType {
	case websocket.TextMessage:
		var msg dto.CaptureControlMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			cc.handler.sendError(cc.sessionId, "invalid control message")
			return
		}
		if err := serverutils.ValidateRequest(msg); err != nil {
			cc.handler.sendError(cc.sessionId, err.Error())
			return
		}
		switch msg.Type {
		case dto.CaptureControlStart:
			cc.start()
		case dto.CaptureControlStop:
			cc.stop()
		}

	case websocket.BinaryMessage:
		cc.push(data)
	}
}

func (cc *captureConn) start() {
	src := audio.NewStreamSource(cc.handler.sourceBuffer)
	if err := cc.handler.captureService.Start(context.Background(), cc.sessionId, src); err != nil {
		cc.handler.sendError(cc.sessionId, err.Error())
		return
	}
	cc.source = src
}

// stop synthesizes off the reading goroutine so pings keep flowing.
func (cc *captureConn) stop() {
	cc.source = nil
	go func() {
		_, err := cc.handler.captureService.Stop(context.Background(), cc.sessionId)
		// synthesis failures already reached watchers through the recorder
		if errors.Is(err, session.ErrCaptureBusy) || errors.Is(err, session.ErrSessionNotFound) {
			cc.handler.sendError(cc.sessionId, err.Error())
		}
	}()
}

func (cc *captureConn) push(data []byte) {
	if cc.source == nil {
		cc.handler.sendError(cc.sessionId, "capture is not running")
		return
	}
	samples, err := audio.DecodeFloat32LE(data)
	if err != nil {
		cc.handler.sendError(cc.sessionId, err.Error())
		return
	}
	if err := cc.source.Push(context.Background(), samples); err != nil {
		// the capture ended on its own, e.g. the transcriber dropped
		cc.source = nil
	}
}

// disconnected finishes a capture the peer left running; what was heard
// so far still becomes notes.
func (cc *captureConn) disconnected() {
	if cc.source == nil {
		return
	}
	cc.stop()
}
