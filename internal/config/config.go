package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Ai       AIConfig
	Budget   BudgetConfig
	Capture  CaptureConfig
	Timeouts TimeoutConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CaptureLogFilePath string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	SessionTTL         time.Duration
	UnidocLicenseKey   string
	OtelEnabled        bool
	OtelEndpoint       string
}

type AIConfig struct {
	LLMProvider    string // "gemini", "ollama" or "huggingface"
	LLMModel       string
	OllamaBaseURL  string
	GeminiAPIKey   string
	HuggingFaceKey string

	TranscriptionProvider string // "gemini" or "yandex"
	TranscriptionModel    string
	YandexIAMToken        string
	YandexFolderID        string
	YandexLanguage        string
}

// BudgetConfig holds the character ceilings applied before prompt assembly.
type BudgetConfig struct {
	SynthesisTranscript     int
	SynthesisPerResource    int
	SynthesisResourcesTotal int
	QATranscript            int
	QAPerResource           int
	QAResourcesTotal        int
	QANotes                 int
}

type CaptureConfig struct {
	SampleRate      int
	FramesPerBuffer int
	QueueSize       int
}

type TimeoutConfig struct {
	Synthesis time.Duration
	QA        time.Duration
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CaptureLogFilePath: getEnv("CAPTURE_LOG_FILE_PATH", "logs/capture.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			SessionTTL:         getEnvAsDuration("SESSION_TTL", 6*time.Hour),
			UnidocLicenseKey:   getEnv("UNIDOC_LICENSE_KEY", ""),
			OtelEnabled:        getEnv("OTEL_ENABLED", "false") == "true",
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Ai: AIConfig{
			LLMProvider:           getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:              getEnv("LLM_MODEL", "gemini-3-flash-preview"),
			OllamaBaseURL:         getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GeminiAPIKey:          getEnv("GOOGLE_GEMINI_API_KEY", ""),
			HuggingFaceKey:        getEnv("HUGGINGFACE_API_KEY", ""),
			TranscriptionProvider: getEnv("TRANSCRIPTION_PROVIDER", "gemini"),
			TranscriptionModel:    getEnv("TRANSCRIPTION_MODEL", "gemini-2.5-flash-native-audio-preview-09-2025"),
			YandexIAMToken:        getEnv("YANDEX_IAM_TOKEN", ""),
			YandexFolderID:        getEnv("YANDEX_FOLDER_ID", ""),
			YandexLanguage:        getEnv("YANDEX_LANGUAGE", "en-US"),
		},
		Budget: BudgetConfig{
			SynthesisTranscript:     getEnvAsInt("BUDGET_SYNTHESIS_TRANSCRIPT", 1_500_000),
			SynthesisPerResource:    getEnvAsInt("BUDGET_SYNTHESIS_PER_RESOURCE", 300_000),
			SynthesisResourcesTotal: getEnvAsInt("BUDGET_SYNTHESIS_RESOURCES_TOTAL", 1_500_000),
			QATranscript:            getEnvAsInt("BUDGET_QA_TRANSCRIPT", 1_000_000),
			QAPerResource:           getEnvAsInt("BUDGET_QA_PER_RESOURCE", 200_000),
			QAResourcesTotal:        getEnvAsInt("BUDGET_QA_RESOURCES_TOTAL", 1_000_000),
			QANotes:                 getEnvAsInt("BUDGET_QA_NOTES", 500_000),
		},
		Capture: CaptureConfig{
			SampleRate:      getEnvAsInt("CAPTURE_SAMPLE_RATE", 16000),
			FramesPerBuffer: getEnvAsInt("CAPTURE_FRAMES_PER_BUFFER", 4096),
			QueueSize:       getEnvAsInt("CAPTURE_QUEUE_SIZE", 256),
		},
		Timeouts: TimeoutConfig{
			Synthesis: getEnvAsDuration("SYNTHESIS_TIMEOUT", 3*time.Minute),
			QA:        getEnvAsDuration("QA_TIMEOUT", 2*time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
