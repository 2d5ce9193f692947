package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Transcription
	WhisperModel string // path or selector for the whisper.cpp model to load once per process

	// Paths
	OutputDir string
	TempDir   string
	FontPath  string // optional TTF/OTF for subtitle rasterisation; empty = fall through to system/embedded font

	// Face detection
	FaceModelPath   string // DNN face detector weights (e.g. res10_300x300_ssd .caffemodel)
	FaceConfigPath  string // DNN face detector config (.prototxt)
	HaarCascadePath string // Haar cascade XML: fallback on frames where the DNN model finds nothing, sole detector if the DNN model fails to load

	// Segment selection
	MaxClips     int
	ClipDuration int // target clip duration in seconds; loaded but not passed to the prompt or any stage

	// LLM endpoint
	LLMBaseURL      string
	LLMModel        string
	LLMTimeout      time.Duration // llm_analysis_timeout
	LLMTestTimeout  time.Duration // llm_test_timeout
	LLMMaxRetries   int
	LLMRetryBackoff time.Duration

	// Renderer
	RenderParallel bool          // false = sequential renderer loop (spec default); true = bounded worker pool
	RenderWorkers  int           // bounded worker-pool size when RenderParallel is set
	EncodeTimeout  time.Duration // per-encode timeout
	MaxVideoLength time.Duration // max_video_duration
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		WhisperModel:    getEnv("WHISPER_MODEL", "ggml-base.en.bin"),
		OutputDir:       getEnv("OUTPUT_DIR", "./output"),
		TempDir:         getEnv("TEMP_DIR", os.TempDir()),
		FontPath:        getEnv("SUBTITLE_FONT_PATH", ""),
		FaceModelPath:   getEnv("FACE_MODEL_PATH", "models/res10_300x300_ssd_iter_140000.caffemodel"),
		FaceConfigPath:  getEnv("FACE_CONFIG_PATH", "models/deploy.prototxt"),
		HaarCascadePath: getEnv("HAAR_CASCADE_PATH", "models/haarcascade_frontalface_default.xml"),
		MaxClips:        getEnvInt("MAX_CLIPS", 5),
		ClipDuration:    getEnvInt("CLIP_DURATION", 45),
		LLMBaseURL:      getEnv("LLM_BASE_URL", "http://localhost:11434"),
		LLMModel:        getEnv("LLM_MODEL", "llama3.1:8b-instruct-q6_K"),
		LLMTimeout:      getEnvSeconds("LLM_TIMEOUT", 7200),
		LLMTestTimeout:  getEnvSeconds("LLM_TEST_TIMEOUT", 300),
		LLMMaxRetries:   getEnvInt("LLM_MAX_RETRIES", 3),
		LLMRetryBackoff: getEnvSeconds("LLM_RETRY_BACKOFF", 300),
		RenderParallel:  getEnvBool("RENDER_PARALLEL", false),
		RenderWorkers:   getEnvInt("RENDER_WORKERS", 2),
		EncodeTimeout:   getEnvSeconds("ENCODE_TIMEOUT", 1800),
		MaxVideoLength:  getEnvSeconds("MAX_VIDEO_DURATION", 3600),
	}

	if cfg.LLMBaseURL == "" {
		return nil, fmt.Errorf("LLM_BASE_URL is required")
	}

	if cfg.WhisperModel == "" {
		return nil, fmt.Errorf("WHISPER_MODEL is required")
	}

	if cfg.MaxClips <= 0 {
		return nil, fmt.Errorf("MAX_CLIPS must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds)) * time.Second
}
