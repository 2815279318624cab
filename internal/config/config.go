package config

import (
	"os"
	"strconv"
	"strings"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// BlobDriver picks where uploaded book files live: fs|gcs.
	BlobDriver   string
	BlobBasePath string // fs driver
	BlobBucket   string // gcs driver
	BlobBaseURL  string // public URL prefix for served files

	// Extractor picks the text extraction backend: plain|docai.
	Extractor        string
	DocAIProjectID   string
	DocAILocation    string
	DocAIProcessorID string

	// Generative text service.
	AIBaseURL string
	AIModel   string
	AIAPIKey  string

	// Question generation defaults.
	DefaultQuestionCount int
	PromptCharBudget     int

	// Report rendering; disabled when the font path is empty.
	ReportFont string

	CORSOrigins []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Mode:     mode,
		HTTPAddr: addr,

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		BlobDriver:   envOr("BLOB_DRIVER", "fs"),
		BlobBasePath: envOr("BLOB_BASE_PATH", "./data"),
		BlobBucket:   os.Getenv("BLOB_BUCKET"),
		BlobBaseURL:  envOr("BLOB_BASE_URL", "http://localhost:8080/api/files"),

		Extractor:        envOr("EXTRACTOR", "plain"),
		DocAIProjectID:   os.Getenv("DOCAI_PROJECT_ID"),
		DocAILocation:    envOr("DOCAI_LOCATION", "us"),
		DocAIProcessorID: os.Getenv("DOCAI_PROCESSOR_ID"),

		AIBaseURL: envOr("AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		AIModel:   envOr("AI_MODEL", "gemini-1.5-flash"),
		AIAPIKey:  os.Getenv("AI_API_KEY"),

		DefaultQuestionCount: envInt("DEFAULT_QUESTION_COUNT", 40),
		PromptCharBudget:     envInt("PROMPT_CHAR_BUDGET", 12000),

		ReportFont: os.Getenv("REPORT_FONT"),

		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
