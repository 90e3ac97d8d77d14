package domain

import (
	"context"
	"time"
)

// BackendClient is the outbound interface to the parsing backend. Every
// non-trivial computation (structural parsing, summarization, speech
// synthesis, persistence) lives behind these five calls.
type BackendClient interface {
	SubmitParse(ctx context.Context, filename string, content []byte) (*ParseAcceptedResponse, error)
	JobStatus(ctx context.Context, jobID string) (*ParseStatusResponse, error)
	Summarize(ctx context.Context, text string, maxTokens int) (string, error)
	Synthesize(ctx context.Context, text, language string) (data []byte, mime string, err error)
	SaveToNotion(ctx context.Context, req *SaveToNotionRequest) (*SaveToNotionResponse, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetBackendBaseURL() string
	GetLogLevel() string
	GetMaxFileSize() int64
	GetPollInterval() time.Duration
	GetUploadTimeout() time.Duration
	GetTTSLanguage() string
}
