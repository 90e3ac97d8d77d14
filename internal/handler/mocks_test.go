package handler

import (
	"context"
	"errors"
	"time"

	"papelog/internal/config"
	"papelog/internal/domain"
	"papelog/internal/service"
)

// Mock implementations for handler tests. The backend always errors: these
// tests exercise routing and request plumbing, not parse flows.

type MockBackend struct{}

func (m *MockBackend) SubmitParse(ctx context.Context, filename string, content []byte) (*domain.ParseAcceptedResponse, error) {
	return nil, errors.New("backend unavailable")
}

func (m *MockBackend) JobStatus(ctx context.Context, jobID string) (*domain.ParseStatusResponse, error) {
	return nil, errors.New("backend unavailable")
}

func (m *MockBackend) Summarize(ctx context.Context, text string, maxTokens int) (string, error) {
	return "", errors.New("backend unavailable")
}

func (m *MockBackend) Synthesize(ctx context.Context, text, language string) ([]byte, string, error) {
	return nil, "", errors.New("backend unavailable")
}

func (m *MockBackend) SaveToNotion(ctx context.Context, req *domain.SaveToNotionRequest) (*domain.SaveToNotionResponse, error) {
	return nil, errors.New("backend unavailable")
}

type MockConfig struct{}

func (c *MockConfig) GetServerPort() string           { return "8080" }
func (c *MockConfig) GetBackendBaseURL() string       { return "http://backend.test" }
func (c *MockConfig) GetLogLevel() string             { return "debug" }
func (c *MockConfig) GetMaxFileSize() int64           { return 1 << 20 }
func (c *MockConfig) GetPollInterval() time.Duration  { return time.Hour }
func (c *MockConfig) GetUploadTimeout() time.Duration { return time.Minute }
func (c *MockConfig) GetTTSLanguage() string          { return "en" }

func newTestContainer() *config.Container {
	cfg := &MockConfig{}
	logger := NewMockHandlerLogger()
	backend := &MockBackend{}
	session := service.NewSession(backend, cfg, logger)
	navigation := service.NewNavigationTracker(session, logger)
	return &config.Container{
		Config:     cfg,
		Logger:     logger,
		Backend:    backend,
		Session:    session,
		Navigation: navigation,
	}
}
