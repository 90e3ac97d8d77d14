package service

import (
	"context"
	"time"

	"papelog/internal/domain"
)

// Mock implementations for testing

type MockLogger struct{}

func (l *MockLogger) Info(msg string, fields ...interface{})             {}
func (l *MockLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockLogger) Warn(msg string, fields ...interface{})             {}

type MockConfig struct {
	PollInterval time.Duration
}

func (c *MockConfig) GetServerPort() string     { return "8080" }
func (c *MockConfig) GetBackendBaseURL() string { return "http://backend.test" }
func (c *MockConfig) GetLogLevel() string       { return "debug" }
func (c *MockConfig) GetMaxFileSize() int64     { return 50 * 1024 * 1024 }
func (c *MockConfig) GetPollInterval() time.Duration {
	if c.PollInterval > 0 {
		return c.PollInterval
	}
	return time.Hour
}
func (c *MockConfig) GetUploadTimeout() time.Duration { return time.Minute }
func (c *MockConfig) GetTTSLanguage() string          { return "en" }

// MockBackend is a scriptable domain.BackendClient. Unset functions fail the
// call so tests notice unexpected network activity.
type MockBackend struct {
	SubmitParseFunc  func(ctx context.Context, filename string, content []byte) (*domain.ParseAcceptedResponse, error)
	JobStatusFunc    func(ctx context.Context, jobID string) (*domain.ParseStatusResponse, error)
	SummarizeFunc    func(ctx context.Context, text string, maxTokens int) (string, error)
	SynthesizeFunc   func(ctx context.Context, text, language string) ([]byte, string, error)
	SaveToNotionFunc func(ctx context.Context, req *domain.SaveToNotionRequest) (*domain.SaveToNotionResponse, error)
}

func (m *MockBackend) SubmitParse(ctx context.Context, filename string, content []byte) (*domain.ParseAcceptedResponse, error) {
	if m.SubmitParseFunc == nil {
		panic("unexpected SubmitParse call")
	}
	return m.SubmitParseFunc(ctx, filename, content)
}

func (m *MockBackend) JobStatus(ctx context.Context, jobID string) (*domain.ParseStatusResponse, error) {
	if m.JobStatusFunc == nil {
		panic("unexpected JobStatus call")
	}
	return m.JobStatusFunc(ctx, jobID)
}

func (m *MockBackend) Summarize(ctx context.Context, text string, maxTokens int) (string, error) {
	if m.SummarizeFunc == nil {
		panic("unexpected Summarize call")
	}
	return m.SummarizeFunc(ctx, text, maxTokens)
}

func (m *MockBackend) Synthesize(ctx context.Context, text, language string) ([]byte, string, error) {
	if m.SynthesizeFunc == nil {
		panic("unexpected Synthesize call")
	}
	return m.SynthesizeFunc(ctx, text, language)
}

func (m *MockBackend) SaveToNotion(ctx context.Context, req *domain.SaveToNotionRequest) (*domain.SaveToNotionResponse, error) {
	if m.SaveToNotionFunc == nil {
		panic("unexpected SaveToNotion call")
	}
	return m.SaveToNotionFunc(ctx, req)
}

// newTestSession builds a session with PDF validation stubbed out and the
// poller effectively disabled (hour-long interval) so tests drive
// transitions explicitly through ApplyStatus.
func newTestSession(backend *MockBackend) *Session {
	s := NewSession(backend, &MockConfig{}, &MockLogger{})
	s.validate = func(content []byte) (int, error) { return 1, nil }
	return s
}

// resultWithSections builds a minimal terminal payload.
func resultWithSections(heads ...string) *domain.RawResult {
	raw := &domain.RawResult{Meta: &domain.RawMeta{Title: "A Paper"}}
	for _, head := range heads {
		raw.Sections = append(raw.Sections, domain.RawSection{Head: head, Text: "<p>Body of " + head + "</p>"})
	}
	return raw
}

// uploadAndComplete drives a session through upload and a completed poll.
func uploadAndComplete(s *Session, raw *domain.RawResult) {
	backend := s.backend.(*MockBackend)
	backend.SubmitParseFunc = func(ctx context.Context, filename string, content []byte) (*domain.ParseAcceptedResponse, error) {
		return &domain.ParseAcceptedResponse{JobID: "job-1"}, nil
	}
	if err := s.Upload(context.Background(), "paper.pdf", []byte("%PDF-1.4")); err != nil {
		panic(err)
	}
	s.ApplyStatus("job-1", &domain.ParseStatusResponse{
		Status: domain.BackendStatusCompleted,
		Result: raw,
	}, nil)
}
