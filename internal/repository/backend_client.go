// Package repository provides the outbound HTTP client for the parsing backend.
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"papelog/internal/domain"
)

// BackendClient implements domain.BackendClient over one configurable base URL.
type BackendClient struct {
	config domain.Config
	logger domain.Logger
	client *http.Client
}

// NewBackendClient creates a new parsing-backend client. Call deadlines come
// from the caller's context, so the underlying client carries no timeout of
// its own.
func NewBackendClient(config domain.Config, logger domain.Logger) domain.BackendClient {
	return &BackendClient{
		config: config,
		logger: logger,
		client: &http.Client{},
	}
}

// SubmitParse uploads a PDF for asynchronous structural parsing and returns
// the job handle issued by the backend.
func (c *BackendClient) SubmitParse(ctx context.Context, filename string, content []byte) (*domain.ParseAcceptedResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.GetBackendBaseURL()+"/api/parse_async", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(resp)
	}

	var accepted domain.ParseAcceptedResponse
	if err := json.NewDecoder(resp.Body).Decode(&accepted); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return &accepted, nil
}

// JobStatus polls the status of one parse job. A 404 from the status endpoint
// maps to domain.ErrJobNotFound so callers can distinguish it from other
// transport failures.
func (c *BackendClient) JobStatus(ctx context.Context, jobID string) (*domain.ParseStatusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.GetBackendBaseURL()+"/api/parse_status/"+jobID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrJobNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(resp)
	}

	var status domain.ParseStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}
	return &status, nil
}

// Summarize asks the backend AI for a summary of arbitrary text.
func (c *BackendClient) Summarize(ctx context.Context, text string, maxTokens int) (string, error) {
	payload := map[string]interface{}{
		"text":       text,
		"max_tokens": maxTokens,
	}

	resp, err := c.postJSON(ctx, "/summarize", payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errorFromResponse(resp)
	}

	var result domain.SummarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode summary response: %w", err)
	}
	return result.Summary, nil
}

// Synthesize converts text to speech and returns the binary audio payload.
func (c *BackendClient) Synthesize(ctx context.Context, text, language string) ([]byte, string, error) {
	payload := map[string]interface{}{
		"text":     text,
		"language": language,
	}

	resp, err := c.postJSON(ctx, "/tts", payload)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", errorFromResponse(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read audio payload: %w", err)
	}
	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = "audio/mpeg"
	}
	return data, mime, nil
}

// SaveToNotion persists a curated record through the backend.
func (c *BackendClient) SaveToNotion(ctx context.Context, record *domain.SaveToNotionRequest) (*domain.SaveToNotionResponse, error) {
	resp, err := c.postJSON(ctx, "/api/save_to_notion", record)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorFromResponse(resp)
	}

	var result domain.SaveToNotionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode save response: %w", err)
	}
	return &result, nil
}

func (c *BackendClient) postJSON(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.GetBackendBaseURL()+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	return resp, nil
}

// errorFromResponse derives a human-readable error from a non-2xx response:
// a structured "detail" (or "error") field in the body wins, then the HTTP
// status text.
func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))

	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return fmt.Errorf("%s (status %d)", payload.Detail, resp.StatusCode)
		}
		if payload.Error != "" {
			return fmt.Errorf("%s (status %d)", payload.Error, resp.StatusCode)
		}
	}
	return fmt.Errorf("%s (status %d)", http.StatusText(resp.StatusCode), resp.StatusCode)
}
