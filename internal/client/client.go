// Package client talks to the resume API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-radar/internal/apperrors"
	"alfredoptarigan/resume-radar/internal/logger"
	"alfredoptarigan/resume-radar/internal/models"
)

const (
	contentType = "application/json"

	savePath = "/api/resumes/save"
	listPath = "/api/resumes/getresumes"
)

// APIError is a non-success answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Message, e.Detail)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New returns a client for the backend at baseURL. A nil httpClient gets a 30 second timeout.
func New(baseURL string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger.OrNop(log),
	}
}

// SaveResume posts a merged record to the ingestion endpoint.
func (c *Client) SaveResume(ctx context.Context, record map[string]any) (*models.Resume, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return nil, apperrors.InvalidInput("failed to encode resume", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+savePath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var response models.SaveResumeResponse
	if err := c.do(req, http.StatusCreated, &response); err != nil {
		return nil, apperrors.StoreFailed("Failed to save resume", err)
	}
	if response.Resume == nil {
		return nil, apperrors.StoreFailed("Failed to save resume", fmt.Errorf("response carried no resume"))
	}

	c.logger.Debug("resume saved", zap.String("id", response.Resume.ID.String()))
	return response.Resume, nil
}

// ListResumes fetches every stored resume.
func (c *Client) ListResumes(ctx context.Context) ([]models.Resume, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+listPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", contentType)

	resumes := []models.Resume{}
	if err := c.do(req, http.StatusOK, &resumes); err != nil {
		return nil, err
	}
	if resumes == nil {
		resumes = []models.Resume{}
	}

	c.logger.Debug("resumes fetched", zap.Int("count", len(resumes)))
	return resumes, nil
}

func (c *Client) do(req *http.Request, want int, out any) error {
	c.logger.Debug("sending request", zap.String("method", req.Method), zap.String("url", req.URL.String()))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != want {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		var body models.ErrorResponse
		if json.Unmarshal(raw, &body) == nil && body.Message != "" {
			apiErr.Message = body.Message
			apiErr.Detail = body.Error
		}
		return apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
