package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// PredictResponse is the classification endpoint's reply for a cup photo
type PredictResponse struct {
	Result      string  `json:"result"`
	Probability float64 `json:"probability"`
}

// DetectResponse is the detection endpoint's reply for a trash-bin photo
type DetectResponse struct {
	Detected bool `json:"detected"`
}

// InferenceClient calls the remote classification/detection service
type InferenceClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewInferenceClient builds a client for the inference service at baseURL
func NewInferenceClient(baseURL string, timeout time.Duration) *InferenceClient {
	return &InferenceClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Predict submits a cup photo to POST /predict as multipart field "file"
func (c *InferenceClient) Predict(ctx context.Context, filename string, image []byte) (*PredictResponse, error) {
	body, err := c.postImage(ctx, "/predict", "file", filename, image)
	if err != nil {
		return nil, err
	}

	var result PredictResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode predict response: %w", err)
	}
	return &result, nil
}

// Detect submits a trash-bin photo to POST /detect as multipart field "image"
func (c *InferenceClient) Detect(ctx context.Context, filename string, image []byte) (*DetectResponse, error) {
	body, err := c.postImage(ctx, "/detect", "image", filename, image)
	if err != nil {
		return nil, err
	}

	var result DetectResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode detect response: %w", err)
	}
	return &result, nil
}

func (c *InferenceClient) postImage(ctx context.Context, path, field, filename string, image []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to write image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read inference response: %w", err)
	}
	return body, nil
}
