package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"notesum-be/pkg/summarizer"
)

// HuggingFaceProvider calls a hosted summarization model (BART style) on the
// HuggingFace inference API. The API key is held here and never leaves the
// process; error paths must not include it in messages or logs.
type HuggingFaceProvider struct {
	apiKey   string
	modelURL string
	client   *http.Client
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// The inference API answers with either a result array or an error object.
type inferenceResult struct {
	SummaryText string `json:"summary_text"`
}

type inferenceError struct {
	Error string `json:"error"`
}

func NewHuggingFaceProvider(apiKey, modelURL string) *HuggingFaceProvider {
	if modelURL == "" {
		modelURL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"
	}
	return &HuggingFaceProvider{
		apiKey:   apiKey,
		modelURL: modelURL,
		client:   &http.Client{},
	}
}

func (p *HuggingFaceProvider) Summarize(ctx context.Context, text string) (string, error) {
	jsonData, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.modelURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	// A model-level error (warm-up, overload) comes back as an error object,
	// sometimes with a 200 status. Check the shape before the status code.
	var inferErr inferenceError
	if err := json.Unmarshal(bodyBytes, &inferErr); err == nil && inferErr.Error != "" {
		return "", &summarizer.UnavailableError{Message: inferErr.Error}
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("huggingface api error (status %d)", resp.StatusCode)
	}

	// The request itself succeeded past this point. A body that isn't a
	// result array, or an empty one, means nothing usable came back; let
	// the caller pick a fallback instead of failing the request.
	var results []inferenceResult
	if err := json.Unmarshal(bodyBytes, &results); err != nil {
		return "", nil
	}
	if len(results) == 0 {
		return "", nil
	}

	return results[0].SummaryText, nil
}
