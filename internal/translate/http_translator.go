package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

// HTTPTranslator talks to a LibreTranslate-compatible /translate endpoint.
type HTTPTranslator struct {
	baseURL string
	httpc   *http.Client
}

var _ Translator = (*HTTPTranslator)(nil)

func NewHTTPTranslator(baseURL string) *HTTPTranslator {
	return &HTTPTranslator{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: requestTimeout},
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate sends one text to the backend and returns the translated form.
func (t *HTTPTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	reqBody := translateRequest{
		Q:      text,
		Source: "auto",
		Target: targetLang,
		Format: "text",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal translate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/translate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("create translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read translate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate service error (status %d): %s", resp.StatusCode, string(body))
	}

	var tr translateResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", fmt.Errorf("parse translate response: %w", err)
	}
	return tr.TranslatedText, nil
}
