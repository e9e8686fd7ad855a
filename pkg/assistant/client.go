package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	pkgerrors "github.com/brewdeck/brewdeck-backend/pkg/errors"
)

const (
	defaultBaseURL              = "https://generativelanguage.googleapis.com"
	defaultModel                = "gemini-2.5-flash"
	responseBodyReadLimit int64 = 4096
)

var errAPIKeyRequired = errors.New("assistant api key is required")

// Client wraps the generative language API used for the barista assistant.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithModel overrides the default model name.
func WithModel(model string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(model)
		if trimmed != "" {
			c.model = trimmed
		}
	}
}

// NewClient builds the assistant client given an API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	trimmedKey := strings.TrimSpace(apiKey)
	if trimmedKey == "" {
		return nil, errAPIKeyRequired
	}

	client := &Client{
		apiKey:     trimmedKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.model == "" {
		client.model = defaultModel
	}

	return client, nil
}

// GenerateContent sends a prompt and returns the model's text reply.
// Rate-limited and 5xx responses retry with a short backoff before the
// dependency error surfaces to the caller.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "assistant client not configured")
	}
	if strings.TrimSpace(prompt) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "prompt is required")
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal generate request")
	}

	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(200*time.Millisecond))
	var text string
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		reply, status, callErr := c.generateOnce(ctx, payload)
		if callErr != nil {
			if status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
				return retry.RetryableError(callErr)
			}
			return callErr
		}
		text = reply
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *Client) generateOnce(ctx context.Context, payload []byte) (string, int, error) {
	endpoint := fmt.Sprintf(
		"%s/v1beta/models/%s:generateContent",
		strings.TrimRight(c.baseURL, "/"),
		url.PathEscape(c.model),
	)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build generate request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", http.StatusBadGateway, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assistant network error")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
		body := strings.TrimSpace(string(msg))
		if isCredentialFailure(resp.StatusCode, body) {
			return "", resp.StatusCode, pkgerrors.Wrap(
				pkgerrors.CodeUnauthorized,
				fmt.Errorf("status %d: %s", resp.StatusCode, body),
				"assistant api key rejected",
			)
		}
		return "", resp.StatusCode, pkgerrors.Wrap(
			pkgerrors.CodeDependency,
			fmt.Errorf("status %d: %s", resp.StatusCode, body),
			"generate request failed",
		)
	}

	var apiResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", resp.StatusCode, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode generate response")
	}

	text := apiResp.Text()
	if text == "" {
		return "", resp.StatusCode, pkgerrors.New(pkgerrors.CodeDependency, "assistant returned no candidates")
	}
	return text, resp.StatusCode, nil
}

func isCredentialFailure(status int, body string) bool {
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return true
	}
	return strings.Contains(strings.ToLower(body), "api key not valid")
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Text flattens the first candidate's parts into a single reply string.
func (r generateResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String())
}
