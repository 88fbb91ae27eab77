package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
)

// LLM is the interface for the general-purpose language model endpoint. It is
// used for intent classification, query optimization and explanation as three
// independent calls; no session state is carried between them.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type LLMClient struct {
	endpoint   string
	httpClient *http.Client
}

type LLMOption func(*LLMClient)

func WithLLMHTTPClient(client *http.Client) LLMOption {
	return func(c *LLMClient) {
		c.httpClient = client
	}
}

// NewLLM creates a client for a generate endpoint speaking
// `POST {"prompt": ...}` → `{"text": ...}`.
func NewLLM(endpoint string, opts ...LLMOption) *LLMClient {
	c := &LLMClient{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *LLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal prompt")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to call llm endpoint")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read llm response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Error string `json:"error"`
		}
		msg := string(raw)
		if json.Unmarshal(raw, &errBody) == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return "", goerr.New("llm endpoint returned error",
			goerr.Value("status", resp.StatusCode),
			goerr.Value("message", msg),
		)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", goerr.Wrap(err, "failed to unmarshal llm response", goerr.Value("body", string(raw)))
	}

	return out.Text, nil
}
