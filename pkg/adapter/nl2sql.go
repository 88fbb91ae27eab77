package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mkino/larder/pkg/model"
)

// Translator is the interface for the NL→SQL code-generation service. A
// returned QueryResult with a non-empty Error field is a SQL-level failure,
// which is a normal outcome; a non-nil error return is a transport failure.
type Translator interface {
	Translate(ctx context.Context, question string) (*model.QueryResult, error)
}

type TranslatorClient struct {
	endpoint   string
	httpClient *http.Client
}

type TranslatorOption func(*TranslatorClient)

func WithTranslatorHTTPClient(client *http.Client) TranslatorOption {
	return func(c *TranslatorClient) {
		c.httpClient = client
	}
}

// NewTranslator creates a client for the NL→SQL endpoint.
func NewTranslator(endpoint string, opts ...TranslatorOption) *TranslatorClient {
	c := &TranslatorClient{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *TranslatorClient) Translate(ctx context.Context, question string) (*model.QueryResult, error) {
	body, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal question")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call nl2sql endpoint")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read nl2sql response")
	}

	var result model.QueryResult
	if err := json.Unmarshal(raw, &result); err == nil && result.IsError() {
		// SQL-level failures come back with a structured error field, possibly
		// on a non-2xx status. They are results, not transport errors.
		return &result, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, goerr.New("nl2sql endpoint returned error",
			goerr.Value("status", resp.StatusCode),
			goerr.Value("body", string(raw)),
		)
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal nl2sql response", goerr.Value("body", string(raw)))
	}

	return &result, nil
}
