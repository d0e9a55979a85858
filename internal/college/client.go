// Package college talks to the external college-data backend that owns
// prediction, comparison and search.
package college

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/margadarshak/margadarshak-api/internal"
)

const (
	DefaultAutocompleteLimit = 8
	MaxAutocompleteLimit     = 50
	MinAutocompleteQuery     = 2
)

// BackendError is a non-2xx answer from the backend, relayed as-is.
type BackendError struct {
	Status int
	Body   []byte
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("college backend returned %d", e.Status)
}

// Client implements the backend calls with resty.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	log = log.With().Str("component", "college").Logger()
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	c.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
		log.Debug().
			Int("status", r.StatusCode()).
			Str("method", r.Request.Method).
			Str("url", r.Request.URL).
			Dur("latency", r.Time()).
			Msg("college backend request")
		return nil
	})
	return &Client{http: c, log: log}
}

// Predict forwards an eligibility query and returns the backend JSON untouched.
func (c *Client) Predict(ctx context.Context, req internal.PredictRequest) (json.RawMessage, error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(req).Post("/api/predict-colleges")
	return c.raw(resp, err, "predict")
}

// Compare forwards a comparison request and returns the backend JSON untouched.
func (c *Client) Compare(ctx context.Context, req internal.CompareRequest) (json.RawMessage, error) {
	req.UserID = ""
	resp, err := c.http.R().SetContext(ctx).SetBody(req).Post("/api/colleges/compare")
	return c.raw(resp, err, "compare")
}

// Autocomplete returns name suggestions. Queries shorter than two characters
// are answered locally with no suggestions.
func (c *Client) Autocomplete(ctx context.Context, query string, limit int) (internal.AutocompleteResponse, error) {
	if len([]rune(query)) < MinAutocompleteQuery {
		return internal.AutocompleteResponse{Success: true, Suggestions: []internal.CollegeSuggestion{}}, nil
	}
	limit = ClampLimit(limit)

	var out internal.AutocompleteResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"query": query, "limit": strconv.Itoa(limit)}).
		Get("/api/colleges/autocomplete")
	body, err := c.raw(resp, err, "autocomplete")
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("autocomplete: decode: %w", err)
	}
	if out.Suggestions == nil {
		out.Suggestions = []internal.CollegeSuggestion{}
	}
	if out.Count == 0 {
		out.Count = len(out.Suggestions)
	}
	return out, nil
}

// ClampLimit applies the default and upper bound to an autocomplete limit.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultAutocompleteLimit
	case limit > MaxAutocompleteLimit:
		return MaxAutocompleteLimit
	}
	return limit
}

func (c *Client) raw(resp *resty.Response, err error, op string) (json.RawMessage, error) {
	if err != nil {
		c.log.Error().Err(err).Str("op", op).Msg("college backend unreachable")
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if resp.IsError() {
		c.log.Warn().Str("op", op).Int("status", resp.StatusCode()).Msg("college backend error")
		return nil, &BackendError{Status: resp.StatusCode(), Body: resp.Body()}
	}
	return json.RawMessage(resp.Body()), nil
}
