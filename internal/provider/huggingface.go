package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/margadarshak/margadarshak-api/internal"
)

const HuggingFaceName = "huggingface"

// HuggingFaceConfig configures the secondary provider; zero values take defaults.
type HuggingFaceConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// HuggingFaceProvider calls the hosted inference API once per reply. A model
// that is still loading is reported as ErrModelLoading and is not retried.
type HuggingFaceProvider struct {
	model  string
	client *resty.Client
	log    zerolog.Logger
}

func NewHuggingFaceProvider(cfg HuggingFaceConfig, log zerolog.Logger) (*HuggingFaceProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("huggingface: %w", ErrCredentialMissing)
	}
	if cfg.Model == "" {
		cfg.Model = "google/flan-t5-large"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-inference.huggingface.co"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &HuggingFaceProvider{
		model: cfg.Model,
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetAuthToken(cfg.APIKey).
			SetHeader("Content-Type", "application/json").
			SetTimeout(cfg.Timeout),
		log: log.With().Str("provider", HuggingFaceName).Logger(),
	}, nil
}

func (p *HuggingFaceProvider) Name() string { return HuggingFaceName }

func (p *HuggingFaceProvider) Models() []string { return []string{p.model} }

type hfParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
	DoSample     bool    `json:"do_sample"`
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

func (p *HuggingFaceProvider) Reply(ctx context.Context, conversation []internal.Message) (Reply, error) {
	p.log.Info().Str("model", p.model).Msg("calling inference api")

	start := time.Now()
	text, status, err := p.generate(ctx, latestUserMessage(conversation))
	attempt := Attempt{
		Provider: HuggingFaceName,
		Model:    p.model,
		Outcome:  outcomeOf(err),
		Status:   status,
		Latency:  time.Since(start),
		Err:      err,
	}
	out := Reply{Provider: HuggingFaceName, Attempts: []Attempt{attempt}}

	if err != nil {
		ev := p.log.Warn().Err(err).
			Str("model", p.model).
			Str("outcome", string(attempt.Outcome)).
			Int("status", status).
			Dur("latency", attempt.Latency)
		if IsModelLoading(err) {
			ev.Bool("model_loading", true)
		}
		ev.Msg("inference api failed")
		return out, fmt.Errorf("huggingface: %w", err)
	}

	p.log.Info().Str("model", p.model).Dur("latency", attempt.Latency).Msg("inference api succeeded")
	out.Text = text
	out.Model = p.model
	return out, nil
}

func (p *HuggingFaceProvider) generate(ctx context.Context, question string) (string, int, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(hfRequest{
			Inputs: QuestionPrompt(question),
			Parameters: hfParameters{
				MaxNewTokens: 300,
				Temperature:  0.7,
				DoSample:     true,
			},
		}).
		Post("/models/" + p.model)
	if err != nil {
		return "", 0, transportError(err)
	}
	if resp.IsError() {
		msg := resp.String()
		if strings.Contains(msg, "loading") {
			return "", resp.StatusCode(), fmt.Errorf("%w: %w: status %d", ErrTransport, ErrModelLoading, resp.StatusCode())
		}
		return "", resp.StatusCode(), fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode())
	}

	text, err := extractGeneratedText(resp.Body())
	if err != nil {
		return "", resp.StatusCode(), err
	}
	return text, resp.StatusCode(), nil
}

// IsModelLoading reports whether err came from a model that is still warming up.
func IsModelLoading(err error) bool {
	return errors.Is(err, ErrModelLoading)
}

// extractGeneratedText accepts [{generated_text}], {generated_text} or a bare string.
func extractGeneratedText(body []byte) (string, error) {
	body = bytes.TrimSpace(body)

	type generated struct {
		GeneratedText string `json:"generated_text"`
	}

	var list []generated
	if err := json.Unmarshal(body, &list); err == nil {
		if len(list) > 0 && list[0].GeneratedText != "" {
			return list[0].GeneratedText, nil
		}
		return "", fmt.Errorf("%w: empty generated_text list", ErrMalformedResponse)
	}

	var obj generated
	if err := json.Unmarshal(body, &obj); err == nil && obj.GeneratedText != "" {
		return obj.GeneratedText, nil
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil && s != "" {
		return s, nil
	}

	return "", fmt.Errorf("%w: unexpected inference payload", ErrMalformedResponse)
}
