package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/margadarshak/margadarshak-api/internal"
)

const GeminiName = "gemini"

// DefaultGeminiModels is the preference order tried when none is configured.
var DefaultGeminiModels = []string{"gemini-1.5-flash", "gemini-1.5-pro", "gemini-pro"}

var geminiSafetyCategories = []string{
	"HARM_CATEGORY_HARASSMENT",
	"HARM_CATEGORY_HATE_SPEECH",
	"HARM_CATEGORY_SEXUALLY_EXPLICIT",
	"HARM_CATEGORY_DANGEROUS_CONTENT",
}

// GeminiConfig configures the primary provider; zero values take defaults.
type GeminiConfig struct {
	APIKey        string
	BaseURL       string
	Models        []string
	Timeout       time.Duration
	HistoryWindow int
}

// GeminiProvider calls the generateContent endpoint, walking the model list
// in order until one returns text.
type GeminiProvider struct {
	apiKey string
	models []string
	window int
	client *resty.Client
	log    zerolog.Logger
}

func NewGeminiProvider(cfg GeminiConfig, log zerolog.Logger) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrCredentialMissing)
	}
	models := cfg.Models
	if len(models) == 0 {
		models = DefaultGeminiModels
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = DefaultHistoryWindow
	}
	return &GeminiProvider{
		apiKey: cfg.APIKey,
		models: append([]string(nil), models...),
		window: cfg.HistoryWindow,
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(cfg.Timeout),
		log: log.With().Str("provider", GeminiName).Logger(),
	}, nil
}

func (p *GeminiProvider) Name() string { return GeminiName }

func (p *GeminiProvider) Models() []string { return append([]string(nil), p.models...) }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
	SafetySettings   []geminiSafetySetting  `json:"safetySettings"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) buildRequest(conversation []internal.Message) geminiRequest {
	safety := make([]geminiSafetySetting, 0, len(geminiSafetyCategories))
	for _, c := range geminiSafetyCategories {
		safety = append(safety, geminiSafetySetting{Category: c, Threshold: "BLOCK_NONE"})
	}
	return geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: CounselorPrompt(conversation, p.window)}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 600,
			TopP:            0.95,
			TopK:            40,
		},
		SafetySettings: safety,
	}
}

// Reply tries each model once, in order, and returns the first generated text.
func (p *GeminiProvider) Reply(ctx context.Context, conversation []internal.Message) (Reply, error) {
	body := p.buildRequest(conversation)
	out := Reply{Provider: GeminiName}

	for _, model := range p.models {
		p.log.Info().Str("model", model).Msg("trying model")

		start := time.Now()
		text, status, err := p.generate(ctx, model, body)
		attempt := Attempt{
			Provider: GeminiName,
			Model:    model,
			Outcome:  outcomeOf(err),
			Status:   status,
			Latency:  time.Since(start),
			Err:      err,
		}
		out.Attempts = append(out.Attempts, attempt)

		if err != nil {
			p.log.Warn().Err(err).
				Str("model", model).
				Str("outcome", string(attempt.Outcome)).
				Int("status", status).
				Dur("latency", attempt.Latency).
				Msg("model failed, trying next")
			continue
		}

		p.log.Info().Str("model", model).Dur("latency", attempt.Latency).Msg("model succeeded")
		out.Text = text
		out.Model = model
		return out, nil
	}

	p.log.Warn().Int("attempts", len(out.Attempts)).Msg("all gemini models failed")
	return out, fmt.Errorf("gemini: %w", ErrAllModelsFailed)
}

func (p *GeminiProvider) generate(ctx context.Context, model string, body geminiRequest) (string, int, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("model", model).
		SetHeader("x-goog-api-key", p.apiKey).
		SetBody(body).
		Post("/v1beta/models/{model}:generateContent")
	if err != nil {
		return "", 0, transportError(err)
	}
	if resp.IsError() {
		return "", resp.StatusCode(), fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode())
	}

	var parsed geminiResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", resp.StatusCode(), fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", resp.StatusCode(), fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}
	text := parsed.Candidates[0].Content.Parts[0].Text
	if text == nil || *text == "" {
		return "", resp.StatusCode(), fmt.Errorf("%w: candidate has no text", ErrMalformedResponse)
	}
	return *text, resp.StatusCode(), nil
}
