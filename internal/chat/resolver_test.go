package chat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margadarshak/margadarshak-api/internal"
	"github.com/margadarshak/margadarshak-api/internal/fallback"
	"github.com/margadarshak/margadarshak-api/internal/provider"
)

// fakeProvider replies with a fixed text or error and records what it saw.
type fakeProvider struct {
	name  string
	text  string
	err   error
	calls int
	seen  []internal.Message
}

func (f *fakeProvider) Name() string     { return f.name }
func (f *fakeProvider) Models() []string { return []string{f.name + "-model"} }

func (f *fakeProvider) Reply(_ context.Context, conversation []internal.Message) (provider.Reply, error) {
	f.calls++
	f.seen = conversation
	attempt := provider.Attempt{Provider: f.name, Model: f.name + "-model", Outcome: provider.OutcomeSuccess}
	if f.err != nil {
		attempt.Outcome = provider.OutcomeHTTPError
		return provider.Reply{Provider: f.name, Attempts: []provider.Attempt{attempt}}, f.err
	}
	return provider.Reply{Text: f.text, Provider: f.name, Model: f.name + "-model", Attempts: []provider.Attempt{attempt}}, nil
}

func newResolver(primary, secondary provider.ChatProvider) *Resolver {
	return NewResolver(Tiers{Primary: primary, Secondary: secondary}, zerolog.Nop())
}

func TestResolve_NoCredentials(t *testing.T) {
	r := NewResolver(Tiers{}, zerolog.Nop())

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"reservation", "Tell me about reservation quotas", fallback.ReservationResponse},
		{"cutoff wins over vjti", "What's the CUTOFF for VJTI", fallback.CutoffResponse},
		{"no keyword", "hello", fallback.DefaultMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(context.Background(), nil, tt.message)
			assert.Equal(t, tt.want, res.Text)
			assert.Equal(t, SourceFallback, res.Source)
			assert.Empty(t, res.Attempts)
		})
	}
}

func TestResolve_DeterministicWithoutCredentials(t *testing.T) {
	r := NewResolver(Tiers{}, zerolog.Nop())
	history := []internal.Message{
		{Role: internal.RoleUser, Content: "hi"},
		{Role: internal.RoleAssistant, Content: "hello"},
	}

	first := r.Resolve(context.Background(), history, "hello")
	second := r.Resolve(context.Background(), history, "hello")

	assert.Equal(t, first.Text, second.Text)
	assert.Contains(t, first.Text, "College Comparator feature.")
}

func TestResolve_PrimarySuccess(t *testing.T) {
	primary := &fakeProvider{name: "gemini", text: "Generated answer"}
	secondary := &fakeProvider{name: "huggingface", text: "unused"}
	r := newResolver(primary, secondary)

	res := r.Resolve(context.Background(), nil, "cutoff?")

	assert.Equal(t, "Generated answer", res.Text)
	assert.Equal(t, "gemini", res.Source)
	assert.Equal(t, "gemini-model", res.Model)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls)
}

func TestResolve_PrimaryFailureSkipsSecondary(t *testing.T) {
	primary := &fakeProvider{name: "gemini", err: errors.New("all models failed")}
	secondary := &fakeProvider{name: "huggingface", text: "should not be used"}
	r := newResolver(primary, secondary)

	res := r.Resolve(context.Background(), nil, "Tell me about reservation quotas")

	assert.Equal(t, fallback.ReservationResponse, res.Text)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls)
	require.Len(t, res.Attempts, 1)
}

func TestResolve_SecondaryWhenPrimaryAbsent(t *testing.T) {
	secondary := &fakeProvider{name: "huggingface", text: "Short answer"}
	r := newResolver(nil, secondary)

	res := r.Resolve(context.Background(), nil, "hello")

	assert.Equal(t, "Short answer", res.Text)
	assert.Equal(t, "huggingface", res.Source)
	assert.Equal(t, 1, secondary.calls)
}

func TestResolve_SecondaryFailureFallsBack(t *testing.T) {
	secondary := &fakeProvider{name: "huggingface", err: provider.ErrModelLoading}
	r := newResolver(nil, secondary)

	res := r.Resolve(context.Background(), nil, "scholarship help")

	assert.Equal(t, fallback.ScholarshipResponse, res.Text)
	assert.Equal(t, 1, secondary.calls)
}

func TestResolve_BlankProviderTextFallsBack(t *testing.T) {
	primary := &fakeProvider{name: "gemini", text: "  \n"}
	r := newResolver(primary, nil)

	res := r.Resolve(context.Background(), nil, "hello")

	assert.Equal(t, fallback.DefaultMessage, res.Text)
}

func TestResolve_ConversationPassedToProvider(t *testing.T) {
	primary := &fakeProvider{name: "gemini", text: "ok"}
	r := newResolver(primary, nil)
	history := []internal.Message{
		{Role: internal.RoleUser, Content: "first"},
		{Role: "system", Content: "ignored"},
		{Role: internal.RoleAssistant, Content: "reply"},
	}

	r.Resolve(context.Background(), history, "latest")

	assert.Equal(t, []internal.Message{
		{Role: internal.RoleUser, Content: "first"},
		{Role: internal.RoleAssistant, Content: "reply"},
		{Role: internal.RoleUser, Content: "latest"},
	}, primary.seen)
}

func TestStatus(t *testing.T) {
	st := newResolver(&fakeProvider{name: "gemini"}, &fakeProvider{name: "huggingface"}).Status()
	assert.True(t, st.Gemini)
	assert.True(t, st.HuggingFace)
	assert.Equal(t, []string{"gemini-model"}, st.Models)

	st = NewResolver(Tiers{}, zerolog.Nop()).Status()
	assert.False(t, st.Gemini)
	assert.Empty(t, st.Models)
}

// End to end with real providers against stub upstreams.
func TestResolve_GeminiAllDown_NeverCallsHuggingFace(t *testing.T) {
	var geminiHits, hfHits int32
	gem := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&geminiHits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer gem.Close()
	hf := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hfHits, 1)
		_, _ = w.Write([]byte(`[{"generated_text":"hf"}]`))
	}))
	defer hf.Close()

	primary, err := provider.NewGeminiProvider(provider.GeminiConfig{APIKey: "k", BaseURL: gem.URL, Timeout: time.Second}, zerolog.Nop())
	require.NoError(t, err)
	secondary, err := provider.NewHuggingFaceProvider(provider.HuggingFaceConfig{APIKey: "k", BaseURL: hf.URL, Timeout: time.Second}, zerolog.Nop())
	require.NoError(t, err)

	r := NewResolver(Tiers{Primary: primary, Secondary: secondary}, zerolog.Nop())
	res := r.Resolve(context.Background(), nil, "career options")

	assert.Equal(t, fallback.CareerResponse, res.Text)
	assert.Equal(t, int32(len(provider.DefaultGeminiModels)), atomic.LoadInt32(&geminiHits))
	assert.Equal(t, int32(0), atomic.LoadInt32(&hfHits))
	require.Len(t, res.Attempts, 3)
	for _, a := range res.Attempts {
		assert.Equal(t, provider.OutcomeHTTPError, a.Outcome)
		assert.Equal(t, http.StatusBadGateway, a.Status)
	}
}
