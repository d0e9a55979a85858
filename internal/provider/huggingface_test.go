package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHuggingFace(t *testing.T, h http.HandlerFunc) *HuggingFaceProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	p, err := NewHuggingFaceProvider(HuggingFaceConfig{
		APIKey:  "hf_test",
		BaseURL: srv.URL,
		Timeout: time.Second,
	}, zerolog.Nop())
	require.NoError(t, err)
	return p
}

func TestNewHuggingFaceProvider_NoKey(t *testing.T) {
	_, err := NewHuggingFaceProvider(HuggingFaceConfig{}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrCredentialMissing)
}

func TestHuggingFace_RequestShape(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotBody hfRequest
	)
	p := newTestHuggingFace(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`[{"generated_text":"Apply in CAP rounds."}]`))
	})

	reply, err := p.Reply(context.Background(), conversation("earlier", "answer", "How do CAP rounds work?"))
	require.NoError(t, err)

	assert.Equal(t, "Apply in CAP rounds.", reply.Text)
	assert.Equal(t, "google/flan-t5-large", reply.Model)
	assert.Equal(t, "/models/google/flan-t5-large", gotPath)
	assert.Equal(t, "Bearer hf_test", gotAuth)
	assert.Equal(t, QuestionPrompt("How do CAP rounds work?"), gotBody.Inputs)
	assert.Equal(t, hfParameters{MaxNewTokens: 300, Temperature: 0.7, DoSample: true}, gotBody.Parameters)
}

func TestHuggingFace_ModelLoading(t *testing.T) {
	calls := 0
	p := newTestHuggingFace(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model google/flan-t5-large is currently loading","estimated_time":20}`))
	})

	reply, err := p.Reply(context.Background(), conversation("hi"))
	require.Error(t, err)

	assert.True(t, IsModelLoading(err))
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, 1, calls)
	require.Len(t, reply.Attempts, 1)
	assert.Equal(t, OutcomeHTTPError, reply.Attempts[0].Outcome)
	assert.Equal(t, http.StatusServiceUnavailable, reply.Attempts[0].Status)
}

func TestHuggingFace_PlainHTTPError(t *testing.T) {
	p := newTestHuggingFace(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := p.Reply(context.Background(), conversation("hi"))
	assert.ErrorIs(t, err, ErrTransport)
	assert.False(t, IsModelLoading(err))
}

func TestExtractGeneratedText(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"array", `[{"generated_text":"one"},{"generated_text":"two"}]`, "one", false},
		{"object", `{"generated_text":"flat"}`, "flat", false},
		{"bare string", `"just text"`, "just text", false},
		{"empty array", `[]`, "", true},
		{"wrong field", `{"text":"nope"}`, "", true},
		{"number", `42`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractGeneratedText([]byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHuggingFace_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(300 * time.Millisecond):
		case <-r.Context().Done():
		}
		_, _ = w.Write([]byte(`[{"generated_text":"too late"}]`))
	}))
	t.Cleanup(srv.Close)

	p, err := NewHuggingFaceProvider(HuggingFaceConfig{
		APIKey:  "hf_test",
		BaseURL: srv.URL,
		Timeout: 50 * time.Millisecond,
	}, zerolog.Nop())
	require.NoError(t, err)

	reply, err := p.Reply(context.Background(), conversation("cutoff?"))
	assert.ErrorIs(t, err, ErrTransport)
	require.Len(t, reply.Attempts, 1)
	assert.Equal(t, OutcomeTimeout, reply.Attempts[0].Outcome)
	assert.Empty(t, reply.Text)
}

func TestHuggingFace_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	closedURL := srv.URL
	srv.Close()

	p, err := NewHuggingFaceProvider(HuggingFaceConfig{
		APIKey:  "hf_secret",
		BaseURL: closedURL,
		Timeout: time.Second,
	}, zerolog.Nop())
	require.NoError(t, err)

	reply, err := p.Reply(context.Background(), conversation("cutoff?"))
	assert.ErrorIs(t, err, ErrTransport)
	require.Len(t, reply.Attempts, 1)
	assert.Equal(t, OutcomeHTTPError, reply.Attempts[0].Outcome)
	assert.NotContains(t, reply.Attempts[0].Err.Error(), closedURL)
}
