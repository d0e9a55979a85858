// Package chat turns a student's conversation into a single counselor reply.
package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/margadarshak/margadarshak-api/internal"
	"github.com/margadarshak/margadarshak-api/internal/fallback"
	"github.com/margadarshak/margadarshak-api/internal/provider"
)

// SourceFallback marks replies taken from the keyword table.
const SourceFallback = "fallback"

// ApologyMessage is served by the HTTP boundary when resolution blows up.
const ApologyMessage = "I apologize, but I'm experiencing some technical difficulties. Please try again in a moment, or use our College Comparator feature for detailed college information."

// Tiers wires the resolver. Either provider may be nil when its credential is absent.
type Tiers struct {
	Primary   provider.ChatProvider
	Secondary provider.ChatProvider
	Table     *fallback.Table
}

// Result is the reply for one turn along with the tier that produced it.
type Result struct {
	Text     string
	Source   string
	Model    string
	Attempts []provider.Attempt
}

// Resolver picks the generative tier and degrades to the keyword table.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	primary   provider.ChatProvider
	secondary provider.ChatProvider
	table     *fallback.Table
	log       zerolog.Logger
}

func NewResolver(t Tiers, log zerolog.Logger) *Resolver {
	table := t.Table
	if table == nil {
		table = fallback.Default()
	}
	return &Resolver{
		primary:   t.Primary,
		secondary: t.Secondary,
		table:     table,
		log:       log.With().Str("component", "chat").Logger(),
	}
}

// Status reports which tiers are configured.
func (r *Resolver) Status() internal.ChatStatus {
	st := internal.ChatStatus{
		Gemini:      r.primary != nil,
		HuggingFace: r.secondary != nil,
		Models:      []string{},
	}
	for _, p := range r.plan() {
		st.Models = append(st.Models, p.Models()...)
	}
	return st
}

// plan returns the generative tiers to try. The secondary provider is only
// used when the primary is not configured at all; a configured primary that
// fails goes straight to the keyword table.
func (r *Resolver) plan() []provider.ChatProvider {
	switch {
	case r.primary != nil:
		return []provider.ChatProvider{r.primary}
	case r.secondary != nil:
		return []provider.ChatProvider{r.secondary}
	default:
		return nil
	}
}

// Resolve always returns non-empty text.
func (r *Resolver) Resolve(ctx context.Context, history []internal.Message, latest string) Result {
	conversation := BuildConversation(history, latest)

	var attempts []provider.Attempt
	plan := r.plan()
	if len(plan) == 0 {
		r.log.Info().Msg("no provider credentials configured, using fallback responses")
	}

	for _, p := range plan {
		r.log.Info().Str("provider", p.Name()).Msg("using provider")

		reply, err := p.Reply(ctx, conversation)
		attempts = append(attempts, reply.Attempts...)
		if err != nil {
			r.log.Warn().Err(err).Str("provider", p.Name()).Msg("provider failed, using fallback")
			continue
		}
		if strings.TrimSpace(reply.Text) == "" {
			r.log.Warn().Str("provider", p.Name()).Msg("provider returned blank text, using fallback")
			continue
		}
		return Result{
			Text:     reply.Text,
			Source:   p.Name(),
			Model:    reply.Model,
			Attempts: attempts,
		}
	}

	text := r.table.Respond(latest)
	if e, ok := r.table.Match(latest); ok {
		r.log.Debug().Str("keyword", e.Keyword).Msg("fallback keyword matched")
	}
	return Result{Text: text, Source: SourceFallback, Attempts: attempts}
}

// BuildConversation keeps user/assistant history entries in order and appends
// latest as the final user message.
func BuildConversation(history []internal.Message, latest string) []internal.Message {
	out := make([]internal.Message, 0, len(history)+1)
	for _, m := range history {
		if !m.Role.Valid() {
			continue
		}
		out = append(out, m)
	}
	return append(out, internal.Message{Role: internal.RoleUser, Content: latest})
}
