package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/margadarshak/margadarshak-api/internal"
)

var (
	// ErrCredentialMissing means the provider has no API key and its tier is skipped.
	ErrCredentialMissing = errors.New("credential missing")
	// ErrTransport covers network failures and non-2xx answers.
	ErrTransport = errors.New("transport failure")
	// ErrMalformedResponse means the payload lacked the expected text field.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrModelLoading is a transport failure reported while the hosted model warms up.
	ErrModelLoading = errors.New("model is loading")
	// ErrAllModelsFailed is returned once every model variant of a provider was tried.
	ErrAllModelsFailed = errors.New("all models failed")
)

type Outcome string

const (
	OutcomeSuccess    Outcome = "success"
	OutcomeHTTPError  Outcome = "http_error"
	OutcomeParseError Outcome = "parse_error"
	OutcomeTimeout    Outcome = "timeout"
)

// Attempt records one request made to a provider.
type Attempt struct {
	Provider string
	Model    string
	Outcome  Outcome
	Status   int
	Latency  time.Duration
	Err      error
}

// Reply is the text produced by a provider along with every attempt made for it.
type Reply struct {
	Text     string
	Provider string
	Model    string
	Attempts []Attempt
}

// ChatProvider produces an assistant reply for a conversation whose last
// message is the user's latest question.
type ChatProvider interface {
	Name() string
	Models() []string
	Reply(ctx context.Context, conversation []internal.Message) (Reply, error)
}

// outcomeOf maps a request error to an attempt outcome.
func outcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrMalformedResponse):
		return OutcomeParseError
	case errors.Is(err, context.DeadlineExceeded):
		return OutcomeTimeout
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return OutcomeTimeout
	}
	return OutcomeHTTPError
}

// transportError wraps err as ErrTransport. The request URL is dropped from
// *url.Error so endpoints and query strings never reach logs.
func transportError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%w: %s request: %w", ErrTransport, uerr.Op, uerr.Err)
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}
