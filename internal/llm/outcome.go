package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"codeberg.org/finpilot/server/internal/metrics"
	openai "github.com/sashabaranov/go-openai"
)

const DefaultTimeout = 30 * time.Second

// why a completion produced no usable text
type FailureReason string

const (
	ReasonNone        FailureReason = ""
	ReasonTimeout     FailureReason = "timeout"
	ReasonCanceled    FailureReason = "canceled"
	ReasonRateLimited FailureReason = "rate_limited"
	ReasonAuth        FailureReason = "auth"
	ReasonUpstream    FailureReason = "upstream"
	ReasonEmpty       FailureReason = "empty"
	ReasonUnavailable FailureReason = "unavailable"
)

// result of a completion call: either text or a failure reason, never both
type Outcome struct {
	Text   string
	Usage  Usage
	Reason FailureReason
	Err    error
}

func (o Outcome) OK() bool {
	return o.Reason == ReasonNone
}

// returns the generated text, or fallback when the call failed
func (o Outcome) TextOr(fallback string) string {
	if o.OK() {
		return o.Text
	}

	return fallback
}

// wraps a generator with a per-call timeout and metrics
type Completer struct {
	generator TextGenerator
	timeout   time.Duration
}

func NewCompleter(generator TextGenerator, timeout time.Duration) *Completer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Completer{
		generator: generator,
		timeout:   timeout,
	}
}

func (c *Completer) Model() string {
	return c.generator.Model()
}

// runs one completion; feature labels the metrics (chat, recommendations, insights)
func (c *Completer) Complete(ctx context.Context, feature string, req TextGenerationRequest) Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.generator.Model()
	start := time.Now()

	resp, err := c.generator.GenerateText(ctx, req)

	metrics.LLMRequestDuration.WithLabelValues(model, feature).Observe(time.Since(start).Seconds())

	var outcome Outcome
	switch {
	case err != nil:
		outcome = Outcome{Reason: classify(ctx, err), Err: err}
	case resp == nil || strings.TrimSpace(resp.Text) == "":
		outcome = Outcome{Reason: ReasonEmpty, Err: errors.New("empty completion")}
	default:
		outcome = Outcome{Text: resp.Text, Usage: resp.Usage}
		metrics.LLMTokensTotal.WithLabelValues(model, "input").Add(float64(resp.Usage.InputTokens))
		metrics.LLMTokensTotal.WithLabelValues(model, "output").Add(float64(resp.Usage.OutputTokens))
	}

	label := "success"
	if !outcome.OK() {
		label = string(outcome.Reason)
	}
	metrics.LLMRequestsTotal.WithLabelValues(model, feature, label).Inc()

	return outcome
}

func classify(ctx context.Context, err error) FailureReason {
	if errors.Is(err, ErrUnavailable) {
		return ReasonUnavailable
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ReasonTimeout
	}

	if errors.Is(err, context.Canceled) {
		return ReasonCanceled
	}

	if status := statusCode(err); status != 0 {
		switch {
		case status == http.StatusTooManyRequests:
			return ReasonRateLimited
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return ReasonAuth
		}
	}

	return ReasonUpstream
}

// extracts the HTTP status from provider errors
func statusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	var openaiAPIErr *openai.APIError
	if errors.As(err, &openaiAPIErr) {
		return openaiAPIErr.HTTPStatusCode
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}

	return 0
}
