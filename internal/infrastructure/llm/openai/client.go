package openai

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/vbarbosa/email-triage/internal/core/domain"
	"github.com/vbarbosa/email-triage/internal/infrastructure/resilience"
)

const defaultBaseURL = "https://api.openai.com/v1"

type Options struct {
	BaseURL string
	APIKey  string
	Model   string

	// RequestsPerSecond paces outbound completion calls to stay inside the
	// provider quota. Zero disables pacing.
	RequestsPerSecond float64
	Burst             int

	Resilience resilience.Config
}

// Client is the process-wide completion client, constructed once at startup
// and immutable afterwards.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
	executor   *resilience.Executor
}

func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := opts.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	limit := rate.Inf
	burst := opts.Burst
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	if burst <= 0 {
		burst = 1
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     opts.APIKey,
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		limiter:    rate.NewLimiter(limit, burst),
		executor:   resilience.NewExecutor(opts.Resilience),
	}
}

type Classifier struct {
	client *Client
}

func NewClassifier(client *Client) *Classifier {
	return &Classifier{client: client}
}

// Classify sends one deterministic completion request (temperature 0, small
// output cap) and parses the constrained answer. An answer containing neither
// label is not an error: it degrades to Inconclusivo with a warning.
func (c *Classifier) Classify(ctx context.Context, original, normalized string) (domain.Classification, error) {
	answer, err := c.client.chatCompletion(
		ctx,
		"classify",
		buildClassificationMessages(original, normalized),
		classifyTemperature,
		classifyMaxTokens,
	)
	if err != nil {
		return "", err
	}

	classification, ok := parseClassification(answer)
	if !ok {
		slog.Warn("unparseable_classification_answer", "answer", answer)
		return domain.ClassificationInconclusive, nil
	}
	return classification, nil
}

type ReplyGenerator struct {
	client *Client
}

func NewReplyGenerator(client *Client) *ReplyGenerator {
	return &ReplyGenerator{client: client}
}

// GenerateReply drafts an answer with creative sampling. Inconclusive
// classifications short-circuit to the fixed sentinel without touching the
// upstream service.
func (g *ReplyGenerator) GenerateReply(ctx context.Context, original string, cls domain.Classification) (string, error) {
	if cls == domain.ClassificationInconclusive {
		return InconclusiveReply, nil
	}
	return g.client.chatCompletion(ctx, "reply", buildReplyMessages(original, cls), replyTemperature, replyMaxTokens)
}
