package bootstrap

import (
	"log/slog"

	"github.com/vbarbosa/email-triage/internal/config"
	"github.com/vbarbosa/email-triage/internal/core/ports"
	"github.com/vbarbosa/email-triage/internal/core/usecase"
	"github.com/vbarbosa/email-triage/internal/infrastructure/extractor"
	"github.com/vbarbosa/email-triage/internal/infrastructure/llm/openai"
	"github.com/vbarbosa/email-triage/internal/infrastructure/resilience"
	"github.com/vbarbosa/email-triage/internal/infrastructure/textproc"
	"github.com/vbarbosa/email-triage/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Triage  ports.EmailTriager
	Metrics *metrics.ServerMetrics
}

func New(cfg config.Config) *App {
	if cfg.OpenAIAPIKey == "" {
		// The process still serves the landing page and health checks;
		// classification requests fail with the auth kind before any call.
		slog.Warn("OPENAI_API_KEY is not set; classification requests will be rejected")
	}

	llmClient := openai.New(openai.Options{
		BaseURL:           cfg.OpenAIBaseURL,
		APIKey:            cfg.OpenAIAPIKey,
		Model:             cfg.OpenAIModel,
		RequestsPerSecond: cfg.UpstreamRPS,
		Burst:             cfg.UpstreamBurst,
		Resilience: resilience.Config{
			RetryMaxAttempts: cfg.LLMRetryMaxAttempts,
			BreakerEnabled:   cfg.LLMBreakerEnabled,
		},
	})

	triageUC := usecase.NewTriageEmailUseCase(
		extractor.NewDispatcher(),
		textproc.NewNormalizer(),
		openai.NewClassifier(llmClient),
		openai.NewReplyGenerator(llmClient),
		usecase.Limits{
			MaxFileSizeBytes: cfg.MaxFileSizeBytes,
			MaxContentChars:  cfg.MaxContentChars,
			EchoDisplayChars: cfg.EchoDisplayChars,
		},
	)

	return &App{
		Config:  cfg,
		Triage:  triageUC,
		Metrics: metrics.NewServerMetrics("api"),
	}
}
