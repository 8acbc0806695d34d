// internal/analysis/orchestrator.go
package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "medassist-workers/internal/common/errors"
	"medassist-workers/internal/common/logger"
	"medassist-workers/internal/common/metrics"
	"medassist-workers/internal/common/observability"
	"medassist-workers/internal/genai"
	"medassist-workers/internal/models"
	"medassist-workers/internal/triage"

	"go.opentelemetry.io/otel/attribute"
)

const defaultGenerateTimeout = 15 * time.Second

// Orchestrator composes the classifier and the optional generator into one
// AnalysisResult. It holds no per-request state.
type Orchestrator struct {
	classifier triage.Classifier
	generator  genai.Generator
	timeout    time.Duration
	obs        *observability.Observability
	logger     logger.Logger
}

type Option func(*Orchestrator)

// WithGenerator enables the generative path. A nil generator leaves it off.
func WithGenerator(g genai.Generator, timeout time.Duration) Option {
	return func(o *Orchestrator) {
		o.generator = g
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

func WithObservability(obs *observability.Observability) Option {
	return func(o *Orchestrator) { o.obs = obs }
}

func NewOrchestrator(classifier triage.Classifier, log logger.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		classifier: classifier,
		timeout:    defaultGenerateTimeout,
		logger:     log.With(map[string]interface{}{"component": "analysis"}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ValidateReport rejects blank text and ages outside (0, 150).
func ValidateReport(report models.SymptomReport) error {
	if strings.TrimSpace(report.Text) == "" {
		return apperrors.NewInputEmptyError("text")
	}
	if report.Age != nil && (*report.Age <= 0 || *report.Age >= 150) {
		return apperrors.NewValidationError("age", "age must be between 1 and 149")
	}
	return nil
}

// Analyze never returns generator failures; only input errors reach the caller.
func (o *Orchestrator) Analyze(ctx context.Context, report models.SymptomReport) (*models.AnalysisResult, error) {
	if err := ValidateReport(report); err != nil {
		return nil, err
	}

	assessment := o.classifier.Classify(ctx, report.Text)
	if assessment.Emergency {
		return o.record(EmergencyResult(assessment.TemperatureF)), nil
	}

	if o.generator != nil {
		result, reason, err := o.generate(ctx, report, assessment)
		if err == nil {
			return o.record(result), nil
		}
		metrics.GenAIFallbacks.WithLabelValues(reason).Inc()
		o.logger.Warn("generative analysis unavailable, using rules", map[string]interface{}{
			"reason": reason,
			"error":  fallbackError(reason, err),
		})
	}

	return o.record(FallbackResult(assessment)), nil
}

func fallbackError(reason string, err error) *apperrors.StandardError {
	switch reason {
	case "timeout":
		return apperrors.NewLLMTimeoutError()
	case "parse":
		return apperrors.NewLLMSynthesisFailedError(err)
	default:
		return apperrors.NewExternalServiceError("genai", err)
	}
}

// CheckEmergency reports whether text is an emergency.
func (o *Orchestrator) CheckEmergency(ctx context.Context, text string) bool {
	return o.classifier.Classify(ctx, text).Emergency
}

func (o *Orchestrator) generate(ctx context.Context, report models.SymptomReport, a triage.Assessment) (*models.AnalysisResult, string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	ctx, span := o.obs.StartSpan(ctx, "genai.generate", attribute.Bool("has_temperature", a.TemperatureF != nil))
	defer span.End()

	text, err := o.generator.Generate(ctx, BuildPrompt(report, a.TemperatureF))
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, genai.ErrLLMTimeout) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, "timeout", err
		}
		return nil, "error", err
	}

	parsed, err := parseGenerated(text)
	if err != nil {
		span.RecordError(err)
		return nil, "parse", err
	}

	if parsed.claimsEmergency() {
		return EmergencyResult(a.TemperatureF), "", nil
	}

	result := parsed.toResult()
	if a.Fever != nil {
		// a measured high temperature outranks the model's judgment
		if a.Fever.Severity == models.SeveritySevere && result.Severity == models.SeverityMild {
			result.Severity = models.SeveritySevere
		}
		result.TemperatureF = a.TemperatureF
		result.TemperatureStatus = a.Fever.Status
	}
	span.SetAttributes(attribute.String("severity", string(result.Severity)))
	return result, "", nil
}

func (o *Orchestrator) record(result *models.AnalysisResult) *models.AnalysisResult {
	if result.IsEmergency {
		metrics.TriageEmergencies.Inc()
	}
	metrics.TriageAnalyses.WithLabelValues(string(result.Severity), result.Source).Inc()
	return result
}
