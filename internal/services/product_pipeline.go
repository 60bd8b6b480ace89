package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/miyannishar/eco-logic-backend/internal/platform/gemini"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
	"github.com/miyannishar/eco-logic-backend/internal/prompts"
	"github.com/miyannishar/eco-logic-backend/internal/store"
)

// Pipeline stages, in execution order. Failures name the stage they
// happened in; no partial result is ever returned.
const (
	StageExtractingProduct    = "extracting_product"
	StageGeneratingQueries    = "generating_queries"
	StageSearchingWeb         = "searching_web"
	StageAnalyzingEnvironment = "analyzing_environment"
	StageAnalyzingHealth      = "analyzing_health"
)

// Wire-level step identifiers: file_handling distinguishes I/O problems from
// model/logic failures (processing) in every error payload.
const (
	StepFileHandling = "file_handling"
	StepProcessing   = "processing"
)

// PipelineError is the terminal failure state of an analysis run.
type PipelineError struct {
	Step   string
	Stage  string
	Reason string
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Step, e.Stage, e.Reason)
}

func failed(stage, reason string) *PipelineError {
	return &PipelineError{Step: StepProcessing, Stage: stage, Reason: reason}
}

// Merged-payload keys. The spellings are part of the public API consumed by
// the frontend and must not be corrected.
const (
	EnvironmentalResultKey = "enviromental pros and cons"
	HealthResultKey        = "health pros and cons"
)

type ProductAnalysisInput struct {
	UserID          string
	MedicalAilments string
	File            gemini.DocumentInput
}

// ProductAnalysisService orchestrates extraction, query generation, web
// search and the two analyses, strictly sequentially: every stage consumes
// the previous stage's output.
type ProductAnalysisService interface {
	Analyze(ctx context.Context, input ProductAnalysisInput) (map[string]any, *PipelineError)
}

type productAnalysisService struct {
	log       *logger.Logger
	extractor Extractor
	web       WebContextGatherer
	reports   store.ReportStore
}

func NewProductAnalysisService(log *logger.Logger, extractor Extractor, web WebContextGatherer, reports store.ReportStore) ProductAnalysisService {
	return &productAnalysisService{
		log:       log.With("service", "ProductAnalysisService"),
		extractor: extractor,
		web:       web,
		reports:   reports,
	}
}

func (s *productAnalysisService) Analyze(ctx context.Context, input ProductAnalysisInput) (map[string]any, *PipelineError) {
	// extracting_product
	outcome := s.extractor.ExtractStructured(ctx, prompts.ProductDescription, "edible_product_details", EdibleProductSchema(), &input.File)
	var product map[string]any
	switch outcome.Kind {
	case OutcomeOK:
		product = outcome.Value
	case OutcomeParseFailure:
		return nil, failed(StageExtractingProduct, "failed to parse product details")
	case OutcomeServiceFailure:
		return nil, failed(StageExtractingProduct, outcome.Reason)
	}
	s.log.Info("Extracted product details", "product_name", product["product_name"])

	// generating_queries
	queryPrompt, err := prompts.Render(prompts.WebSearchQueries, product)
	if err != nil {
		return nil, failed(StageGeneratingQueries, err.Error())
	}
	rawQueries, err := s.extractor.ExtractRaw(ctx, queryPrompt, "search_queries", SearchQueriesSchema(), nil)
	if err != nil {
		return nil, failed(StageGeneratingQueries, "failed to generate search queries")
	}
	queries, err := ParseStringList(rawQueries)
	if err != nil {
		return nil, failed(StageGeneratingQueries, "invalid or empty search queries")
	}
	s.log.Info("Generated search queries", "count", len(queries))

	// searching_web: empty context is not a failure, the analyses run with
	// whatever the web gave us.
	webContext := s.web.Gather(ctx, queries)
	s.log.Info("Gathered web context", "context_chars", len(webContext))

	// analyzing_environment. A model failure here aborts like every other
	// stage; it is never folded into the success payload.
	envFields := withField(product, "web_scraped_info", webContext)
	envPrompt, err := prompts.Render(prompts.EnvironmentalSuggestions, envFields)
	if err != nil {
		return nil, failed(StageAnalyzingEnvironment, err.Error())
	}
	envOutcome := s.extractor.ExtractStructured(ctx, envPrompt, "environmental_assessment", AssessmentSchema(), nil)
	if envOutcome.Kind != OutcomeOK {
		return nil, failed(StageAnalyzingEnvironment, outcomeReason(envOutcome, "environmental analysis failed"))
	}

	// analyzing_health. Missing report history is a normal state and never
	// blocks the analysis; a store failure degrades to no history.
	history, err := s.reports.UserReportContent(ctx, input.UserID)
	if err != nil {
		s.log.Warn("Could not load user report history, proceeding without it", "user_id", input.UserID, "error", err)
		history = nil
	}
	healthFields := withField(product, "user_medical_ailments", input.MedicalAilments)
	healthFields["user_medical_report_details"] = strings.Join(history, "\n\n")
	fillDefaults(healthFields, "allergen_information", "cautions_and_warnings")
	healthPrompt, err := prompts.Render(prompts.HealthSuggestions, healthFields)
	if err != nil {
		return nil, failed(StageAnalyzingHealth, err.Error())
	}
	healthOutcome := s.extractor.ExtractStructured(ctx, healthPrompt, "health_assessment", AssessmentSchema(), nil)
	if healthOutcome.Kind != OutcomeOK {
		return nil, failed(StageAnalyzingHealth, outcomeReason(healthOutcome, "health analysis failed"))
	}

	// assembled
	product[EnvironmentalResultKey] = envOutcome.Value
	product[HealthResultKey] = healthOutcome.Value
	return product, nil
}

func outcomeReason(o ExtractionOutcome, fallback string) string {
	if o.Kind == OutcomeServiceFailure && o.Reason != "" {
		return o.Reason
	}
	return fallback
}

// withField copies the fields and adds one more; the product map itself is
// only mutated at assembly.
func withField(fields map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out[key] = value
	return out
}

// fillDefaults backstops optional extraction fields referenced by the
// prompt templates, which fail on absent keys.
func fillDefaults(fields map[string]any, keys ...string) {
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			fields[k] = []any{}
		}
	}
}
