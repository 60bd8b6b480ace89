package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/miyannishar/eco-logic-backend/internal/platform/gemini"
	"github.com/miyannishar/eco-logic-backend/internal/platform/httpx"
	"github.com/miyannishar/eco-logic-backend/internal/platform/logger"
)

// OutcomeKind tags the three shapes a structured extraction can produce.
// Callers must handle every arm; there is no ad hoc type sniffing.
type OutcomeKind int

const (
	// OutcomeOK: the model returned JSON conforming to the requested schema.
	OutcomeOK OutcomeKind = iota
	// OutcomeParseFailure: the model answered, but the text did not parse as
	// the schema's serialized form. Raw carries the text.
	OutcomeParseFailure
	// OutcomeServiceFailure: the hosted model call itself failed. Reason
	// carries the failure description.
	OutcomeServiceFailure
)

type ExtractionOutcome struct {
	Kind   OutcomeKind
	Value  map[string]any
	Raw    string
	Reason string
}

// Extractor adapts the hosted model into the tagged-outcome contract used by
// the pipelines. No retry happens here: one failed call fails the request.
type Extractor interface {
	// ExtractStructured requests an object-shaped result.
	ExtractStructured(ctx context.Context, instruction, schemaName string, schema map[string]any, doc *gemini.DocumentInput) ExtractionOutcome
	// ExtractRaw requests a result with an arbitrary (typically array) schema
	// and returns the model text untouched, for callers with their own
	// coercion rules.
	ExtractRaw(ctx context.Context, instruction, schemaName string, schema map[string]any, doc *gemini.DocumentInput) (string, error)
}

type extractor struct {
	log    *logger.Logger
	client gemini.Client
}

func NewExtractor(log *logger.Logger, client gemini.Client) Extractor {
	return &extractor{
		log:    log.With("service", "Extractor"),
		client: client,
	}
}

func (e *extractor) ExtractStructured(ctx context.Context, instruction, schemaName string, schema map[string]any, doc *gemini.DocumentInput) ExtractionOutcome {
	text, err := e.client.GenerateJSON(ctx, instruction, schemaName, schema, doc)
	if err != nil {
		fields := []interface{}{"schema", schemaName, "error", err}
		if status := httpx.StatusFromError(err); status != 0 {
			fields = append(fields, "upstream_status", status)
		}
		e.log.Warn("Structured extraction failed", fields...)
		return ExtractionOutcome{Kind: OutcomeServiceFailure, Reason: err.Error()}
	}

	var value map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &value); err != nil {
		e.log.Warn("Structured extraction returned unparsable JSON", "schema", schemaName, "error", err)
		return ExtractionOutcome{Kind: OutcomeParseFailure, Raw: text}
	}
	return ExtractionOutcome{Kind: OutcomeOK, Value: value}
}

func (e *extractor) ExtractRaw(ctx context.Context, instruction, schemaName string, schema map[string]any, doc *gemini.DocumentInput) (string, error) {
	return e.client.GenerateJSON(ctx, instruction, schemaName, schema, doc)
}

// stripCodeFence removes a surrounding markdown fence when the model wraps
// its JSON despite the JSON response mime type.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// drop the language tag line (```json)
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
