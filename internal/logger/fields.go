package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the enrichment provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the enrichment model identifier.
	FieldModel = "ai_model"
	// FieldSource names the document being analyzed (usually a file path).
	FieldSource = "source"
	// FieldRole is the target role the document is scored against.
	FieldRole = "target_role"
	// FieldReportID is the identifier of the produced report.
	FieldReportID = "report_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger is replaced by a no-op one.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns the provider and model fields of an enrichment backend.
// Empty values are ignored.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCommonFields attaches the enrichment provider fields to the provided logger.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// AnalysisFields describes a single analysis request.
func AnalysisFields(reportID, source, role string) []zap.Field {
	return StringFields(
		StringField{Key: FieldReportID, Value: reportID},
		StringField{Key: FieldSource, Value: source},
		StringField{Key: FieldRole, Value: role},
	)
}

// WithAnalysisFields attaches request fields to the provided logger.
func WithAnalysisFields(logger *zap.Logger, reportID, source, role string) *zap.Logger {
	return WithFields(logger, AnalysisFields(reportID, source, role)...)
}
