package analyses

import "errors"

var (
	// ErrExternalService wraps any failure talking to the completion endpoint.
	ErrExternalService = errors.New("completion endpoint failed")
	// ErrSchemaParse marks model output that is not valid JSON or does not match the result schema.
	ErrSchemaParse = errors.New("model output does not match schema")
)

const (
	ErrorCodeValidation        = "validation_error"
	ErrorCodeExtraction        = "extraction_failed"
	ErrorCodeLLMFailed         = "llm_failed"
	ErrorCodeLLMSchemaMismatch = "llm_schema_mismatch"
	ErrorCodeInternal          = "internal_error"
)
