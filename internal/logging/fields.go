package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldSource     = "source"
	FieldLeague     = "league"
	FieldRequestID  = "request_id"
	FieldBatchID    = "batch_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldDate       = "date"
	FieldCount      = "count"
	FieldDropped    = "dropped"
	FieldDurationMS = "duration_ms"
)
