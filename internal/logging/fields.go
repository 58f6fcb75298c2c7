package logging

// Standard attribute keys.
const (
	FieldComponent = "component"
	FieldCatalog   = "catalog"
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
	FieldRunID     = "run_id"
	FieldReason    = "reason"
)
