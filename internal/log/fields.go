package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldKind        = "type"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldTxID        = "id"
	FieldCount       = "count"
	FieldFile        = "file"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentRecords  = "records"
	ComponentSettings = "settings"
	ComponentGate     = "gate"
	ComponentExport   = "export"
)

// Operations defines standard operation names
const (
	OpAdd    = "add"
	OpDelete = "delete"
	OpUndo   = "undo"
	OpReset  = "reset"
	OpLoad   = "load"
	OpReport = "report"
	OpExport = "export"
	OpVerify = "verify"
)
