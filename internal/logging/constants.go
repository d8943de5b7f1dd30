package logging

// Field names shared by every log entry of the converter.
const (
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldArchive    = "archive_file"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldRows       = "rows"
	FieldColumns    = "columns"
	FieldDialect    = "dialect"
	FieldMode       = "mode"
	FieldRecordType = "record_type"
	FieldLang       = "lang"
	FieldCount      = "count"
	FieldDuration   = "duration_ms"
	FieldDelimiter  = "delimiter"
	FieldEncoding   = "encoding"
	FieldSheet      = "sheet"
	FieldWorkers    = "workers"
)
