package model

// FieldDescriptor declares the shape of one form field.
// Immutable once stored inside a form.
type FieldDescriptor struct {
	Type     string `json:"type"`
	Question string `json:"question"`
	Required bool   `json:"required"`
}

type Form struct {
	ID     string     `json:"id,omitempty"`
	Name   string     `json:"name"`
	Fields FormFields `json:"fields"`
}

// SubmittedAnswers maps field keys to raw answer values.
// Transient request input, never persisted as-is.
type SubmittedAnswers map[string]string

type SourceRecord struct {
	ID     string `json:"id"`
	FormID string `json:"form_id"`
}

// SourceData is one normalized answer row of a record. Question is a
// snapshot of the descriptor text at write time. Answer is nil when
// the field had no submitted value.
type SourceData struct {
	SourceRecordID string  `json:"-"`
	Question       string  `json:"question"`
	Answer         *string `json:"answer"`
}

// Record is a SourceRecord together with its answer rows, in the
// field declaration order of the form it was submitted against.
type Record struct {
	ID         string       `json:"id"`
	FormID     string       `json:"form_id"`
	SourceData []SourceData `json:"source_data"`
}
