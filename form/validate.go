package form

import (
	"github.com/c88lopez/vial-form-app-api/fault"
	"github.com/c88lopez/vial-form-app-api/model"
)

// Validate checks answers against the form's field schema, walking
// keys in declaration order. It fails fast on the first required
// field with no usable answer, naming that key. Keys with no
// descriptor are treated as not required. Answer keys outside the
// schema are ignored.
func Validate(fields model.FormFields, answers model.SubmittedAnswers) error {
	for _, key := range fields.Keys() {
		desc, ok := fields.Get(key)
		if !ok || !desc.Required {
			continue
		}
		if answers[key] == "" {
			return fault.ValidationFailed(key)
		}
	}
	return nil
}
