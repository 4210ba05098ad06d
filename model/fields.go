package model

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// FormFields is an ordered mapping from field key to FieldDescriptor.
// Iteration order is declaration order: the order keys were Set, or
// their order in the source document when decoded from JSON. That
// order drives validation and answer-row generation.
type FormFields struct {
	keys  []string
	descs map[string]FieldDescriptor
}

// Set adds or replaces the descriptor for key. A key keeps its
// original position when set again.
func (ff *FormFields) Set(key string, desc FieldDescriptor) {
	if ff.descs == nil {
		ff.descs = map[string]FieldDescriptor{}
	}
	if _, ok := ff.descs[key]; !ok {
		ff.keys = append(ff.keys, key)
	}
	ff.descs[key] = desc
}

func (ff FormFields) Get(key string) (FieldDescriptor, bool) {
	desc, ok := ff.descs[key]
	return desc, ok
}

// Keys returns the field keys in declaration order.
func (ff FormFields) Keys() []string {
	return ff.keys
}

func (ff FormFields) Len() int {
	return len(ff.keys)
}

// MarshalJSON writes the fields as a JSON object, keys in
// declaration order.
func (ff FormFields) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')
	for i, key := range ff.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		d, err := json.Marshal(ff.descs[key])
		if err != nil {
			return nil, err
		}
		buf.Write(d)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, recording keys in the order they
// appear in the document.
func (ff *FormFields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "form fields")
	}
	if tok == nil { // JSON null, leave zero value
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("form fields: not a JSON object")
	}

	*ff = FormFields{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, "form fields: key")
		}
		key, ok := tok.(string)
		if !ok {
			return errors.Errorf("form fields: unexpected key token %v", tok)
		}

		desc := FieldDescriptor{}
		if err := dec.Decode(&desc); err != nil {
			return errors.Wrapf(err, "form fields: descriptor of %q", key)
		}
		ff.Set(key, desc)
	}

	_, err = dec.Token() // consume closing brace
	return errors.Wrap(err, "form fields")
}
