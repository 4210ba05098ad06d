package form

import (
	"context"
	"database/sql"

	"github.com/goccy/go-json"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"github.com/c88lopez/vial-form-app-api/fault"
	"github.com/c88lopez/vial-form-app-api/model"
)

// Store owns form definitions and their submitted records. All
// methods surface failures as fault values; storage detail never
// reaches the caller directly.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListForms(ctx context.Context) ([]model.Form, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, fields
		FROM form`)
	if err != nil {
		return nil, fault.Persistence("failed to fetch forms", err)
	}
	defer rows.Close()

	forms := []model.Form{}
	for rows.Next() {
		f := model.Form{}
		var fieldsJson string
		err = rows.Scan(&f.ID, &f.Name, &fieldsJson)
		if err != nil {
			return nil, fault.Persistence("failed to fetch forms", err)
		}

		f.Fields, err = decodeFields(fieldsJson)
		if err != nil {
			return nil, fault.Persistence("failed to fetch forms", err)
		}

		forms = append(forms, f)
	}
	if err = rows.Err(); err != nil {
		return nil, fault.Persistence("failed to fetch forms", err)
	}

	return forms, nil
}

func (s *Store) GetForm(ctx context.Context, id string) (model.Form, error) {
	f := model.Form{}
	var fieldsJson string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, fields
		FROM form
		WHERE id = ?`,
		id,
	).Scan(&f.ID, &f.Name, &fieldsJson)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Form{}, fault.NotFound("form " + id + " does not exist")
	}
	if err != nil {
		return model.Form{}, fault.Persistence("failed to fetch form", err)
	}

	f.Fields, err = decodeFields(fieldsJson)
	if err != nil {
		return model.Form{}, fault.Persistence("failed to fetch form", err)
	}

	return f, nil
}

func (s *Store) CreateForm(ctx context.Context, name string, fields model.FormFields) (model.Form, error) {
	id, err := newID()
	if err != nil {
		return model.Form{}, fault.Persistence("failed to create form", err)
	}

	fieldsJson, err := json.Marshal(fields)
	if err != nil {
		return model.Form{}, fault.Persistence("failed to create form", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO form (id, name, fields) VALUES (?, ?, ?)`,
		id,
		name,
		string(fieldsJson),
	)
	if err != nil {
		return model.Form{}, fault.Persistence("failed to create form", err)
	}

	return model.Form{ID: id, Name: name, Fields: fields}, nil
}

// decodeFields parses the stored fields column. A stored blob that
// does not decode is a storage fault, not a silent cast.
func decodeFields(raw string) (model.FormFields, error) {
	fields := model.FormFields{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return model.FormFields{}, errors.Wrap(err, "malformed stored fields")
	}
	return fields, nil
}

func newID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", errors.Wrap(err, "assign id")
	}
	return id.String(), nil
}
