package form

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/c88lopez/vial-form-app-api/fault"
	"github.com/c88lopez/vial-form-app-api/model"
)

// SubmitRecord accepts one submission against the identified form:
// load the form, validate the answers against its schema, then
// expand and commit the record atomically. Returns the new record id.
func (s *Store) SubmitRecord(ctx context.Context, formID string, answers model.SubmittedAnswers) (string, error) {
	form, err := s.GetForm(ctx, formID)
	if err != nil {
		return "", err
	}

	if err := Validate(form.Fields, answers); err != nil {
		return "", err
	}

	return s.writeRecord(ctx, form, answers)
}

// writeRecord inserts the SourceRecord and one SourceData row per
// schema key in a single transaction. All rows or none.
func (s *Store) writeRecord(ctx context.Context, form model.Form, answers model.SubmittedAnswers) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fault.Persistence("failed to submit record", err)
	}
	defer tx.Rollback()

	recordID, err := newID()
	if err != nil {
		return "", fault.Persistence("failed to submit record", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO source_record (id, form_id) VALUES (?, ?)`,
		recordID,
		form.ID,
	)
	if err != nil {
		return "", fault.Persistence("failed to submit record", errors.Wrap(err, "insert source_record"))
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO source_data (source_record_id, question, answer)
		VALUES (?, ?, ?)`)
	if err != nil {
		return "", fault.Persistence("failed to submit record", errors.Wrap(err, "prepare source_data"))
	}
	defer stmt.Close()

	for _, key := range form.Fields.Keys() {
		desc, _ := form.Fields.Get(key)

		// question text is snapshot at write time; absent answers
		// are stored as NULL
		var answer any
		if value, ok := answers[key]; ok {
			answer = value
		}

		_, err := stmt.ExecContext(ctx, recordID, desc.Question, answer)
		if err != nil {
			return "", fault.Persistence("failed to submit record", errors.Wrap(err, "insert source_data"))
		}
	}

	err = tx.Commit()
	if err != nil {
		return "", fault.Persistence("failed to submit record", errors.Wrap(err, "commit"))
	}

	return recordID, nil
}

// ListRecords returns every record submitted against the form, each
// with its answer rows in insertion order.
func (s *Store) ListRecords(ctx context.Context, formID string) ([]model.Record, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM form WHERE id = ?`,
		formID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.NotFound("form " + formID + " does not exist")
	}
	if err != nil {
		return nil, fault.Persistence("failed to fetch records", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.form_id, d.question, d.answer
		FROM source_record r
		INNER JOIN source_data d ON (r.id = d.source_record_id)
		WHERE r.form_id = ?
		ORDER BY d.id`,
		formID,
	)
	if err != nil {
		return nil, fault.Persistence("failed to fetch records", err)
	}
	defer rows.Close()

	records := []model.Record{}
	for rows.Next() {
		var recordID, recordFormID string
		d := model.SourceData{}
		var answer sql.NullString
		err = rows.Scan(&recordID, &recordFormID, &d.Question, &answer)
		if err != nil {
			return nil, fault.Persistence("failed to fetch records", err)
		}
		d.SourceRecordID = recordID
		if answer.Valid {
			d.Answer = &answer.String
		}

		lastIdx := len(records) - 1
		if lastIdx > -1 && records[lastIdx].ID == recordID {
			records[lastIdx].SourceData = append(records[lastIdx].SourceData, d)
		} else {
			records = append(records, model.Record{
				ID:         recordID,
				FormID:     recordFormID,
				SourceData: []model.SourceData{d},
			})
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fault.Persistence("failed to fetch records", err)
	}

	return records, nil
}
