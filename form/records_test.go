package form

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c88lopez/vial-form-app-api/fault"
	"github.com/c88lopez/vial-form-app-api/model"
)

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestSubmitRecord_WritesOneRowPerSchemaField(t *testing.T) {
	store, db := testStore(t)
	ctx := context.Background()

	form, err := store.CreateForm(ctx, "Survey", surveyFields())
	require.NoError(t, err)

	recordId, err := store.SubmitRecord(ctx, form.ID, model.SubmittedAnswers{"q1": "Alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, recordId)

	// one row per schema key, answered or not
	assert.Equal(t, 1, countRows(t, db, "source_record"))
	assert.Equal(t, 2, countRows(t, db, "source_data"))

	records, err := store.ListRecords(ctx, form.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, records[0].SourceData, 2)

	assert.Equal(t, recordId, records[0].ID)
	assert.Equal(t, form.ID, records[0].FormID)

	answered := records[0].SourceData[0]
	assert.Equal(t, "Name?", answered.Question)
	require.NotNil(t, answered.Answer)
	assert.Equal(t, "Alice", *answered.Answer)

	// optional field with no answer is recorded as NULL
	unanswered := records[0].SourceData[1]
	assert.Equal(t, "Favorite color?", unanswered.Question)
	assert.Nil(t, unanswered.Answer)
}

func TestSubmitRecord_ValidationFailureWritesNothing(t *testing.T) {
	store, db := testStore(t)
	ctx := context.Background()

	form, err := store.CreateForm(ctx, "Survey", surveyFields())
	require.NoError(t, err)

	_, err = store.SubmitRecord(ctx, form.ID, model.SubmittedAnswers{
		"q1": "",
		"q2": "ignored-extra",
	})
	require.Error(t, err)
	assert.True(t, fault.IsValidation(err))

	assert.Equal(t, 0, countRows(t, db, "source_record"))
	assert.Equal(t, 0, countRows(t, db, "source_data"))
}

func TestSubmitRecord_ExtraAnswersProduceNoRows(t *testing.T) {
	store, db := testStore(t)
	ctx := context.Background()

	form, err := store.CreateForm(ctx, "Survey", surveyFields())
	require.NoError(t, err)

	_, err = store.SubmitRecord(ctx, form.ID, model.SubmittedAnswers{
		"q1":      "Alice",
		"unknown": "never stored",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, countRows(t, db, "source_data"))

	records, err := store.ListRecords(ctx, form.ID)
	require.NoError(t, err)
	for _, d := range records[0].SourceData {
		if d.Answer != nil {
			assert.NotEqual(t, "never stored", *d.Answer)
		}
	}
}

func TestSubmitRecord_UnknownFormIsNotFound(t *testing.T) {
	store, _ := testStore(t)

	_, err := store.SubmitRecord(context.Background(), "nonexistent-id", model.SubmittedAnswers{})
	require.Error(t, err)
	assert.True(t, fault.IsNotFound(err))
}

func TestSubmitRecord_FailedWriteLeavesNoPartialRecord(t *testing.T) {
	store, db := testStore(t)
	ctx := context.Background()

	form, err := store.CreateForm(ctx, "Survey", surveyFields())
	require.NoError(t, err)

	// break the answer-row insert mid-transaction: the source_record
	// insert succeeds, the source_data insert cannot
	_, err = db.ExecContext(ctx, "DROP TABLE source_data")
	require.NoError(t, err)

	_, err = store.SubmitRecord(ctx, form.ID, model.SubmittedAnswers{"q1": "Alice"})
	require.Error(t, err)
	assert.True(t, fault.IsPersistence(err))

	assert.Equal(t, 0, countRows(t, db, "source_record"))
}

func TestSubmitRecord_SnapshotsQuestionText(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	fields := model.FormFields{}
	fields.Set("q1", model.FieldDescriptor{Type: "text", Question: "Original question?", Required: true})
	form, err := store.CreateForm(ctx, "Survey", fields)
	require.NoError(t, err)

	_, err = store.SubmitRecord(ctx, form.ID, model.SubmittedAnswers{"q1": "yes"})
	require.NoError(t, err)

	records, err := store.ListRecords(ctx, form.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Original question?", records[0].SourceData[0].Question)
}

func TestListRecords_UnknownFormIsNotFound(t *testing.T) {
	store, _ := testStore(t)

	_, err := store.ListRecords(context.Background(), "nonexistent-id")
	require.Error(t, err)
	assert.True(t, fault.IsNotFound(err))
}

func TestListRecords_GroupsRowsByRecord(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	form, err := store.CreateForm(ctx, "Survey", surveyFields())
	require.NoError(t, err)

	first, err := store.SubmitRecord(ctx, form.ID, model.SubmittedAnswers{"q1": "Alice"})
	require.NoError(t, err)
	second, err := store.SubmitRecord(ctx, form.ID, model.SubmittedAnswers{"q1": "Bob", "q2": "green"})
	require.NoError(t, err)

	records, err := store.ListRecords(ctx, form.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, first, records[0].ID)
	assert.Equal(t, second, records[1].ID)
	assert.Len(t, records[0].SourceData, 2)
	assert.Len(t, records[1].SourceData, 2)
}
