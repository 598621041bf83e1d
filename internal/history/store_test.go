package history

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"product-image-workers/internal/common/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewStore(database.NewPostgresFromDB(db))
	s.now = func() time.Time { return fixedNow }
	return s, mock
}

func TestEnsureSchema(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS prompt_history").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS prompt_history_created_at_idx").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, s.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO prompt_history")).
		WithArgs(sqlmock.AnyArg(), "resolve-style", int64(42), "Organic_Warm", "mug, no text", "model",
			"陶瓷杯", "", `{"陶瓷","包邮"}`, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := s.Record(context.Background(), Entry{
		TaskType:    "resolve-style",
		JobKey:      42,
		StyleID:     "Organic_Warm",
		Prompt:      "mug, no text",
		Provenance:  "model",
		ProductText: "陶瓷杯",
		Badges:      []string{"陶瓷", "包邮"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordKeepsGivenID(t *testing.T) {
	s, mock := newMockStore(t)
	want := uuid.MustParse("7f1c7b1e-2a4e-4d8e-9d7e-0a8b6c5d4e3f")

	mock.ExpectExec("INSERT INTO prompt_history").
		WithArgs(want.String(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "{}", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := s.Record(context.Background(), Entry{ID: want, TaskType: "optimize-prompt"})
	require.NoError(t, err)
	assert.Equal(t, want, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO prompt_history").WillReturnError(errors.New("relation does not exist"))

	id, err := s.Record(context.Background(), Entry{TaskType: "resolve-style"})
	require.Error(t, err)
	assert.Equal(t, uuid.Nil, id)
	assert.Contains(t, err.Error(), "relation does not exist")
}

func TestListRecent(t *testing.T) {
	s, mock := newMockStore(t)
	id := uuid.New()

	columns := []string{"id", "task_type", "job_key", "style_id", "prompt", "provenance",
		"product_text", "marketing_copy", "badges", "created_at"}
	mock.ExpectQuery("SELECT (.+) FROM prompt_history ORDER BY created_at DESC LIMIT").
		WithArgs(DefaultListLimit).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(id.String(), "resolve-style", int64(7), "Tech_Dark", "phone", "model",
				"手机", "新品", "{新品,热卖}", fixedNow).
			AddRow(uuid.New().String(), "merge-vision-prompt", int64(8), "", "pan", "exception_fallback",
				"", "", "{}", fixedNow.Add(-time.Minute)))

	entries, err := s.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, "Tech_Dark", entries[0].StyleID)
	assert.Equal(t, []string{"新品", "热卖"}, entries[0].Badges)
	assert.Equal(t, fixedNow, entries[0].CreatedAt)
	assert.Equal(t, []string{}, entries[1].Badges)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentClampsLimit(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM prompt_history").
		WithArgs(MaxListLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	entries, err := s.ListRecent(context.Background(), 10000)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentQueryError(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	_, err := s.ListRecent(context.Background(), 5)
	assert.ErrorContains(t, err, "connection reset")
}
