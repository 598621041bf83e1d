// Package history keeps a journal of resolved prompts in Postgres.
package history

import (
	"context"
	"fmt"
	"time"

	"product-image-workers/internal/common/database"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS prompt_history (
		id             UUID PRIMARY KEY,
		task_type      TEXT NOT NULL,
		job_key        BIGINT NOT NULL,
		style_id       TEXT NOT NULL DEFAULT '',
		prompt         TEXT NOT NULL,
		provenance     TEXT NOT NULL,
		product_text   TEXT NOT NULL DEFAULT '',
		marketing_copy TEXT NOT NULL DEFAULT '',
		badges         TEXT[] NOT NULL DEFAULT '{}',
		created_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS prompt_history_created_at_idx ON prompt_history (created_at DESC)`,
}

// Entry is one journal row.
type Entry struct {
	ID            uuid.UUID `json:"id"`
	TaskType      string    `json:"taskType"`
	JobKey        int64     `json:"jobKey"`
	StyleID       string    `json:"styleId"`
	Prompt        string    `json:"prompt"`
	Provenance    string    `json:"provenance"`
	ProductText   string    `json:"productText"`
	MarketingCopy string    `json:"marketingCopy"`
	Badges        []string  `json:"badges"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Recorder is what workers need from the journal.
type Recorder interface {
	Record(ctx context.Context, e Entry) (uuid.UUID, error)
}

type Store struct {
	pg  *database.PostgresClient
	now func() time.Time
}

func NewStore(pg *database.PostgresClient) *Store {
	return &Store{pg: pg, now: time.Now}
}

// EnsureSchema creates the journal table when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	return s.pg.Migrate(ctx, schema...)
}

// Record inserts e. A zero ID or CreatedAt is filled in.
func (s *Store) Record(ctx context.Context, e Entry) (uuid.UUID, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	if e.Badges == nil {
		e.Badges = []string{}
	}

	_, err := s.pg.GetDB().ExecContext(ctx, `
		INSERT INTO prompt_history
			(id, task_type, job_key, style_id, prompt, provenance,
			 product_text, marketing_copy, badges, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.TaskType, e.JobKey, e.StyleID, e.Prompt, e.Provenance,
		e.ProductText, e.MarketingCopy, pq.Array(e.Badges), e.CreatedAt,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert history entry: %w", err)
	}
	return e.ID, nil
}

// ListRecent returns the newest entries first. limit is clamped to
// [1, MaxListLimit]; non-positive selects DefaultListLimit.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	rows, err := s.pg.GetDB().QueryContext(ctx, `
		SELECT id, task_type, job_key, style_id, prompt, provenance,
		       product_text, marketing_copy, badges, created_at
		FROM prompt_history
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		var badges pq.StringArray
		if err := rows.Scan(
			&e.ID, &e.TaskType, &e.JobKey, &e.StyleID, &e.Prompt, &e.Provenance,
			&e.ProductText, &e.MarketingCopy, &badges, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.Badges = []string(badges)
		if e.Badges == nil {
			e.Badges = []string{}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}
