package postgres

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/toddkasper/outage-query/pkg/model"
)

func newMentionStore(db *sqlx.DB) *mentionStore {
	return &mentionStore{
		db: db,
	}
}

type mentionStore struct {
	db *sqlx.DB
}

// Mentions are keyed by the upstream tweet ID and created_at is stored as
// epoch seconds, which keeps the range scan a plain integer comparison.
type sqlDataMention struct {
	ID        string `db:"id"`
	CreatedAt int64  `db:"created_at"`
}

func (d *sqlDataMention) Scan(m *model.Mention) error {
	d.ID = m.ID
	d.CreatedAt = m.CreatedAt.Unix()

	return nil
}

func (d *sqlDataMention) Model() (*model.Mention, error) {
	m := &model.Mention{
		ID:        d.ID,
		CreatedAt: time.Unix(d.CreatedAt, 0).UTC(),
	}

	return m, nil
}

func (s *mentionStore) Upsert(m *model.Mention) error {
	return upsertMention(s.db, m)
}

func (s *mentionStore) ScanRange(min, max time.Time) ([]model.Mention, error) {
	return scanMentionRange(s.db, min, max)
}

func (s *mentionStore) Count() (int, error) {
	return countMentions(s.db)
}

func upsertMention(db *sqlx.DB, m *model.Mention) error {
	d := sqlDataMention{}
	if err := d.Scan(m); err != nil {
		return errors.Wrap(err, "failed to convert mention model to SQL data")
	}

	query := `INSERT INTO mentions (id, created_at) VALUES (:id, :created_at)
		ON CONFLICT (id) DO UPDATE SET created_at = EXCLUDED.created_at`
	if _, err := db.NamedExec(query, d); err != nil {
		return errors.Wrap(err, "failed to upsert mention")
	}

	return nil
}

func scanMentionRange(db *sqlx.DB, min, max time.Time) ([]model.Mention, error) {
	rows := make([]sqlDataMention, 0)

	query := "SELECT * FROM mentions WHERE created_at BETWEEN $1 AND $2"
	if err := db.Select(&rows, query, min.Unix(), max.Unix()); err != nil {
		return nil, errors.Wrap(err, "failed to scan mention range")
	}

	models := make([]model.Mention, 0, len(rows))
	for _, d := range rows {
		m, err := d.Model()
		if err != nil {
			return nil, errors.Wrap(err, "failed to convert SQL data to mention model")
		}

		models = append(models, *m)
	}

	return models, nil
}

func countMentions(db *sqlx.DB) (int, error) {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM mentions"); err != nil {
		return 0, errors.Wrap(err, "failed to count mentions")
	}

	return count, nil
}
