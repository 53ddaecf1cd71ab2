package postgres

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/toddkasper/outage-query/pkg/storage"
)

func newCheckpointStore(db *sqlx.DB) *checkpointStore {
	return &checkpointStore{
		db: db,
	}
}

type checkpointStore struct {
	db *sqlx.DB
}

func (s *checkpointStore) Read(name string) (time.Time, error) {
	var value int64
	query := "SELECT value FROM checkpoints WHERE name=$1"
	if err := s.db.Get(&value, query, name); err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, storage.ErrNotFound
		}
		return time.Time{}, errors.Wrap(err, "failed to read checkpoint")
	}

	return time.Unix(value, 0).UTC(), nil
}

func (s *checkpointStore) Write(name string, value time.Time) error {
	query := `INSERT INTO checkpoints (name, value) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value`
	if _, err := s.db.Exec(query, name, value.Unix()); err != nil {
		return errors.Wrap(err, "failed to write checkpoint")
	}

	return nil
}

// CompareAndWrite is a single guarded statement, so two concurrent writers
// racing on the same expected value cannot both succeed.
func (s *checkpointStore) CompareAndWrite(name string, expected, value time.Time) (bool, error) {
	if expected.IsZero() {
		res, err := s.db.Exec(
			"INSERT INTO checkpoints (name, value) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING",
			name, value.Unix())
		if err != nil {
			return false, errors.Wrap(err, "failed to create checkpoint")
		}
		n, err := res.RowsAffected()
		if err != nil {
			return false, errors.Wrap(err, "failed to create checkpoint")
		}
		return n == 1, nil
	}

	res, err := s.db.Exec(
		"UPDATE checkpoints SET value=$1 WHERE name=$2 AND value=$3",
		value.Unix(), name, expected.Unix())
	if err != nil {
		return false, errors.Wrap(err, "failed to update checkpoint")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to update checkpoint")
	}

	return n == 1, nil
}
