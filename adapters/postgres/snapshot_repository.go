// Package postgres persists report snapshots so runs of the same dataset
// can be compared over time.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"cleanframe/domain/core"
	"cleanframe/domain/report"
	"cleanframe/internal/errors"
	"cleanframe/ports"
)

// snapshotRepository implements the SnapshotRepository interface
type snapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *sqlx.DB) ports.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Save stores a report snapshot for a session
func (r *snapshotRepository) Save(ctx context.Context, sessionID core.SessionID, rep *report.Report) (core.SnapshotID, error) {
	reportJSON, err := json.Marshal(rep)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal report")
	}

	id := core.SnapshotID(core.NewID())
	query := `INSERT INTO report_snapshots (
		id, session_id, rows_count, columns_count, report, generated_at
	) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.db.ExecContext(ctx, query,
		id.String(), sessionID.String(), rep.Rows, rep.Columns, reportJSON, rep.GeneratedAt.Time(),
	)
	if err != nil {
		return "", errors.Wrap(err, "failed to save snapshot")
	}
	return id, nil
}

// GetLatest returns the most recent snapshot for a session
func (r *snapshotRepository) GetLatest(ctx context.Context, sessionID core.SessionID) (*report.Report, error) {
	query := `SELECT report FROM report_snapshots
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var reportJSON []byte
	err := r.db.QueryRowContext(ctx, query, sessionID.String()).Scan(&reportJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("snapshot")
		}
		return nil, errors.Wrap(err, "failed to get latest snapshot")
	}

	var rep report.Report
	if err := json.Unmarshal(reportJSON, &rep); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal report")
	}
	return &rep, nil
}

// ListBySession returns all snapshots for a session, newest first
func (r *snapshotRepository) ListBySession(ctx context.Context, sessionID core.SessionID, limit int) ([]*report.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT report FROM report_snapshots
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, sessionID.String(), limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query snapshots")
	}
	defer rows.Close()

	var reports []*report.Report
	for rows.Next() {
		var reportJSON []byte
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, errors.Wrap(err, "failed to scan snapshot")
		}
		var rep report.Report
		if err := json.Unmarshal(reportJSON, &rep); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal report")
		}
		reports = append(reports, &rep)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate snapshots")
	}
	return reports, nil
}
