package ports

import (
	"context"

	"cleanframe/domain/core"
	"cleanframe/domain/report"
)

// SnapshotRepository persists report snapshots for later comparison.
// Persistence is optional; sessions work entirely in memory without one.
type SnapshotRepository interface {
	// Save stores a report snapshot for a session
	Save(ctx context.Context, sessionID core.SessionID, rep *report.Report) (core.SnapshotID, error)

	// GetLatest returns the most recent snapshot for a session
	GetLatest(ctx context.Context, sessionID core.SessionID) (*report.Report, error)

	// ListBySession returns all snapshots for a session, newest first
	ListBySession(ctx context.Context, sessionID core.SessionID, limit int) ([]*report.Report, error)
}
