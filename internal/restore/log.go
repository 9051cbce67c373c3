package restore

import (
	"context"

	"github.com/DevinBristol/salesforce-org-analysis/internal/boundedlog"
	"github.com/DevinBristol/salesforce-org-analysis/internal/fs"
)

// MaxLogEntries caps the rollback log; oldest attempts are evicted first.
const MaxLogEntries = 50

// Log records every restore attempt, successful or not.
type Log struct {
	log *boundedlog.Log[RollbackResult]
}

func NewLog(path string, fsys fs.FS) *Log {
	return &Log{log: boundedlog.New[RollbackResult](path, fsys, MaxLogEntries)}
}

func (l *Log) Append(ctx context.Context, r RollbackResult) error {
	return l.log.Append(ctx, r)
}

// List returns logged attempts, newest first.
func (l *Log) List() ([]RollbackResult, error) {
	return l.log.List()
}
