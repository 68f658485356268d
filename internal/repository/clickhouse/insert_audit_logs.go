package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/token42-backend/internal/model"
)

const insertAuditLogsQuery = `
INSERT INTO audit_logs (
	network,
	id,
	event_type,
	actor,
	target,
	timestamp,
	data_hash,
	checksum
) VALUES`

// InsertAuditLogs stores entries for network. Rows are keyed by (network, id), so
// re-inserting an entry is idempotent after merges.
func (r *Repository) InsertAuditLogs(ctx context.Context, network string, entries []model.LogEntry) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("insert_audit_logs", network, err, start)
	}()

	if len(entries) == 0 {
		return nil
	}

	b, err := r.conn.PrepareBatch(ctx, insertAuditLogsQuery)
	if err != nil {
		return fmt.Errorf("prepare audit logs batch: %w", err)
	}

	for _, e := range entries {
		if err = b.Append(
			network,
			e.ID,
			e.Type.String(),
			e.Actor.Hex(),
			e.Target.Hex(),
			e.Timestamp.UTC(),
			e.DataHash.Hex(),
			e.Checksum.Hex(),
		); err != nil {
			_ = b.Abort()
			return fmt.Errorf("append audit log %d: %w", e.ID, err)
		}
	}

	if err = b.Send(); err != nil {
		return fmt.Errorf("insert audit logs: %w", err)
	}
	return nil
}
