package clickhouse

import (
	"context"
	"fmt"
	"time"
)

const maxLogIDQuery = `
SELECT toUInt64(max(id)) AS max_id, count() AS cnt
FROM audit_logs
WHERE network = ?`

// MaxLogID returns the highest exported entry id for network. The boolean is false when
// nothing has been exported yet.
func (r *Repository) MaxLogID(ctx context.Context, network string) (id uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_log_id", network, err, start)
	}()

	rs, err := r.conn.Query(ctx, maxLogIDQuery, network)
	if err != nil {
		return 0, false, fmt.Errorf("query max log id: %w", err)
	}
	defer func() {
		if closeErr := rs.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	if !rs.Next() {
		return 0, false, nil
	}
	var cnt uint64
	if err = rs.Scan(&id, &cnt); err != nil {
		return 0, false, fmt.Errorf("scan max log id: %w", err)
	}
	if err = rs.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate max log id: %w", err)
	}
	if cnt == 0 {
		return 0, false, nil
	}
	return id, true, nil
}
