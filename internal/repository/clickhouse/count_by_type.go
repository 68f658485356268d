package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/token42-backend/internal/model"
)

const countByTypeQuery = `
SELECT event_type, count() AS cnt
FROM audit_logs FINAL
WHERE network = ?
GROUP BY event_type`

// CountByType returns how many exported entries network holds per event type. Unknown
// type names are ignored.
func (r *Repository) CountByType(ctx context.Context, network string) (counts map[model.EventType]uint64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("count_by_type", network, err, start)
	}()

	rs, err := r.conn.Query(ctx, countByTypeQuery, network)
	if err != nil {
		return nil, fmt.Errorf("query count by type: %w", err)
	}
	defer func() {
		if closeErr := rs.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", closeErr)
		}
	}()

	counts = make(map[model.EventType]uint64)
	for rs.Next() {
		var (
			name string
			cnt  uint64
		)
		if err = rs.Scan(&name, &cnt); err != nil {
			return nil, fmt.Errorf("scan count by type: %w", err)
		}
		if typ, ok := model.ParseEventType(name); ok {
			counts[typ] = cnt
		}
	}
	if err = rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate count by type: %w", err)
	}
	return counts, nil
}
