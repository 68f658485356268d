package audit

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/goodnatureofminers/token42-backend/internal/model"
)

// GetLog returns the entry with id.
func (l *Logger) GetLog(id uint64) (model.LogEntry, error) {
	if id >= uint64(len(l.entries)) {
		return model.LogEntry{}, ErrLogNotFound
	}
	return l.entries[id], nil
}

// Entries returns up to limit entries starting at id from, in log order.
func (l *Logger) Entries(from uint64, limit int) []model.LogEntry {
	n := uint64(len(l.entries))
	if from >= n || limit <= 0 {
		return []model.LogEntry{}
	}
	end := min(from+uint64(limit), n)
	out := make([]model.LogEntry, end-from)
	copy(out, l.entries[from:end])
	return out
}

// GetLogsByActor returns the ids of actor's entries in insertion order.
func (l *Logger) GetLogsByActor(actor common.Address, offset, limit uint64) []uint64 {
	return page(l.byActor[actor], offset, limit)
}

// GetLogsByType returns the ids of typ's entries in insertion order.
func (l *Logger) GetLogsByType(typ model.EventType, offset, limit uint64) []uint64 {
	return page(l.byType[typ], offset, limit)
}

// GetLogsByContract returns the ids of the entries targeting contract in insertion order.
func (l *Logger) GetLogsByContract(contract common.Address, offset, limit uint64) []uint64 {
	return page(l.byContract[contract], offset, limit)
}

// GetLogsByTimeRange returns the ids of entries stamped within [start, end]. end may not
// be later than now.
func (l *Logger) GetLogsByTimeRange(now, start, end time.Time, offset, limit uint64) ([]uint64, error) {
	if start.After(end) {
		return nil, ErrInvalidTimeRange
	}
	if end.After(now) {
		return nil, ErrFutureEndTime
	}
	var ids []uint64
	for _, e := range l.entries {
		if e.Timestamp.Before(start) || e.Timestamp.After(end) {
			continue
		}
		ids = append(ids, e.ID)
	}
	return page(ids, offset, limit), nil
}

// VerifyLogIntegrity recomputes the checksum of entry id.
func (l *Logger) VerifyLogIntegrity(id uint64) (bool, error) {
	e, err := l.GetLog(id)
	if err != nil {
		return false, err
	}
	return checksum(e) == e.Checksum, nil
}

// VerifyLogData reports whether data is the payload that was logged under id.
func (l *Logger) VerifyLogData(id uint64, data []byte) (bool, error) {
	e, err := l.GetLog(id)
	if err != nil {
		return false, err
	}
	return crypto.Keccak256Hash(data) == e.DataHash, nil
}

func (l *Logger) EventTypeCount(typ model.EventType) uint64       { return l.typeCount[typ] }
func (l *Logger) ActorActivityCount(actor common.Address) uint64 { return uint64(len(l.byActor[actor])) }

// GlobalStats groups the per-type counters by domain.
func (l *Logger) GlobalStats() GlobalStats {
	c := l.typeCount
	return GlobalStats{
		TotalLogs:      uint64(len(l.entries)),
		MintEvents:     c[model.TokenMinted],
		BurnEvents:     c[model.TokenBurned],
		TransferEvents: c[model.TokenTransferred],
		MiningEvents:   c[model.MiningStarted] + c[model.MiningStopped] + c[model.BlockMined] + c[model.DailyBonusClaimed],
		MultisigEvents: c[model.MultisigTransactionSubmitted] + c[model.MultisigTransactionConfirmed] +
			c[model.MultisigTransactionExecuted] + c[model.MultisigTransactionRevoked],
	}
}

// ActorStats summarizes actor's entries.
func (l *Logger) ActorStats(actor common.Address) (ActorStats, error) {
	if actor == (common.Address{}) {
		return ActorStats{}, ErrInvalidActor
	}
	c := l.actorTypes[actor]
	return ActorStats{
		Actor:           actor,
		TotalActions:    uint64(len(l.byActor[actor])),
		MintActions:     c[model.TokenMinted],
		BurnActions:     c[model.TokenBurned],
		TransferActions: c[model.TokenTransferred],
		LastActivity:    l.lastSeen[actor],
	}, nil
}

// page returns a copy of ids[offset:offset+limit]; an offset past the end yields an empty
// result.
func page(ids []uint64, offset, limit uint64) []uint64 {
	n := uint64(len(ids))
	if offset >= n || limit == 0 {
		return []uint64{}
	}
	end := n
	if limit < n-offset {
		end = offset + limit
	}
	out := make([]uint64, end-offset)
	copy(out, ids[offset:end])
	return out
}
