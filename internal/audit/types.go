package audit

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Emitter interface {
		Emit(ev chain.Event)
	}
	Metrics interface {
		Observe(operation string, err error, started time.Time)
		SetLogCount(count uint64)
	}
)

// GlobalStats aggregates the per-type counters.
type GlobalStats struct {
	TotalLogs      uint64 `json:"totalLogs"`
	MintEvents     uint64 `json:"mintEvents"`
	BurnEvents     uint64 `json:"burnEvents"`
	TransferEvents uint64 `json:"transferEvents"`
	MiningEvents   uint64 `json:"miningEvents"`
	MultisigEvents uint64 `json:"multisigEvents"`
}

// ActorStats aggregates the entries attributed to one actor.
type ActorStats struct {
	Actor           common.Address `json:"actor"`
	TotalActions    uint64         `json:"totalActions"`
	MintActions     uint64         `json:"mintActions"`
	BurnActions     uint64         `json:"burnActions"`
	TransferActions uint64         `json:"transferActions"`
	LastActivity    time.Time      `json:"lastActivity"`
}
