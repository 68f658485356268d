package faucet

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Token is the ledger surface the faucet moves funds through.
	Token interface {
		BalanceOf(addr common.Address) *big.Int
		Transfer(msg chain.Msg, to common.Address, amount *big.Int) error
		TransferFrom(msg chain.Msg, from, to common.Address, amount *big.Int) error
	}
	Emitter interface {
		Emit(ev chain.Event)
	}
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Claim is the per-address drip record.
type Claim struct {
	LastClaim     time.Time
	TotalReceived *big.Int
}

// Stats is the faucet-wide summary.
type Stats struct {
	Balance          *big.Int
	TotalDistributed *big.Int
	TotalClaims      uint64
	DripAmount       *big.Int
	Cooldown         time.Duration
}

// UserStats is the per-address summary.
type UserStats struct {
	LastClaim     time.Time
	TotalReceived *big.Int
	CanDrip       bool
	Remaining     time.Duration
}
