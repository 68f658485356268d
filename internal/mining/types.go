package mining

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Minter is the token capability the engine pays rewards through.
	Minter interface {
		Mint(msg chain.Msg, to common.Address, amount *big.Int) error
	}
	Emitter interface {
		Emit(ev chain.Event)
	}
	Metrics interface {
		Observe(operation string, err error, started time.Time)
		SetDifficulty(difficulty uint64)
		SetCurrentBlock(number uint64)
	}
)

// Miner is the per-account mining record.
type Miner struct {
	Power         uint8
	Active        bool
	StartTime     time.Time
	LastClaim     time.Time
	LastBlockTime time.Time
	BlocksFound   uint64
	TotalMined    *big.Int
}

// Block is an accepted proof-of-work claim.
type Block struct {
	Number     uint64
	Miner      common.Address
	Timestamp  time.Time
	Reward     *big.Int
	Difficulty uint64
	Bits       uint32
	Nonce      *big.Int
	Hash       common.Hash
}

// GlobalStats is the engine-wide summary.
type GlobalStats struct {
	CurrentBlock  uint64
	TotalMined    *big.Int
	Difficulty    uint64
	ActiveMiners  uint64
	CurrentReward *big.Int
	NextRetarget  uint64
}
