package multisig

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Dispatcher routes an executed transaction's call to its target contract.
	Dispatcher interface {
		Dispatch(msg chain.Msg, to common.Address, call chain.Call) error
	}
	// Bank moves native value.
	Bank interface {
		BalanceAt(addr common.Address) *big.Int
		TransferValue(from, to common.Address, amount *big.Int) error
	}
	Emitter interface {
		Emit(ev chain.Event)
	}
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Transaction is a proposal held by the wallet. A nil Call is a plain value transfer.
type Transaction struct {
	Index         uint64
	To            common.Address
	Value         *big.Int
	Call          chain.Call
	Executed      bool
	Confirmations uint64
	SubmittedAt   time.Time
}
