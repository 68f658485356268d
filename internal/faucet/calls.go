package faucet

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
)

type (
	DripCall           struct{}
	FundCall           struct{ Amount *big.Int }
	SetDripAmountCall  struct{ Amount *big.Int }
	SetCooldownCall    struct{ Cooldown time.Duration }
	WithdrawTokensCall struct {
		To     common.Address
		Amount *big.Int
	}
	PauseCall   struct{}
	UnpauseCall struct{}
)

func (DripCall) Method() string           { return "drip" }
func (FundCall) Method() string           { return "fund" }
func (SetDripAmountCall) Method() string  { return "setDripAmount" }
func (SetCooldownCall) Method() string    { return "setCooldownTime" }
func (WithdrawTokensCall) Method() string { return "withdrawTokens" }
func (PauseCall) Method() string          { return "pause" }
func (UnpauseCall) Method() string        { return "unpause" }

// Invoke executes a dispatched call on behalf of msg.Sender.
func (f *Faucet) Invoke(msg chain.Msg, call chain.Call) error {
	switch c := call.(type) {
	case DripCall:
		return f.Drip(msg)
	case FundCall:
		return f.Fund(msg, c.Amount)
	case SetDripAmountCall:
		return f.SetDripAmount(msg, c.Amount)
	case SetCooldownCall:
		return f.SetCooldown(msg, c.Cooldown)
	case WithdrawTokensCall:
		return f.WithdrawTokens(msg, c.To, c.Amount)
	case PauseCall:
		return f.Pause(msg)
	case UnpauseCall:
		return f.Unpause(msg)
	default:
		return chain.ErrUnsupportedCall
	}
}
