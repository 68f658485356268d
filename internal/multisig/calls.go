package multisig

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
)

type (
	DepositCall struct{}
	SubmitCall  struct {
		To    common.Address
		Value *big.Int
		Call  chain.Call
	}
	ConfirmCall struct{ Index uint64 }
	RevokeCall  struct{ Index uint64 }
	ExecuteCall struct{ Index uint64 }
)

func (DepositCall) Method() string { return "deposit" }
func (SubmitCall) Method() string  { return "submitTransaction" }
func (ConfirmCall) Method() string { return "confirmTransaction" }
func (RevokeCall) Method() string  { return "revokeConfirmation" }
func (ExecuteCall) Method() string { return "executeTransaction" }

// Invoke executes a dispatched call. Governance commands arriving this way are subject to
// the same wallet-only check as direct calls.
func (w *Wallet) Invoke(msg chain.Msg, call chain.Call) error {
	switch c := call.(type) {
	case DepositCall:
		return w.Deposit(msg)
	case SubmitCall:
		_, err := w.SubmitTransaction(msg, c.To, c.Value, c.Call)
		return err
	case ConfirmCall:
		return w.ConfirmTransaction(msg, c.Index)
	case RevokeCall:
		return w.RevokeConfirmation(msg, c.Index)
	case ExecuteCall:
		return w.ExecuteTransaction(msg, c.Index)
	case AddOwnerCall:
		return w.AddOwner(msg, c.Owner)
	case RemoveOwnerCall:
		return w.RemoveOwner(msg, c.Owner)
	case ChangeRequirementCall:
		return w.ChangeRequirement(msg, c.Required)
	default:
		return chain.ErrUnsupportedCall
	}
}
