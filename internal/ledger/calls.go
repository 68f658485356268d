package ledger

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
)

type (
	TransferCall struct {
		To     common.Address
		Amount *big.Int
	}
	ApproveCall struct {
		Spender common.Address
		Amount  *big.Int
	}
	TransferFromCall struct {
		From   common.Address
		To     common.Address
		Amount *big.Int
	}
	MintCall struct {
		To     common.Address
		Amount *big.Int
	}
	BurnCall struct {
		Amount *big.Int
	}
	AddMinterCall struct {
		Minter common.Address
	}
	RemoveMinterCall struct {
		Minter common.Address
	}
)

func (TransferCall) Method() string     { return "transfer" }
func (ApproveCall) Method() string      { return "approve" }
func (TransferFromCall) Method() string { return "transferFrom" }
func (MintCall) Method() string         { return "mint" }
func (BurnCall) Method() string         { return "burn" }
func (AddMinterCall) Method() string    { return "addMinter" }
func (RemoveMinterCall) Method() string { return "removeMinter" }

// Invoke executes a dispatched call on behalf of msg.Sender.
func (l *Ledger) Invoke(msg chain.Msg, call chain.Call) error {
	switch c := call.(type) {
	case TransferCall:
		return l.Transfer(msg, c.To, c.Amount)
	case ApproveCall:
		return l.Approve(msg, c.Spender, c.Amount)
	case TransferFromCall:
		return l.TransferFrom(msg, c.From, c.To, c.Amount)
	case MintCall:
		return l.Mint(msg, c.To, c.Amount)
	case BurnCall:
		return l.Burn(msg, c.Amount)
	case AddMinterCall:
		return l.AddMinter(msg, c.Minter)
	case RemoveMinterCall:
		return l.RemoveMinter(msg, c.Minter)
	default:
		return chain.ErrUnsupportedCall
	}
}
