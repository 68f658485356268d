package multisig

import (
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
)

// Governance commands. They take effect only when carried by an executed transaction that
// targets the wallet itself.
type (
	AddOwnerCall          struct{ Owner common.Address }
	RemoveOwnerCall       struct{ Owner common.Address }
	ChangeRequirementCall struct{ Required uint64 }
)

func (AddOwnerCall) Method() string          { return "addOwner" }
func (RemoveOwnerCall) Method() string       { return "removeOwner" }
func (ChangeRequirementCall) Method() string { return "changeRequirement" }

// AddOwner is only accepted from the wallet itself.
func (w *Wallet) AddOwner(msg chain.Msg, owner common.Address) (err error) {
	defer w.observe("add_owner", time.Now(), &err)
	if msg.Sender != w.address {
		return ErrOnlyWallet
	}
	return w.addOwner(msg.Time, owner)
}

// RemoveOwner is only accepted from the wallet itself.
func (w *Wallet) RemoveOwner(msg chain.Msg, owner common.Address) (err error) {
	defer w.observe("remove_owner", time.Now(), &err)
	if msg.Sender != w.address {
		return ErrOnlyWallet
	}
	return w.removeOwner(msg.Time, owner)
}

// ChangeRequirement is only accepted from the wallet itself.
func (w *Wallet) ChangeRequirement(msg chain.Msg, required uint64) (err error) {
	defer w.observe("change_requirement", time.Now(), &err)
	if msg.Sender != w.address {
		return ErrOnlyWallet
	}
	return w.changeRequirement(msg.Time, required)
}

func (w *Wallet) govern(at time.Time, call chain.Call) error {
	switch c := call.(type) {
	case AddOwnerCall:
		return w.addOwner(at, c.Owner)
	case RemoveOwnerCall:
		return w.removeOwner(at, c.Owner)
	case ChangeRequirementCall:
		return w.changeRequirement(at, c.Required)
	default:
		return chain.ErrUnsupportedCall
	}
}

func (w *Wallet) addOwner(at time.Time, owner common.Address) error {
	if owner == (common.Address{}) || owner == w.address {
		return ErrInvalidOwner
	}
	if w.IsOwner(owner) {
		return ErrDuplicateOwner
	}
	w.owners = append(w.owners, owner)
	w.emit("OwnerAdded", at, "owner", owner)
	w.logger.Info("owner added", zap.Stringer("owner", owner), zap.Int("owners", len(w.owners)))
	return nil
}

// removeOwner drops owner's confirmations from every pending transaction and lowers the
// requirement when it would exceed the new owner count.
func (w *Wallet) removeOwner(at time.Time, owner common.Address) error {
	i := slices.Index(w.owners, owner)
	if i < 0 {
		return ErrUnknownOwner
	}
	if len(w.owners) == 1 {
		return ErrLastOwner
	}

	w.owners = slices.Delete(w.owners, i, i+1)
	for _, tx := range w.txs {
		if !tx.Executed {
			w.dropConfirmation(tx, owner)
		}
	}
	w.emit("OwnerRemoved", at, "owner", owner)
	if n := uint64(len(w.owners)); w.required > n {
		w.required = n
		w.emit("RequirementChanged", at, "required", n)
	}
	w.logger.Info("owner removed", zap.Stringer("owner", owner), zap.Int("owners", len(w.owners)))
	return nil
}

func (w *Wallet) changeRequirement(at time.Time, required uint64) error {
	if required == 0 || required > uint64(len(w.owners)) {
		return ErrInvalidRequirement
	}
	w.required = required
	w.emit("RequirementChanged", at, "required", required)
	return nil
}
