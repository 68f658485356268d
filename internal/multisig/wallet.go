// Package multisig implements an M-of-N owner wallet. Owners propose transactions,
// confirm or revoke them and execute once the quorum is met. Membership changes are only
// reachable through the wallet's own executed transactions.
package multisig

import (
	"errors"
	"math/big"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/model"
)

// Wallet is the multisig contract. Invariants: owners hold no duplicates and
// 1 <= required <= len(owners).
type Wallet struct {
	address  common.Address
	owners   []common.Address
	required uint64

	txs        []*Transaction
	confirmers map[uint64][]common.Address

	dispatcher Dispatcher
	bank       Bank
	emitter    Emitter
	metrics    Metrics
	logger     *zap.Logger
}

// New deploys a wallet at address.
func New(
	address common.Address,
	owners []common.Address,
	required uint64,
	dispatcher Dispatcher,
	bank Bank,
	emitter Emitter,
	metrics Metrics,
	logger *zap.Logger,
) (*Wallet, error) {
	if dispatcher == nil || bank == nil {
		return nil, errors.New("multisig dispatcher and bank are required")
	}
	if metrics == nil {
		return nil, errors.New("multisig metrics is required")
	}
	if len(owners) == 0 {
		return nil, ErrOwnersRequired
	}
	if required == 0 || required > uint64(len(owners)) {
		return nil, ErrInvalidRequirement
	}
	set := make([]common.Address, 0, len(owners))
	for _, owner := range owners {
		if owner == (common.Address{}) {
			return nil, ErrInvalidOwner
		}
		if slices.Contains(set, owner) {
			return nil, ErrDuplicateOwner
		}
		set = append(set, owner)
	}

	return &Wallet{
		address:    address,
		owners:     set,
		required:   required,
		confirmers: make(map[uint64][]common.Address),
		dispatcher: dispatcher,
		bank:       bank,
		emitter:    emitter,
		metrics:    metrics,
		logger:     logger.Named("multisig"),
	}, nil
}

// Deposit moves msg.Value from the caller into the wallet.
func (w *Wallet) Deposit(msg chain.Msg) (err error) {
	defer w.observe("deposit", time.Now(), &err)
	if msg.Value == nil || msg.Value.Sign() <= 0 {
		return model.ErrZeroAmount
	}
	if err = w.bank.TransferValue(msg.Sender, w.address, msg.Value); err != nil {
		return err
	}
	w.emit("Deposit", msg.Time, "sender", msg.Sender, "amount", msg.Value, "balance", w.Balance())
	return nil
}

// SubmitTransaction records a proposal and returns its index. Owner only.
func (w *Wallet) SubmitTransaction(msg chain.Msg, to common.Address, value *big.Int, call chain.Call) (idx uint64, err error) {
	defer w.observe("submit", time.Now(), &err)
	if err = w.onlyOwner(msg.Sender); err != nil {
		return 0, err
	}
	if to == (common.Address{}) {
		return 0, model.ErrZeroAddress
	}
	if value != nil && value.Sign() < 0 {
		return 0, model.ErrZeroAmount
	}

	idx = uint64(len(w.txs))
	w.txs = append(w.txs, &Transaction{
		Index:       idx,
		To:          to,
		Value:       model.Copy(value),
		Call:        call,
		SubmittedAt: msg.Time,
	})
	w.emit("SubmitTransaction", msg.Time, "owner", msg.Sender, "txIndex", idx, "to", to, "value", value, "method", method(call))
	return idx, nil
}

// ConfirmTransaction adds the caller's approval. Owner only.
func (w *Wallet) ConfirmTransaction(msg chain.Msg, idx uint64) (err error) {
	defer w.observe("confirm", time.Now(), &err)
	if err = w.onlyOwner(msg.Sender); err != nil {
		return err
	}
	tx, err := w.pending(idx)
	if err != nil {
		return err
	}
	if w.IsConfirmed(idx, msg.Sender) {
		return ErrAlreadyConfirmed
	}

	tx.Confirmations++
	w.confirmers[idx] = append(w.confirmers[idx], msg.Sender)
	w.emit("ConfirmTransaction", msg.Time, "owner", msg.Sender, "txIndex", idx)
	return nil
}

// RevokeConfirmation withdraws the caller's approval. Owner only.
func (w *Wallet) RevokeConfirmation(msg chain.Msg, idx uint64) (err error) {
	defer w.observe("revoke", time.Now(), &err)
	if err = w.onlyOwner(msg.Sender); err != nil {
		return err
	}
	tx, err := w.pending(idx)
	if err != nil {
		return err
	}
	if !w.IsConfirmed(idx, msg.Sender) {
		return ErrNotConfirmed
	}

	w.dropConfirmation(tx, msg.Sender)
	w.emit("RevokeConfirmation", msg.Time, "owner", msg.Sender, "txIndex", idx)
	return nil
}

// ExecuteTransaction performs a confirmed proposal. The executed flag is set before the
// interaction and restored if the interaction fails.
func (w *Wallet) ExecuteTransaction(msg chain.Msg, idx uint64) (err error) {
	defer w.observe("execute", time.Now(), &err)
	if err = w.onlyOwner(msg.Sender); err != nil {
		return err
	}
	tx, err := w.pending(idx)
	if err != nil {
		return err
	}
	if tx.Confirmations < w.required {
		return ErrNotEnoughConfirmations
	}

	tx.Executed = true
	if err = w.interact(msg, tx); err != nil {
		tx.Executed = false
		w.logger.Debug("execution failed", zap.Uint64("index", idx), zap.Error(err))
		return err
	}
	w.emit("ExecuteTransaction", msg.Time, "owner", msg.Sender, "txIndex", idx)
	return nil
}

// interact moves the recorded value to the target and then performs the call. A failed
// call returns the value to the wallet.
func (w *Wallet) interact(msg chain.Msg, tx *Transaction) error {
	if tx.Call == nil {
		return w.bank.TransferValue(w.address, tx.To, tx.Value)
	}
	if err := w.send(w.address, tx.To, tx.Value); err != nil {
		return err
	}

	var err error
	if tx.To == w.address {
		err = w.govern(msg.Time, tx.Call)
	} else {
		err = w.dispatcher.Dispatch(msg.As(w.address, model.Copy(tx.Value)), tx.To, tx.Call)
	}
	if err != nil {
		if refundErr := w.send(tx.To, w.address, tx.Value); refundErr != nil {
			w.logger.Error("value refund failed",
				zap.Uint64("index", tx.Index),
				zap.Stringer("to", tx.To),
				zap.Error(refundErr))
		}
	}
	return err
}

func (w *Wallet) send(from, to common.Address, value *big.Int) error {
	if value == nil || value.Sign() == 0 {
		return nil
	}
	return w.bank.TransferValue(from, to, value)
}

// Owners returns the owner set in insertion order.
func (w *Wallet) Owners() []common.Address {
	return slices.Clone(w.owners)
}

// IsOwner reports whether addr is an owner.
func (w *Wallet) IsOwner(addr common.Address) bool {
	return slices.Contains(w.owners, addr)
}

func (w *Wallet) Address() common.Address { return w.address }
func (w *Wallet) Required() uint64        { return w.required }
func (w *Wallet) TransactionCount() uint64 {
	return uint64(len(w.txs))
}

// Balance returns the wallet's native balance.
func (w *Wallet) Balance() *big.Int {
	return w.bank.BalanceAt(w.address)
}

// Transaction returns a copy of the proposal at idx.
func (w *Wallet) Transaction(idx uint64) (Transaction, error) {
	if idx >= uint64(len(w.txs)) {
		return Transaction{}, ErrTxNotFound
	}
	tx := *w.txs[idx]
	tx.Value = model.Copy(tx.Value)
	return tx, nil
}

// PendingTransactions lists the indices of proposals not yet executed.
func (w *Wallet) PendingTransactions() []uint64 {
	out := make([]uint64, 0)
	for _, tx := range w.txs {
		if !tx.Executed {
			out = append(out, tx.Index)
		}
	}
	return out
}

// CanExecute reports whether idx is pending and has reached the quorum.
func (w *Wallet) CanExecute(idx uint64) bool {
	tx, err := w.pending(idx)
	return err == nil && tx.Confirmations >= w.required
}

// Confirmations lists the owners that confirmed idx, in confirmation order.
func (w *Wallet) Confirmations(idx uint64) ([]common.Address, error) {
	if idx >= uint64(len(w.txs)) {
		return nil, ErrTxNotFound
	}
	return slices.Clone(w.confirmers[idx]), nil
}

// IsConfirmed reports whether owner confirmed idx.
func (w *Wallet) IsConfirmed(idx uint64, owner common.Address) bool {
	return slices.Contains(w.confirmers[idx], owner)
}

func (w *Wallet) pending(idx uint64) (*Transaction, error) {
	if idx >= uint64(len(w.txs)) {
		return nil, ErrTxNotFound
	}
	tx := w.txs[idx]
	if tx.Executed {
		return nil, ErrAlreadyExecuted
	}
	return tx, nil
}

func (w *Wallet) dropConfirmation(tx *Transaction, owner common.Address) {
	list := w.confirmers[tx.Index]
	i := slices.Index(list, owner)
	if i < 0 {
		return
	}
	w.confirmers[tx.Index] = slices.Delete(list, i, i+1)
	tx.Confirmations--
}

func (w *Wallet) onlyOwner(caller common.Address) error {
	if !w.IsOwner(caller) {
		return ErrNotOwner
	}
	return nil
}

func (w *Wallet) emit(name string, at time.Time, kv ...any) {
	if w.emitter == nil {
		return
	}
	w.emitter.Emit(chain.NewEvent(w.address, name, at, kv...))
}

func (w *Wallet) observe(operation string, started time.Time, err *error) {
	w.metrics.Observe(operation, *err, started)
}

func method(call chain.Call) string {
	if call == nil {
		return ""
	}
	return call.Method()
}
