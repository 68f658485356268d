package chain

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/token42-backend/internal/clock"
	"github.com/goodnatureofminers/token42-backend/internal/model"
)

var (
	ErrUnknownContract = model.Revert(model.ErrNotFound, "no contract at target address")
	ErrUnsupportedCall = model.Revert(model.ErrInvalidArgument, "call not supported by target")
	ErrNativeBalance   = model.Revert(model.ErrInvalidState, "insufficient native balance")
)

// Chain applies transactions one at a time. Contracts registered with it are not safe for
// concurrent use on their own; every access goes through Exec or View.
type Chain struct {
	mu    sync.RWMutex
	pubMu sync.Mutex

	clock  clock.Clock
	logger *zap.Logger
	feed   event.Feed

	contracts map[common.Address]Contract
	native    map[common.Address]*big.Int
	nonces    map[common.Address]uint64

	inTx    bool
	pending []Event
	height  uint64
}

// New builds an empty chain reading time from clk.
func New(clk clock.Clock, logger *zap.Logger) *Chain {
	return &Chain{
		clock:     clk,
		logger:    logger.Named("chain"),
		contracts: make(map[common.Address]Contract),
		native:    make(map[common.Address]*big.Int),
		nonces:    make(map[common.Address]uint64),
	}
}

// Now returns the current block time.
func (c *Chain) Now() time.Time {
	return c.blockTime()
}

// blockTime is the clock reading at whole-second granularity, the resolution every
// timestamp is reported in.
func (c *Chain) blockTime() time.Time {
	return c.clock.Now().Truncate(time.Second)
}

// Height returns the number of committed transactions.
func (c *Chain) Height() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.height
}

// Exec runs fn as a single transaction signed by sender. Events emitted while fn runs are
// published, in order, only when fn returns nil.
func (c *Chain) Exec(sender common.Address, value *big.Int, fn func(Msg) error) error {
	c.mu.Lock()
	msg := Msg{Sender: sender, Value: model.Copy(value), Time: c.blockTime()}
	c.inTx = true
	err := run(fn, msg)
	events := c.pending
	c.pending = nil
	c.inTx = false
	if err == nil {
		c.height++
	}

	// pubMu is taken before mu is released so events of consecutive transactions are
	// never interleaved.
	c.pubMu.Lock()
	c.mu.Unlock()
	defer c.pubMu.Unlock()

	if err != nil {
		c.logger.Debug("transaction reverted", zap.Stringer("sender", sender), zap.Error(err))
		return err
	}
	for _, ev := range events {
		c.feed.Send(ev)
	}
	return nil
}

func run(fn func(Msg) error, msg Msg) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transaction panicked: %v", r)
		}
	}()
	return fn(msg)
}

// View runs fn under a shared lock. fn must not mutate contract state.
func (c *Chain) View(fn func(now time.Time) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fn(c.blockTime())
}

// Emit queues ev for publication with the running transaction, or publishes it at once
// when called outside Exec.
func (c *Chain) Emit(ev Event) {
	if c.inTx {
		c.pending = append(c.pending, ev)
		return
	}
	c.feed.Send(ev)
}

// Subscribe delivers committed events to ch. Slow subscribers stall Exec callers, so ch
// should be buffered.
func (c *Chain) Subscribe(ch chan<- Event) event.Subscription {
	return c.feed.Subscribe(ch)
}

// NextAddress derives the address of the next contract created by deployer.
func (c *Chain) NextAddress(deployer common.Address) common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	nonce := c.nonces[deployer]
	c.nonces[deployer] = nonce + 1
	return crypto.CreateAddress(deployer, nonce)
}

// Register binds contract to addr so it can receive dispatched calls.
func (c *Chain) Register(addr common.Address, contract Contract) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contracts[addr] = contract
}

// Dispatch routes call to the contract at to. It must run inside Exec.
func (c *Chain) Dispatch(msg Msg, to common.Address, call Call) error {
	contract, ok := c.contracts[to]
	if !ok {
		return ErrUnknownContract
	}
	c.logger.Debug("dispatch",
		zap.Stringer("from", msg.Sender),
		zap.Stringer("to", to),
		zap.String("method", call.Method()),
	)
	return contract.Invoke(msg, call)
}

// IsContract reports whether a contract is registered at addr.
func (c *Chain) IsContract(addr common.Address) bool {
	_, ok := c.contracts[addr]
	return ok
}

// Credit mints native value to addr. It is the genesis allocation primitive and must not
// be called from inside Exec.
func (c *Chain) Credit(addr common.Address, amount *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.native[addr] = new(big.Int).Add(c.balance(addr), amount)
}

// BalanceAt returns the native balance of addr.
func (c *Chain) BalanceAt(addr common.Address) *big.Int {
	return model.Copy(c.native[addr])
}

// TransferValue moves native value between accounts. It must run inside Exec.
func (c *Chain) TransferValue(from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	if to == (common.Address{}) {
		return model.ErrZeroAddress
	}
	if amount.Sign() < 0 {
		return model.ErrZeroAmount
	}
	balance := c.balance(from)
	if balance.Cmp(amount) < 0 {
		return ErrNativeBalance
	}
	c.native[from] = new(big.Int).Sub(balance, amount)
	c.native[to] = new(big.Int).Add(c.balance(to), amount)
	return nil
}

func (c *Chain) balance(addr common.Address) *big.Int {
	if b, ok := c.native[addr]; ok {
		return b
	}
	return new(big.Int)
}
