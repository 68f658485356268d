// Package ledger implements the capped ERC20-style token ledger with a permissioned
// minter set.
package ledger

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/token42-backend/internal/access"
	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/model"
)

// Config holds constructor parameters.
type Config struct {
	Name          string
	Symbol        string
	InitialSupply *big.Int
	MaxSupply     *big.Int
}

// DefaultConfig mirrors the MaxToken42 deployment: 1M initial, 10M cap.
func DefaultConfig() Config {
	return Config{
		Name:          "MaxToken42",
		Symbol:        "MTK42",
		InitialSupply: model.Tokens(1_000_000),
		MaxSupply:     model.Tokens(10_000_000),
	}
}

// Ledger tracks balances and allowances. Sum of balances always equals TotalSupply, which
// never exceeds MaxSupply.
type Ledger struct {
	address common.Address
	owner   common.Address
	name    string
	symbol  string

	totalSupply *big.Int
	maxSupply   *big.Int
	balances    map[common.Address]*big.Int
	allowances  map[common.Address]map[common.Address]*big.Int
	roles       *access.Roles

	emitter Emitter
	metrics Metrics
	logger  *zap.Logger
}

// New deploys a ledger at address, minting the initial supply to owner.
func New(address, owner common.Address, cfg Config, emitter Emitter, metrics Metrics, logger *zap.Logger) (*Ledger, error) {
	if metrics == nil {
		return nil, errors.New("ledger metrics is required")
	}
	if owner == (common.Address{}) {
		return nil, model.ErrZeroAddress
	}
	if cfg.MaxSupply == nil || cfg.MaxSupply.Sign() <= 0 {
		return nil, model.Revert(model.ErrInvalidArgument, "max supply must be positive")
	}
	initial := model.Copy(cfg.InitialSupply)
	if initial.Sign() < 0 || initial.Cmp(cfg.MaxSupply) > 0 {
		return nil, ErrMaxSupplyExceeded
	}

	l := &Ledger{
		address:     address,
		owner:       owner,
		name:        cfg.Name,
		symbol:      cfg.Symbol,
		totalSupply: new(big.Int),
		maxSupply:   model.Copy(cfg.MaxSupply),
		balances:    make(map[common.Address]*big.Int),
		allowances:  make(map[common.Address]map[common.Address]*big.Int),
		roles:       access.NewRoles(),
		emitter:     emitter,
		metrics:     metrics,
		logger:      logger.Named("ledger"),
	}
	l.roles.Grant(access.Admin, owner)
	if initial.Sign() > 0 {
		l.mint(owner, initial, time.Time{})
	}
	return l, nil
}

func (l *Ledger) Address() common.Address { return l.address }
func (l *Ledger) Owner() common.Address   { return l.owner }
func (l *Ledger) Name() string            { return l.name }
func (l *Ledger) Symbol() string          { return l.symbol }
func (l *Ledger) Decimals() uint8         { return model.Decimals }

func (l *Ledger) TotalSupply() *big.Int { return model.Copy(l.totalSupply) }
func (l *Ledger) MaxSupply() *big.Int   { return model.Copy(l.maxSupply) }

// BalanceOf returns the balance of addr.
func (l *Ledger) BalanceOf(addr common.Address) *big.Int {
	return model.Copy(l.balances[addr])
}

// Allowance returns how much spender may still move on behalf of owner.
func (l *Ledger) Allowance(owner, spender common.Address) *big.Int {
	return model.Copy(l.allowances[owner][spender])
}

// CanMint reports whether addr holds the minter capability.
func (l *Ledger) CanMint(addr common.Address) bool {
	return l.roles.Has(access.Minter, addr)
}

// Transfer moves amount from the caller to to.
func (l *Ledger) Transfer(msg chain.Msg, to common.Address, amount *big.Int) (err error) {
	defer l.observe("transfer", time.Now(), &err)
	return l.transfer(msg.Sender, to, amount, msg.Time)
}

// Approve sets the allowance of spender over the caller's balance.
func (l *Ledger) Approve(msg chain.Msg, spender common.Address, amount *big.Int) (err error) {
	defer l.observe("approve", time.Now(), &err)
	if spender == (common.Address{}) {
		return ErrApproveToZero
	}
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	l.setAllowance(msg.Sender, spender, amount)
	l.emit("Approval", msg.Time, "owner", msg.Sender, "spender", spender, "value", amount)
	return nil
}

// TransferFrom moves amount from from to to, spending the caller's allowance.
func (l *Ledger) TransferFrom(msg chain.Msg, from, to common.Address, amount *big.Int) (err error) {
	defer l.observe("transfer_from", time.Now(), &err)
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	allowed := l.Allowance(from, msg.Sender)
	if allowed.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if err = l.checkTransfer(from, to, amount); err != nil {
		return err
	}
	l.setAllowance(from, msg.Sender, allowed.Sub(allowed, amount))
	l.move(from, to, amount, msg.Time)
	return nil
}

// Mint creates amount for to. The caller must hold the minter capability.
func (l *Ledger) Mint(msg chain.Msg, to common.Address, amount *big.Int) (err error) {
	defer l.observe("mint", time.Now(), &err)
	if err = l.roles.Require(msg.Sender, access.Minter); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return model.ErrZeroAddress
	}
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if next := new(big.Int).Add(l.totalSupply, amount); next.Cmp(l.maxSupply) > 0 {
		return ErrMaxSupplyExceeded
	}
	l.mint(to, amount, msg.Time)
	return nil
}

// Burn destroys amount of the caller's balance.
func (l *Ledger) Burn(msg chain.Msg, amount *big.Int) (err error) {
	defer l.observe("burn", time.Now(), &err)
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	balance := l.BalanceOf(msg.Sender)
	if balance.Cmp(amount) < 0 {
		return ErrBurnExceedsBalance
	}
	l.balances[msg.Sender] = balance.Sub(balance, amount)
	l.totalSupply = new(big.Int).Sub(l.totalSupply, amount)
	l.emit("Transfer", msg.Time, "from", msg.Sender, "to", common.Address{}, "value", amount)
	return nil
}

// AddMinter grants the minter capability. Owner only.
func (l *Ledger) AddMinter(msg chain.Msg, minter common.Address) (err error) {
	defer l.observe("add_minter", time.Now(), &err)
	if err = l.roles.Require(msg.Sender, access.Admin); err != nil {
		return err
	}
	if minter == (common.Address{}) {
		return model.ErrZeroAddress
	}
	if l.roles.Grant(access.Minter, minter) {
		l.emit("MinterAdded", msg.Time, "minter", minter)
		l.logger.Debug("minter added", zap.Stringer("minter", minter))
	}
	return nil
}

// RemoveMinter revokes the minter capability. Owner only.
func (l *Ledger) RemoveMinter(msg chain.Msg, minter common.Address) (err error) {
	defer l.observe("remove_minter", time.Now(), &err)
	if err = l.roles.Require(msg.Sender, access.Admin); err != nil {
		return err
	}
	if l.roles.Revoke(access.Minter, minter) {
		l.emit("MinterRemoved", msg.Time, "minter", minter)
		l.logger.Debug("minter removed", zap.Stringer("minter", minter))
	}
	return nil
}

func (l *Ledger) transfer(from, to common.Address, amount *big.Int, at time.Time) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if err := l.checkTransfer(from, to, amount); err != nil {
		return err
	}
	l.move(from, to, amount, at)
	return nil
}

func (l *Ledger) checkTransfer(from, to common.Address, amount *big.Int) error {
	if from == (common.Address{}) {
		return ErrTransferFromZero
	}
	if to == (common.Address{}) {
		return ErrTransferToZero
	}
	if l.BalanceOf(from).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	return nil
}

func (l *Ledger) move(from, to common.Address, amount *big.Int, at time.Time) {
	l.balances[from] = new(big.Int).Sub(l.BalanceOf(from), amount)
	l.balances[to] = new(big.Int).Add(l.BalanceOf(to), amount)
	l.emit("Transfer", at, "from", from, "to", to, "value", amount)
}

func (l *Ledger) mint(to common.Address, amount *big.Int, at time.Time) {
	l.totalSupply = new(big.Int).Add(l.totalSupply, amount)
	l.balances[to] = new(big.Int).Add(l.BalanceOf(to), amount)
	l.emit("Transfer", at, "from", common.Address{}, "to", to, "value", amount)
}

func (l *Ledger) setAllowance(owner, spender common.Address, amount *big.Int) {
	spenders, ok := l.allowances[owner]
	if !ok {
		spenders = make(map[common.Address]*big.Int)
		l.allowances[owner] = spenders
	}
	spenders[spender] = model.Copy(amount)
}

func (l *Ledger) emit(name string, at time.Time, kv ...any) {
	if l.emitter == nil {
		return
	}
	l.emitter.Emit(chain.NewEvent(l.address, name, at, kv...))
}

func (l *Ledger) observe(operation string, started time.Time, err *error) {
	l.metrics.Observe(operation, *err, started)
}
