// Package faucet implements a cooldown-limited token dispenser.
package faucet

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/model"
)

// Config holds the drip policy.
type Config struct {
	DripAmount *big.Int
	Cooldown   time.Duration
}

// DefaultConfig drips 100 tokens once a day.
func DefaultConfig() Config {
	return Config{
		DripAmount: model.Tokens(100),
		Cooldown:   24 * time.Hour,
	}
}

// Faucet dispenses a fixed amount per address per cooldown window. TotalDistributed always
// equals the sum of TotalReceived over all claims.
type Faucet struct {
	address common.Address
	owner   common.Address
	token   Token
	paused  bool

	dripAmount *big.Int
	cooldown   time.Duration

	claims           map[common.Address]*Claim
	totalDistributed *big.Int
	totalClaims      uint64

	emitter Emitter
	metrics Metrics
	logger  *zap.Logger
}

// New deploys a faucet at address dispensing token.
func New(address, owner common.Address, token Token, cfg Config, emitter Emitter, metrics Metrics, logger *zap.Logger) (*Faucet, error) {
	if token == nil {
		return nil, errors.New("faucet token is required")
	}
	if metrics == nil {
		return nil, errors.New("faucet metrics is required")
	}
	if owner == (common.Address{}) {
		return nil, model.ErrZeroAddress
	}
	if cfg.DripAmount == nil || cfg.DripAmount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if cfg.Cooldown <= 0 {
		return nil, ErrInvalidPeriod
	}
	return &Faucet{
		address:          address,
		owner:            owner,
		token:            token,
		dripAmount:       model.Copy(cfg.DripAmount),
		cooldown:         cfg.Cooldown,
		claims:           make(map[common.Address]*Claim),
		totalDistributed: new(big.Int),
		emitter:          emitter,
		metrics:          metrics,
		logger:           logger.Named("faucet"),
	}, nil
}

func (f *Faucet) Address() common.Address { return f.address }
func (f *Faucet) Owner() common.Address   { return f.owner }
func (f *Faucet) Paused() bool            { return f.paused }
func (f *Faucet) DripAmount() *big.Int    { return model.Copy(f.dripAmount) }
func (f *Faucet) Cooldown() time.Duration { return f.cooldown }

// Drip sends the drip amount to the caller.
func (f *Faucet) Drip(msg chain.Msg) (err error) {
	defer f.observe("drip", time.Now(), &err)
	if f.paused {
		return model.ErrEnforced
	}
	if ok, _ := f.canDrip(msg.Sender, msg.Time); !ok {
		return ErrCooldown
	}
	if f.token.BalanceOf(f.address).Cmp(f.dripAmount) < 0 {
		return ErrFaucetEmpty
	}
	amount := model.Copy(f.dripAmount)
	if err = f.token.Transfer(msg.As(f.address, nil), msg.Sender, amount); err != nil {
		return err
	}

	c := f.claim(msg.Sender)
	c.LastClaim = msg.Time
	c.TotalReceived = new(big.Int).Add(c.TotalReceived, amount)
	f.totalDistributed = new(big.Int).Add(f.totalDistributed, amount)
	f.totalClaims++

	f.emit("TokensDripped", msg.Time, "recipient", msg.Sender, "amount", amount)
	f.logger.Debug("dripped", zap.Stringer("recipient", msg.Sender), zap.String("amount", model.FormatAmount(amount)))
	return nil
}

// Fund pulls amount from the owner via allowance. Owner only.
func (f *Faucet) Fund(msg chain.Msg, amount *big.Int) (err error) {
	defer f.observe("fund", time.Now(), &err)
	if err = f.onlyOwner(msg.Sender); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if err = f.token.TransferFrom(msg.As(f.address, nil), msg.Sender, f.address, amount); err != nil {
		return err
	}
	f.emit("FaucetFunded", msg.Time, "funder", msg.Sender, "amount", amount)
	return nil
}

// CanDrip reports whether addr may drip at now and, if not, how long until it may.
func (f *Faucet) CanDrip(addr common.Address, now time.Time) (bool, time.Duration) {
	return f.canDrip(addr, now)
}

func (f *Faucet) canDrip(addr common.Address, now time.Time) (bool, time.Duration) {
	c, ok := f.claims[addr]
	if !ok || c.LastClaim.IsZero() {
		return true, 0
	}
	elapsed := now.Sub(c.LastClaim)
	if elapsed >= f.cooldown {
		return true, 0
	}
	return false, f.cooldown - elapsed
}

// SetDripAmount replaces the per-claim amount. Owner only.
func (f *Faucet) SetDripAmount(msg chain.Msg, amount *big.Int) (err error) {
	defer f.observe("set_drip_amount", time.Now(), &err)
	if err = f.onlyOwner(msg.Sender); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	f.dripAmount = model.Copy(amount)
	f.emit("DripAmountUpdated", msg.Time, "newAmount", amount)
	return nil
}

// SetCooldown replaces the cooldown window. Owner only.
func (f *Faucet) SetCooldown(msg chain.Msg, cooldown time.Duration) (err error) {
	defer f.observe("set_cooldown", time.Now(), &err)
	if err = f.onlyOwner(msg.Sender); err != nil {
		return err
	}
	if cooldown <= 0 {
		return ErrInvalidPeriod
	}
	f.cooldown = cooldown
	f.emit("CooldownUpdated", msg.Time, "newCooldown", cooldown)
	return nil
}

// WithdrawTokens sends residual faucet tokens to to. Owner only.
func (f *Faucet) WithdrawTokens(msg chain.Msg, to common.Address, amount *big.Int) (err error) {
	defer f.observe("withdraw_tokens", time.Now(), &err)
	if err = f.onlyOwner(msg.Sender); err != nil {
		return err
	}
	if to == (common.Address{}) {
		return model.ErrZeroAddress
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if err = f.token.Transfer(msg.As(f.address, nil), to, amount); err != nil {
		return err
	}
	f.emit("TokensWithdrawn", msg.Time, "to", to, "amount", amount)
	return nil
}

// Pause stops drips. Owner only.
func (f *Faucet) Pause(msg chain.Msg) (err error) {
	defer f.observe("pause", time.Now(), &err)
	if err = f.onlyOwner(msg.Sender); err != nil {
		return err
	}
	if f.paused {
		return model.ErrEnforced
	}
	f.paused = true
	f.emit("Paused", msg.Time, "account", msg.Sender)
	return nil
}

// Unpause resumes drips. Owner only.
func (f *Faucet) Unpause(msg chain.Msg) (err error) {
	defer f.observe("unpause", time.Now(), &err)
	if err = f.onlyOwner(msg.Sender); err != nil {
		return err
	}
	if !f.paused {
		return model.ErrNotPaused
	}
	f.paused = false
	f.emit("Unpaused", msg.Time, "account", msg.Sender)
	return nil
}

// Stats returns the faucet-wide counters.
func (f *Faucet) Stats() Stats {
	return Stats{
		Balance:          f.token.BalanceOf(f.address),
		TotalDistributed: model.Copy(f.totalDistributed),
		TotalClaims:      f.totalClaims,
		DripAmount:       model.Copy(f.dripAmount),
		Cooldown:         f.cooldown,
	}
}

// UserStats returns the claim record of addr evaluated at now.
func (f *Faucet) UserStats(addr common.Address, now time.Time) UserStats {
	out := UserStats{TotalReceived: new(big.Int)}
	if c, ok := f.claims[addr]; ok {
		out.LastClaim = c.LastClaim
		out.TotalReceived = model.Copy(c.TotalReceived)
	}
	out.CanDrip, out.Remaining = f.canDrip(addr, now)
	return out
}

// Claimants lists every address that has dripped at least once.
func (f *Faucet) Claimants() []common.Address {
	out := make([]common.Address, 0, len(f.claims))
	for addr := range f.claims {
		out = append(out, addr)
	}
	return out
}

func (f *Faucet) claim(addr common.Address) *Claim {
	c, ok := f.claims[addr]
	if !ok {
		c = &Claim{TotalReceived: new(big.Int)}
		f.claims[addr] = c
	}
	return c
}

func (f *Faucet) onlyOwner(caller common.Address) error {
	if caller != f.owner {
		return model.ErrNotOwner
	}
	return nil
}

func (f *Faucet) emit(name string, at time.Time, kv ...any) {
	if f.emitter == nil {
		return
	}
	f.emitter.Emit(chain.NewEvent(f.address, name, at, kv...))
}

func (f *Faucet) observe(operation string, started time.Time, err *error) {
	f.metrics.Observe(operation, *err, started)
}
