// Package mining implements the proof-of-work reward engine: a miner registry, block
// claims validated against a difficulty target, a halving reward schedule, periodic
// difficulty retargeting and a daily bonus.
package mining

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/model"
)

const (
	MinPower = 1
	MaxPower = 100

	BonusInterval = 24 * time.Hour
)

// Config holds the reward schedule.
type Config struct {
	BaseReward       *big.Int
	Difficulty       uint64
	BlockTime        time.Duration
	HalvingInterval  uint64
	RetargetInterval uint64
	// PowerOffset shifts the power multiplier: reward = base * (PowerOffset + power) / 100.
	PowerOffset int64
}

// DefaultConfig returns the MiningContractV2 schedule.
func DefaultConfig() Config {
	return Config{
		BaseReward:       model.Tokens(100),
		Difficulty:       1000,
		BlockTime:        300 * time.Second,
		HalvingInterval:  210_000,
		RetargetInterval: 2016,
		PowerOffset:      50,
	}
}

func (c Config) validate() error {
	if c.BaseReward == nil || c.BaseReward.Sign() <= 0 {
		return ErrInvalidParameter
	}
	if c.Difficulty == 0 {
		return ErrZeroDifficulty
	}
	if c.BlockTime <= 0 || c.HalvingInterval == 0 || c.PowerOffset < 0 {
		return ErrInvalidParameter
	}
	if !windowFits(c.RetargetInterval, c.BlockTime) {
		return ErrRetargetWindow
	}
	return nil
}

// Engine is the mining contract.
type Engine struct {
	address common.Address
	owner   common.Address
	cfg     Config
	paused  bool

	currentBlock uint64
	totalMined   *big.Int
	activeMiners uint64
	windowStart  time.Time

	miners map[common.Address]*Miner
	blocks []Block

	token   Minter
	emitter Emitter
	metrics Metrics
	logger  *zap.Logger
}

// New deploys an engine at address. The engine address must hold the minter capability
// on token before rewards can be paid.
func New(address, owner common.Address, cfg Config, token Minter, emitter Emitter, metrics Metrics, logger *zap.Logger) (*Engine, error) {
	if token == nil {
		return nil, errors.New("mining token is required")
	}
	if metrics == nil {
		return nil, errors.New("mining metrics is required")
	}
	if owner == (common.Address{}) {
		return nil, model.ErrZeroAddress
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.BaseReward = model.Copy(cfg.BaseReward)

	e := &Engine{
		address:      address,
		owner:        owner,
		cfg:          cfg,
		currentBlock: 1,
		totalMined:   new(big.Int),
		miners:       make(map[common.Address]*Miner),
		token:        token,
		emitter:      emitter,
		metrics:      metrics,
		logger:       logger.Named("mining"),
	}
	metrics.SetDifficulty(cfg.Difficulty)
	metrics.SetCurrentBlock(e.currentBlock)
	return e, nil
}

func (e *Engine) Address() common.Address { return e.address }
func (e *Engine) Owner() common.Address   { return e.owner }
func (e *Engine) Paused() bool            { return e.paused }
func (e *Engine) CurrentBlock() uint64    { return e.currentBlock }
func (e *Engine) Difficulty() uint64      { return e.cfg.Difficulty }
func (e *Engine) BaseReward() *big.Int    { return model.Copy(e.cfg.BaseReward) }

func (e *Engine) BlockTime() time.Duration { return e.cfg.BlockTime }
func (e *Engine) HalvingInterval() uint64  { return e.cfg.HalvingInterval }
func (e *Engine) RetargetInterval() uint64 { return e.cfg.RetargetInterval }

// StartMining registers the caller as an active miner with the given power.
func (e *Engine) StartMining(msg chain.Msg, power uint8) (err error) {
	defer e.observe("start_mining", time.Now(), &err)
	if e.paused {
		return model.ErrEnforced
	}
	if power < MinPower || power > MaxPower {
		return ErrInvalidPower
	}
	m := e.miner(msg.Sender)
	if m.Active {
		return ErrAlreadyMining
	}

	m.Power = power
	m.Active = true
	m.StartTime = msg.Time
	if m.LastClaim.IsZero() {
		m.LastClaim = msg.Time
	}
	if e.windowStart.IsZero() {
		e.windowStart = msg.Time
	}
	e.activeMiners++
	e.emit("MiningStarted", msg.Time, "miner", msg.Sender, "power", power)
	return nil
}

// StopMining deactivates the caller. Lifetime statistics are kept.
func (e *Engine) StopMining(msg chain.Msg) (err error) {
	defer e.observe("stop_mining", time.Now(), &err)
	if e.paused {
		return model.ErrEnforced
	}
	m, ok := e.miners[msg.Sender]
	if !ok || !m.Active {
		return ErrNotActive
	}

	m.Active = false
	m.Power = 0
	e.activeMiners--
	e.emit("MiningStopped", msg.Time, "miner", msg.Sender)
	return nil
}

// Puzzle returns the context the caller's next claim is hashed against at time at.
func (e *Engine) Puzzle(miner common.Address, at time.Time) Puzzle {
	return Puzzle{
		Block:      e.currentBlock,
		Miner:      miner,
		Timestamp:  at,
		Difficulty: e.cfg.Difficulty,
	}
}

// MineBlock validates nonce for the current block and pays the caller. Either every effect
// applies or none does.
func (e *Engine) MineBlock(msg chain.Msg, nonce *big.Int) (err error) {
	defer e.observe("mine_block", time.Now(), &err)
	if e.paused {
		return model.ErrEnforced
	}
	m, ok := e.miners[msg.Sender]
	if !ok || !m.Active {
		return ErrNotActive
	}
	hash, valid, err := e.Puzzle(msg.Sender, msg.Time).Check(nonce)
	if err != nil {
		return err
	}
	if !valid {
		return ErrInvalidPoW
	}

	reward := e.reward(m.Power)
	if reward.Sign() > 0 {
		if err = e.token.Mint(msg.As(e.address, nil), msg.Sender, reward); err != nil {
			return err
		}
	}

	block := Block{
		Number:     e.currentBlock,
		Miner:      msg.Sender,
		Timestamp:  msg.Time,
		Reward:     reward,
		Difficulty: e.cfg.Difficulty,
		Bits:       CompactTarget(e.cfg.Difficulty),
		Nonce:      model.Copy(nonce),
		Hash:       hash,
	}
	e.blocks = append(e.blocks, block)
	m.BlocksFound++
	m.LastBlockTime = msg.Time
	m.TotalMined = new(big.Int).Add(model.Copy(m.TotalMined), reward)
	e.totalMined = new(big.Int).Add(e.totalMined, reward)
	e.currentBlock++

	e.emit("BlockMined", msg.Time,
		"blockNumber", block.Number,
		"miner", msg.Sender,
		"reward", reward,
		"hash", hash,
	)
	e.logger.Debug("block mined",
		zap.Uint64("number", block.Number),
		zap.Stringer("miner", msg.Sender),
		zap.String("reward", model.FormatAmount(reward)),
	)
	e.metrics.SetCurrentBlock(e.currentBlock)

	if mined := e.blocksMined(); e.cfg.RetargetInterval > 0 && mined%e.cfg.RetargetInterval == 0 {
		e.retarget(msg.Time)
	}
	return nil
}

// ClaimDailyBonus mints half the base reward to an active miner once per BonusInterval.
func (e *Engine) ClaimDailyBonus(msg chain.Msg) (err error) {
	defer e.observe("claim_daily_bonus", time.Now(), &err)
	if e.paused {
		return model.ErrEnforced
	}
	m, ok := e.miners[msg.Sender]
	if !ok || !m.Active {
		return ErrNotActive
	}
	if msg.Time.Sub(m.LastClaim) < BonusInterval {
		return ErrBonusNotReady
	}

	bonus := new(big.Int).Rsh(e.cfg.BaseReward, 1)
	if err = e.token.Mint(msg.As(e.address, nil), msg.Sender, bonus); err != nil {
		return err
	}
	m.LastClaim = msg.Time
	e.emit("DailyBonusClaimed", msg.Time, "miner", msg.Sender, "amount", bonus)
	return nil
}

// CalculateReward returns what miner would earn for the next block. Inactive miners earn
// nothing.
func (e *Engine) CalculateReward(miner common.Address) *big.Int {
	m, ok := e.miners[miner]
	if !ok || !m.Active {
		return new(big.Int)
	}
	return e.reward(m.Power)
}

// CurrentBlockReward returns the halved base reward of the current era.
func (e *Engine) CurrentBlockReward() *big.Int {
	return halve(e.cfg.BaseReward, e.halvings())
}

// MinerStats returns a copy of the record of addr; unknown miners yield a zero record.
func (e *Engine) MinerStats(addr common.Address) Miner {
	m, ok := e.miners[addr]
	if !ok {
		return Miner{TotalMined: new(big.Int)}
	}
	out := *m
	out.TotalMined = model.Copy(m.TotalMined)
	return out
}

// GlobalStats summarises the engine.
func (e *Engine) GlobalStats() GlobalStats {
	return GlobalStats{
		CurrentBlock:  e.currentBlock,
		TotalMined:    model.Copy(e.totalMined),
		Difficulty:    e.cfg.Difficulty,
		ActiveMiners:  e.activeMiners,
		CurrentReward: e.CurrentBlockReward(),
		NextRetarget:  e.nextRetarget(),
	}
}

// Block returns the mined block with the given number.
func (e *Engine) Block(number uint64) (Block, error) {
	if number == 0 || number > uint64(len(e.blocks)) {
		return Block{}, ErrBlockNotFound
	}
	return copyBlock(e.blocks[number-1]), nil
}

// Blocks pages through mined blocks in ascending order.
func (e *Engine) Blocks(offset, limit uint64) []Block {
	total := uint64(len(e.blocks))
	if offset >= total || limit == 0 {
		return []Block{}
	}
	end := offset + limit
	if end > total || end < offset {
		end = total
	}
	out := make([]Block, 0, end-offset)
	for _, b := range e.blocks[offset:end] {
		out = append(out, copyBlock(b))
	}
	return out
}

func (e *Engine) miner(addr common.Address) *Miner {
	m, ok := e.miners[addr]
	if !ok {
		m = &Miner{TotalMined: new(big.Int)}
		e.miners[addr] = m
	}
	return m
}

func (e *Engine) blocksMined() uint64 {
	return e.currentBlock - 1
}

func (e *Engine) nextRetarget() uint64 {
	if e.cfg.RetargetInterval == 0 {
		return 0
	}
	return (e.blocksMined()/e.cfg.RetargetInterval + 1) * e.cfg.RetargetInterval
}

func (e *Engine) emit(name string, at time.Time, kv ...any) {
	if e.emitter == nil {
		return
	}
	e.emitter.Emit(chain.NewEvent(e.address, name, at, kv...))
}

func (e *Engine) observe(operation string, started time.Time, err *error) {
	e.metrics.Observe(operation, *err, started)
}

func copyBlock(b Block) Block {
	b.Reward = model.Copy(b.Reward)
	b.Nonce = model.Copy(b.Nonce)
	return b
}
