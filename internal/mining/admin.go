package mining

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/model"
)

// SetBaseReward replaces the era-zero reward. Owner only.
func (e *Engine) SetBaseReward(msg chain.Msg, reward *big.Int) (err error) {
	defer e.observe("set_base_reward", time.Now(), &err)
	if err = e.onlyOwner(msg.Sender); err != nil {
		return err
	}
	if reward == nil || reward.Sign() <= 0 {
		return ErrInvalidParameter
	}
	old := e.cfg.BaseReward
	e.cfg.BaseReward = model.Copy(reward)
	e.emit("ParameterUpdated", msg.Time, "parameter", "baseReward", "oldValue", old, "newValue", reward)
	return nil
}

// SetBlockTime replaces the target spacing used by retargeting. Owner only.
func (e *Engine) SetBlockTime(msg chain.Msg, blockTime time.Duration) (err error) {
	defer e.observe("set_block_time", time.Now(), &err)
	if err = e.onlyOwner(msg.Sender); err != nil {
		return err
	}
	if blockTime <= 0 {
		return ErrInvalidParameter
	}
	if !windowFits(e.cfg.RetargetInterval, blockTime) {
		return ErrRetargetWindow
	}
	old := e.cfg.BlockTime
	e.cfg.BlockTime = blockTime
	e.emit("ParameterUpdated", msg.Time, "parameter", "blockTime", "oldValue", old, "newValue", blockTime)
	return nil
}

// SetDifficulty overrides the current difficulty. Owner only; zero is rejected.
func (e *Engine) SetDifficulty(msg chain.Msg, difficulty uint64) (err error) {
	defer e.observe("set_difficulty", time.Now(), &err)
	if err = e.onlyOwner(msg.Sender); err != nil {
		return err
	}
	if difficulty == 0 {
		return ErrZeroDifficulty
	}
	e.setDifficulty(e.cfg.Difficulty, difficulty, msg.Time)
	return nil
}

// SetHalvingInterval replaces the era length in blocks. Owner only.
func (e *Engine) SetHalvingInterval(msg chain.Msg, blocks uint64) (err error) {
	defer e.observe("set_halving_interval", time.Now(), &err)
	if err = e.onlyOwner(msg.Sender); err != nil {
		return err
	}
	if blocks == 0 {
		return ErrInvalidParameter
	}
	old := e.cfg.HalvingInterval
	e.cfg.HalvingInterval = blocks
	e.emit("ParameterUpdated", msg.Time, "parameter", "halvingInterval", "oldValue", old, "newValue", blocks)
	return nil
}

// SetRetargetInterval replaces the retarget window in blocks; zero disables retargeting.
// Owner only.
func (e *Engine) SetRetargetInterval(msg chain.Msg, blocks uint64) (err error) {
	defer e.observe("set_retarget_interval", time.Now(), &err)
	if err = e.onlyOwner(msg.Sender); err != nil {
		return err
	}
	if !windowFits(blocks, e.cfg.BlockTime) {
		return ErrRetargetWindow
	}
	old := e.cfg.RetargetInterval
	e.cfg.RetargetInterval = blocks
	e.windowStart = msg.Time
	e.emit("ParameterUpdated", msg.Time, "parameter", "retargetInterval", "oldValue", old, "newValue", blocks)
	return nil
}

// Pause blocks every miner-facing operation. Owner only.
func (e *Engine) Pause(msg chain.Msg) (err error) {
	defer e.observe("pause", time.Now(), &err)
	if err = e.onlyOwner(msg.Sender); err != nil {
		return err
	}
	if e.paused {
		return model.ErrEnforced
	}
	e.paused = true
	e.emit("Paused", msg.Time, "account", msg.Sender)
	return nil
}

// Unpause lifts a pause. Owner only.
func (e *Engine) Unpause(msg chain.Msg) (err error) {
	defer e.observe("unpause", time.Now(), &err)
	if err = e.onlyOwner(msg.Sender); err != nil {
		return err
	}
	if !e.paused {
		return model.ErrNotPaused
	}
	e.paused = false
	e.emit("Unpaused", msg.Time, "account", msg.Sender)
	return nil
}

// TransferOwnership hands the admin surface to newOwner. Owner only.
func (e *Engine) TransferOwnership(msg chain.Msg, newOwner common.Address) (err error) {
	defer e.observe("transfer_ownership", time.Now(), &err)
	if err = e.onlyOwner(msg.Sender); err != nil {
		return err
	}
	if newOwner == (common.Address{}) {
		return model.ErrZeroAddress
	}
	previous := e.owner
	e.owner = newOwner
	e.emit("OwnershipTransferred", msg.Time, "previousOwner", previous, "newOwner", newOwner)
	return nil
}

func (e *Engine) onlyOwner(caller common.Address) error {
	if caller != e.owner {
		return model.ErrNotOwner
	}
	return nil
}
