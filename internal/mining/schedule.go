package mining

import (
	"math"
	"math/big"
	"time"

	"go.uber.org/zap"
)

const maxAdjustment = 4

var hundred = big.NewInt(100)

// reward computes base * (offset + power) / 100, halved once per completed era.
func (e *Engine) reward(power uint8) *big.Int {
	r := new(big.Int).Mul(e.cfg.BaseReward, big.NewInt(e.cfg.PowerOffset+int64(power)))
	r.Quo(r, hundred)
	return halve(r, e.halvings())
}

func (e *Engine) halvings() uint64 {
	return e.blocksMined() / e.cfg.HalvingInterval
}

func halve(v *big.Int, eras uint64) *big.Int {
	if eras >= 256 {
		return new(big.Int)
	}
	return new(big.Int).Rsh(v, uint(eras))
}

// Retarget scales difficulty by expected/actual window duration, bounded to a factor of
// maxAdjustment in either direction and never below one.
func Retarget(old uint64, expected, actual time.Duration) uint64 {
	if actual <= 0 {
		actual = time.Second
	}
	next := new(big.Int).SetUint64(old)
	next.Mul(next, big.NewInt(int64(expected)))
	next.Quo(next, big.NewInt(int64(actual)))

	lo := old / maxAdjustment
	hi := new(big.Int).Mul(new(big.Int).SetUint64(old), big.NewInt(maxAdjustment))
	switch {
	case next.Cmp(hi) > 0:
		next = hi
	case next.Cmp(new(big.Int).SetUint64(lo)) < 0:
		next.SetUint64(lo)
	}
	if !next.IsUint64() {
		return ^uint64(0)
	}
	if v := next.Uint64(); v > 0 {
		return v
	}
	return 1
}

// windowFits reports whether blocks spaced blockTime apart span a representable duration.
func windowFits(blocks uint64, blockTime time.Duration) bool {
	return blockTime <= 0 || blocks <= uint64(math.MaxInt64/blockTime)
}

func (e *Engine) retarget(now time.Time) {
	expected := time.Duration(e.cfg.RetargetInterval) * e.cfg.BlockTime
	actual := now.Sub(e.windowStart)
	old := e.cfg.Difficulty
	e.windowStart = now
	e.setDifficulty(old, Retarget(old, expected, actual), now)
	e.logger.Info("difficulty retargeted",
		zap.Uint64("old", old),
		zap.Uint64("new", e.cfg.Difficulty),
		zap.Duration("expected", expected),
		zap.Duration("actual", actual),
	)
}

func (e *Engine) setDifficulty(old, next uint64, at time.Time) {
	e.cfg.Difficulty = next
	e.metrics.SetDifficulty(next)
	e.emit("DifficultyAdjusted", at, "oldDifficulty", old, "newDifficulty", next)
}
