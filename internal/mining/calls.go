package mining

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
)

type (
	StartMiningCall     struct{ Power uint8 }
	StopMiningCall      struct{}
	MineBlockCall       struct{ Nonce *big.Int }
	ClaimDailyBonusCall struct{}
	SetBaseRewardCall   struct{ Reward *big.Int }
	SetBlockTimeCall    struct{ BlockTime time.Duration }
	SetDifficultyCall   struct{ Difficulty uint64 }
	SetHalvingCall      struct{ Blocks uint64 }
	SetRetargetCall     struct{ Blocks uint64 }
	PauseCall           struct{}
	UnpauseCall         struct{}
	TransferOwnerCall   struct{ NewOwner common.Address }
)

func (StartMiningCall) Method() string     { return "startMining" }
func (StopMiningCall) Method() string      { return "stopMining" }
func (MineBlockCall) Method() string       { return "mineBlock" }
func (ClaimDailyBonusCall) Method() string { return "claimDailyBonus" }
func (SetBaseRewardCall) Method() string   { return "setBaseReward" }
func (SetBlockTimeCall) Method() string    { return "setBlockTime" }
func (SetDifficultyCall) Method() string   { return "setDifficulty" }
func (SetHalvingCall) Method() string      { return "setHalvingInterval" }
func (SetRetargetCall) Method() string     { return "setRetargetInterval" }
func (PauseCall) Method() string           { return "pause" }
func (UnpauseCall) Method() string         { return "unpause" }
func (TransferOwnerCall) Method() string   { return "transferOwnership" }

// Invoke executes a dispatched call on behalf of msg.Sender.
func (e *Engine) Invoke(msg chain.Msg, call chain.Call) error {
	switch c := call.(type) {
	case StartMiningCall:
		return e.StartMining(msg, c.Power)
	case StopMiningCall:
		return e.StopMining(msg)
	case MineBlockCall:
		return e.MineBlock(msg, c.Nonce)
	case ClaimDailyBonusCall:
		return e.ClaimDailyBonus(msg)
	case SetBaseRewardCall:
		return e.SetBaseReward(msg, c.Reward)
	case SetBlockTimeCall:
		return e.SetBlockTime(msg, c.BlockTime)
	case SetDifficultyCall:
		return e.SetDifficulty(msg, c.Difficulty)
	case SetHalvingCall:
		return e.SetHalvingInterval(msg, c.Blocks)
	case SetRetargetCall:
		return e.SetRetargetInterval(msg, c.Blocks)
	case PauseCall:
		return e.Pause(msg)
	case UnpauseCall:
		return e.Unpause(msg)
	case TransferOwnerCall:
		return e.TransferOwnership(msg, c.NewOwner)
	default:
		return chain.ErrUnsupportedCall
	}
}
