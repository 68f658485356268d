package mining

import (
	"errors"

	"github.com/goodnatureofminers/token42-backend/internal/model"
)

var (
	ErrInvalidPower     = model.Revert(model.ErrInvalidArgument, "Invalid mining power")
	ErrAlreadyMining    = model.Revert(model.ErrInvalidState, "Already mining")
	ErrNotActive        = model.Revert(model.ErrInvalidState, "Not mining")
	ErrInvalidPoW       = model.Revert(model.ErrInvalidProofOfWork, "Invalid proof-of-work")
	ErrBonusNotReady    = model.Revert(model.ErrInvalidState, "Daily bonus not ready")
	ErrZeroDifficulty   = model.Revert(model.ErrInvalidArgument, "difficulty must be positive")
	ErrInvalidNonce     = model.Revert(model.ErrInvalidArgument, "nonce must be a uint256")
	ErrInvalidParameter = model.Revert(model.ErrInvalidArgument, "parameter must be positive")
	ErrBlockNotFound    = model.Revert(model.ErrNotFound, "block not found")
	ErrRetargetWindow   = model.Revert(model.ErrInvalidArgument, "retarget window too long")
	ErrNonceNotFound    = errors.New("no valid nonce in range")
)
