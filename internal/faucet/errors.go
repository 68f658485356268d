package faucet

import "github.com/goodnatureofminers/token42-backend/internal/model"

var (
	ErrCooldown      = model.Revert(model.ErrInvalidState, "Cooldown not finished")
	ErrFaucetEmpty   = model.Revert(model.ErrInvalidState, "Faucet is empty")
	ErrInvalidAmount = model.Revert(model.ErrInvalidArgument, "amount must be positive")
	ErrInvalidPeriod = model.Revert(model.ErrInvalidArgument, "cooldown must be positive")
)
