package multisig

import "github.com/goodnatureofminers/token42-backend/internal/model"

var (
	ErrNotOwner               = model.Revert(model.ErrUnauthorized, "Not owner")
	ErrOnlyWallet             = model.Revert(model.ErrUnauthorized, "Only wallet")
	ErrTxNotFound             = model.Revert(model.ErrNotFound, "Tx does not exist")
	ErrAlreadyExecuted        = model.Revert(model.ErrInvalidState, "Tx already executed")
	ErrAlreadyConfirmed       = model.Revert(model.ErrInvalidState, "Tx already confirmed")
	ErrNotConfirmed           = model.Revert(model.ErrInvalidState, "Tx not confirmed")
	ErrNotEnoughConfirmations = model.Revert(model.ErrInvalidState, "Not enough confirmations")
	ErrOwnersRequired         = model.Revert(model.ErrInvalidArgument, "Owners required")
	ErrInvalidRequirement     = model.Revert(model.ErrInvalidArgument, "Invalid number of required confirmations")
	ErrInvalidOwner           = model.Revert(model.ErrInvalidArgument, "Invalid owner")
	ErrDuplicateOwner         = model.Revert(model.ErrInvalidArgument, "Owner not unique")
	ErrUnknownOwner           = model.Revert(model.ErrInvalidArgument, "Address is not an owner")
	ErrLastOwner              = model.Revert(model.ErrInvalidState, "Cannot remove the last owner")
)
