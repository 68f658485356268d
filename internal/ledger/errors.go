package ledger

import "github.com/goodnatureofminers/token42-backend/internal/model"

var (
	ErrTransferToZero        = model.Revert(model.ErrInvalidArgument, "ERC20: transfer to the zero address")
	ErrTransferFromZero      = model.Revert(model.ErrInvalidArgument, "ERC20: transfer from the zero address")
	ErrApproveToZero         = model.Revert(model.ErrInvalidArgument, "ERC20: approve to the zero address")
	ErrInsufficientBalance   = model.Revert(model.ErrInvalidState, "ERC20: transfer amount exceeds balance")
	ErrInsufficientAllowance = model.Revert(model.ErrInvalidState, "ERC20: insufficient allowance")
	ErrBurnExceedsBalance    = model.Revert(model.ErrInvalidState, "ERC20: burn amount exceeds balance")
	ErrMaxSupplyExceeded     = model.Revert(model.ErrInvalidArgument, "max supply exceeded")
	ErrNegativeAmount        = model.Revert(model.ErrInvalidArgument, "negative amount")
)
