package transport

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/token42-backend/internal/access"
	"github.com/goodnatureofminers/token42-backend/internal/audit"
	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/faucet"
	"github.com/goodnatureofminers/token42-backend/internal/ledger"
	"github.com/goodnatureofminers/token42-backend/internal/mining"
	"github.com/goodnatureofminers/token42-backend/internal/model"
	"github.com/goodnatureofminers/token42-backend/internal/multisig"
)

// callArgs is the union of every argument a proposed call can carry. Amounts are decimal
// token strings, durations are seconds.
type callArgs struct {
	To         string `json:"to"`
	From       string `json:"from"`
	Spender    string `json:"spender"`
	Minter     string `json:"minter"`
	Owner      string `json:"owner"`
	Logger     string `json:"logger"`
	Account    string `json:"account"`
	Role       string `json:"role"`
	Amount     string `json:"amount"`
	Reward     string `json:"reward"`
	Difficulty uint64 `json:"difficulty"`
	Blocks     uint64 `json:"blocks"`
	Required   uint64 `json:"required"`
	Seconds    int64  `json:"seconds"`
}

type decoder func(method string, a callArgs) (chain.Call, error)

// decodeCall builds the typed call for method on the contract at target.
func (s *Server) decodeCall(target common.Address, method string, raw json.RawMessage) (chain.Call, error) {
	if method == "" {
		return nil, nil
	}
	var a callArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, badRequest("malformed call arguments")
		}
	}
	var dec decoder
	switch target {
	case s.suite.Token.Address():
		dec = tokenCall
	case s.suite.Mining.Address():
		dec = miningCall
	case s.suite.Faucet.Address():
		dec = faucetCall
	case s.suite.MultiSig.Address():
		dec = walletCall
	case s.suite.Audit.Address():
		dec = auditCall
	default:
		return nil, chain.ErrUnknownContract
	}
	return dec(method, a)
}

func tokenCall(method string, a callArgs) (chain.Call, error) {
	switch method {
	case "transfer", "mint":
		to, err := parseAddress(a.To)
		if err != nil {
			return nil, err
		}
		amount, err := model.ParseAmount(a.Amount)
		if err != nil {
			return nil, err
		}
		if method == "mint" {
			return ledger.MintCall{To: to, Amount: amount}, nil
		}
		return ledger.TransferCall{To: to, Amount: amount}, nil
	case "approve":
		spender, err := parseAddress(a.Spender)
		if err != nil {
			return nil, err
		}
		amount, err := model.ParseAmount(a.Amount)
		if err != nil {
			return nil, err
		}
		return ledger.ApproveCall{Spender: spender, Amount: amount}, nil
	case "burn":
		amount, err := model.ParseAmount(a.Amount)
		if err != nil {
			return nil, err
		}
		return ledger.BurnCall{Amount: amount}, nil
	case "addMinter", "removeMinter":
		minter, err := parseAddress(a.Minter)
		if err != nil {
			return nil, err
		}
		if method == "addMinter" {
			return ledger.AddMinterCall{Minter: minter}, nil
		}
		return ledger.RemoveMinterCall{Minter: minter}, nil
	}
	return nil, chain.ErrUnsupportedCall
}

func miningCall(method string, a callArgs) (chain.Call, error) {
	switch method {
	case "setBaseReward":
		reward, err := model.ParseAmount(a.Reward)
		if err != nil {
			return nil, err
		}
		return mining.SetBaseRewardCall{Reward: reward}, nil
	case "setBlockTime":
		return mining.SetBlockTimeCall{BlockTime: time.Duration(a.Seconds) * time.Second}, nil
	case "setDifficulty":
		return mining.SetDifficultyCall{Difficulty: a.Difficulty}, nil
	case "setHalvingInterval":
		return mining.SetHalvingCall{Blocks: a.Blocks}, nil
	case "setRetargetInterval":
		return mining.SetRetargetCall{Blocks: a.Blocks}, nil
	case "pause":
		return mining.PauseCall{}, nil
	case "unpause":
		return mining.UnpauseCall{}, nil
	case "transferOwnership":
		owner, err := parseAddress(a.Owner)
		if err != nil {
			return nil, err
		}
		return mining.TransferOwnerCall{NewOwner: owner}, nil
	}
	return nil, chain.ErrUnsupportedCall
}

func faucetCall(method string, a callArgs) (chain.Call, error) {
	switch method {
	case "drip":
		return faucet.DripCall{}, nil
	case "fund", "setDripAmount":
		amount, err := model.ParseAmount(a.Amount)
		if err != nil {
			return nil, err
		}
		if method == "fund" {
			return faucet.FundCall{Amount: amount}, nil
		}
		return faucet.SetDripAmountCall{Amount: amount}, nil
	case "setCooldownTime":
		return faucet.SetCooldownCall{Cooldown: time.Duration(a.Seconds) * time.Second}, nil
	case "withdrawTokens":
		to, err := parseAddress(a.To)
		if err != nil {
			return nil, err
		}
		amount, err := model.ParseAmount(a.Amount)
		if err != nil {
			return nil, err
		}
		return faucet.WithdrawTokensCall{To: to, Amount: amount}, nil
	case "pause":
		return faucet.PauseCall{}, nil
	case "unpause":
		return faucet.UnpauseCall{}, nil
	}
	return nil, chain.ErrUnsupportedCall
}

func walletCall(method string, a callArgs) (chain.Call, error) {
	switch method {
	case "addOwner", "removeOwner":
		owner, err := parseAddress(a.Owner)
		if err != nil {
			return nil, err
		}
		if method == "addOwner" {
			return multisig.AddOwnerCall{Owner: owner}, nil
		}
		return multisig.RemoveOwnerCall{Owner: owner}, nil
	case "changeRequirement":
		return multisig.ChangeRequirementCall{Required: a.Required}, nil
	case "deposit":
		return multisig.DepositCall{}, nil
	}
	return nil, chain.ErrUnsupportedCall
}

func auditCall(method string, a callArgs) (chain.Call, error) {
	switch method {
	case "addLogger", "removeLogger":
		logger, err := parseAddress(a.Logger)
		if err != nil {
			return nil, err
		}
		if method == "addLogger" {
			return audit.AddLoggerCall{Account: logger}, nil
		}
		return audit.RemoveLoggerCall{Account: logger}, nil
	case "grantRole", "revokeRole":
		account, err := parseAddress(a.Account)
		if err != nil {
			return nil, err
		}
		role := access.Role(a.Role)
		if method == "grantRole" {
			return audit.GrantRoleCall{Role: role, Account: account}, nil
		}
		return audit.RevokeRoleCall{Role: role, Account: account}, nil
	case "pause":
		return audit.PauseCall{}, nil
	case "unpause":
		return audit.UnpauseCall{}, nil
	}
	return nil, chain.ErrUnsupportedCall
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, badRequest("malformed address " + s)
	}
	return common.HexToAddress(s), nil
}

func parseAmountOrZero(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	return model.ParseAmount(s)
}
