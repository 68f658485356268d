// Package genesis deploys the contract suite onto a chain host and describes the result
// as a deployment record.
package genesis

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/token42-backend/internal/audit"
	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/faucet"
	"github.com/goodnatureofminers/token42-backend/internal/ledger"
	"github.com/goodnatureofminers/token42-backend/internal/metrics"
	"github.com/goodnatureofminers/token42-backend/internal/mining"
	"github.com/goodnatureofminers/token42-backend/internal/model"
	"github.com/goodnatureofminers/token42-backend/internal/multisig"
)

// Config describes a deployment.
type Config struct {
	Deployer    common.Address
	ChainID     uint64
	NetworkName string

	Token  ledger.Config
	Mining mining.Config
	Faucet faucet.Config
	// FaucetFunding is transferred from the deployer to the faucet after deployment.
	FaucetFunding *big.Int

	// Owners defaults to the deployer alone.
	Owners   []common.Address
	Required uint64
	// WalletFunding is native value credited to the multisig wallet.
	WalletFunding *big.Int
}

// DefaultConfig deploys the standard suite for deployer on a local hardhat network.
func DefaultConfig(deployer common.Address) Config {
	return Config{
		Deployer:      deployer,
		ChainID:       31337,
		NetworkName:   "hardhat",
		Token:         ledger.DefaultConfig(),
		Mining:        mining.DefaultConfig(),
		Faucet:        faucet.DefaultConfig(),
		FaucetFunding: model.Tokens(100_000),
		Required:      1,
	}
}

// Suite is a deployed contract set.
type Suite struct {
	Chain    *chain.Chain
	Token    *ledger.Ledger
	Mining   *mining.Engine
	Faucet   *faucet.Faucet
	MultiSig *multisig.Wallet
	Audit    *audit.Logger

	cfg Config
	at  time.Time
}

// Deploy creates, registers and wires every contract. The mining engine becomes a token
// minter and the faucet is funded from the deployer's initial supply.
func Deploy(c *chain.Chain, cfg Config, logger *zap.Logger) (*Suite, error) {
	if cfg.Deployer == (common.Address{}) {
		return nil, errors.New("genesis: deployer is required")
	}
	owners := cfg.Owners
	if len(owners) == 0 {
		owners = []common.Address{cfg.Deployer}
	}
	required := cfg.Required
	if required == 0 {
		required = 1
	}

	s := &Suite{Chain: c, cfg: cfg, at: c.Now()}
	var err error

	tokenAddr := c.NextAddress(cfg.Deployer)
	if s.Token, err = ledger.New(tokenAddr, cfg.Deployer, cfg.Token, c, metrics.NewContract("token"), logger); err != nil {
		return nil, fmt.Errorf("deploy token: %w", err)
	}
	c.Register(tokenAddr, s.Token)

	miningAddr := c.NextAddress(cfg.Deployer)
	if s.Mining, err = mining.New(miningAddr, cfg.Deployer, cfg.Mining, s.Token, c, metrics.NewMining(), logger); err != nil {
		return nil, fmt.Errorf("deploy mining: %w", err)
	}
	c.Register(miningAddr, s.Mining)

	faucetAddr := c.NextAddress(cfg.Deployer)
	if s.Faucet, err = faucet.New(faucetAddr, cfg.Deployer, s.Token, cfg.Faucet, c, metrics.NewContract("faucet"), logger); err != nil {
		return nil, fmt.Errorf("deploy faucet: %w", err)
	}
	c.Register(faucetAddr, s.Faucet)

	walletAddr := c.NextAddress(cfg.Deployer)
	if s.MultiSig, err = multisig.New(walletAddr, owners, required, c, c, c, metrics.NewContract("multisig"), logger); err != nil {
		return nil, fmt.Errorf("deploy multisig: %w", err)
	}
	c.Register(walletAddr, s.MultiSig)

	auditAddr := c.NextAddress(cfg.Deployer)
	if s.Audit, err = audit.New(auditAddr, cfg.Deployer, c, metrics.NewAuditLog(), logger); err != nil {
		return nil, fmt.Errorf("deploy audit log: %w", err)
	}
	c.Register(auditAddr, s.Audit)

	err = c.Exec(cfg.Deployer, nil, func(msg chain.Msg) error {
		if err := s.Token.AddMinter(msg, miningAddr); err != nil {
			return err
		}
		if cfg.FaucetFunding != nil && cfg.FaucetFunding.Sign() > 0 {
			return s.Token.Transfer(msg, faucetAddr, cfg.FaucetFunding)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("wire contracts: %w", err)
	}
	if cfg.WalletFunding != nil && cfg.WalletFunding.Sign() > 0 {
		c.Credit(walletAddr, cfg.WalletFunding)
	}

	logger.Info("contracts deployed",
		zap.Stringer("token", tokenAddr),
		zap.Stringer("mining", miningAddr),
		zap.Stringer("faucet", faucetAddr),
		zap.Stringer("multisig", walletAddr),
		zap.Stringer("audit", auditAddr))
	return s, nil
}

// Deployment describes the suite for the deployment registry.
func (s *Suite) Deployment() model.Deployment {
	contract := func(name string, addr common.Address, symbol string) *model.DeployedContract {
		return &model.DeployedContract{Name: name, Address: addr.Hex(), Symbol: symbol}
	}
	return model.Deployment{
		Timestamp:   s.at,
		Deployer:    s.cfg.Deployer.Hex(),
		ChainID:     s.cfg.ChainID,
		NetworkName: s.cfg.NetworkName,
		Contracts: model.DeploymentContracts{
			Token:       contract(s.Token.Name(), s.Token.Address(), s.Token.Symbol()),
			Mining:      contract("MiningContractV2", s.Mining.Address(), ""),
			Faucet:      contract("TokenFaucet", s.Faucet.Address(), ""),
			MultiSig:    contract("MultiSigWallet", s.MultiSig.Address(), ""),
			AuditLogger: contract("AuditLogger", s.Audit.Address(), ""),
		},
		Configuration: &model.DeploymentConfiguration{
			InitialSupply:    model.FormatAmount(s.cfg.Token.InitialSupply),
			MaxSupply:        model.FormatAmount(s.cfg.Token.MaxSupply),
			FaucetFunding:    model.FormatAmount(s.cfg.FaucetFunding),
			MiningBaseReward: model.FormatAmount(s.cfg.Mining.BaseReward),
		},
	}
}
