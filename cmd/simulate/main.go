// Command simulate mines blocks against an in-memory deployment on a mock clock and reports
// how rewards, halvings and difficulty evolve.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/clock"
	"github.com/goodnatureofminers/token42-backend/internal/genesis"
	"github.com/goodnatureofminers/token42-backend/internal/mining"
	"github.com/goodnatureofminers/token42-backend/internal/model"
	"github.com/goodnatureofminers/token42-backend/pkg/safe"
)

type config struct {
	Miners     int           `long:"miners" env:"SIMULATE_MINERS" description:"number of miners" default:"4"`
	Blocks     uint64        `long:"blocks" env:"SIMULATE_BLOCKS" description:"blocks to mine" default:"50"`
	Workers    int           `long:"workers" env:"SIMULATE_WORKERS" description:"nonce search workers" default:"4"`
	Span       uint64        `long:"span" env:"SIMULATE_SPAN" description:"nonces tried per search" default:"16777216"`
	Difficulty uint64        `long:"difficulty" env:"SIMULATE_DIFFICULTY" description:"initial difficulty" default:"1000"`
	BlockTime  time.Duration `long:"block-time" env:"SIMULATE_BLOCK_TIME" description:"target block time" default:"5m"`
	Halving    uint64        `long:"halving" env:"SIMULATE_HALVING" description:"halving interval in blocks" default:"20"`
	Retarget   uint64        `long:"retarget" env:"SIMULATE_RETARGET" description:"retarget interval in blocks" default:"10"`
	Start      int64         `long:"start" env:"SIMULATE_START" description:"unix time of the first block" default:"1700000000"`
	Pace       time.Duration `long:"pace" env:"SIMULATE_PACE" description:"wall-clock pause between blocks"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}
	if cfg.Miners <= 0 {
		logger.Fatal("at least one miner is required")
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("simulation failed", zap.Error(err))
	}
}

type simulation struct {
	cfg    config
	clk    *clock.Mock
	suite  *genesis.Suite
	miners []common.Address
	logger *zap.Logger
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	deployer := common.HexToAddress("0xd0")
	g := genesis.DefaultConfig(deployer)
	g.Mining.Difficulty = cfg.Difficulty
	g.Mining.BlockTime = cfg.BlockTime
	g.Mining.HalvingInterval = cfg.Halving
	g.Mining.RetargetInterval = cfg.Retarget

	clk := clock.NewMock(time.Unix(cfg.Start, 0).UTC())
	// contract logs are noise at simulation scale
	suite, err := genesis.Deploy(chain.New(clk, zap.NewNop()), g, zap.NewNop())
	if err != nil {
		return fmt.Errorf("deploy contracts: %w", err)
	}
	sim := &simulation{cfg: cfg, clk: clk, suite: suite, logger: logger}

	for i := range cfg.Miners {
		addr := common.BigToAddress(big.NewInt(int64(0x1000 + i)))
		// spread power over [10, 100]
		power, err := safe.Uint8(10 + i*90/max(cfg.Miners-1, 1))
		if err != nil {
			return err
		}
		if err := suite.Chain.Exec(addr, nil, func(msg chain.Msg) error {
			return suite.Mining.StartMining(msg, power)
		}); err != nil {
			return fmt.Errorf("start miner %s: %w", addr, err)
		}
		sim.miners = append(sim.miners, addr)
	}

	pause := clock.Sleeper(clock.New())
	lastBonus := clk.Now()
	for n := uint64(0); n < cfg.Blocks; n++ {
		if n > 0 && cfg.Pace > 0 {
			if err := pause(ctx, cfg.Pace); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		// alternate fast and slow blocks so retargeting has something to react to
		step := cfg.BlockTime * time.Duration(n%3+1) / 2
		clk.Add(step)

		if clk.Now().Sub(lastBonus) >= 24*time.Hour {
			sim.claimBonuses()
			lastBonus = clk.Now()
		}

		miner := sim.miners[n%uint64(len(sim.miners))]
		if err := sim.mine(ctx, miner); err != nil {
			return fmt.Errorf("block %d: %w", n+1, err)
		}
	}
	sim.report()
	return nil
}

func (s *simulation) mine(ctx context.Context, miner common.Address) error {
	e := s.suite.Mining
	var puzzle mining.Puzzle
	if err := s.suite.Chain.View(func(now time.Time) error {
		puzzle = e.Puzzle(miner, now)
		return nil
	}); err != nil {
		return err
	}

	started := time.Now()
	nonce, hash, err := mining.Search(ctx, puzzle, s.cfg.Workers, 0, s.cfg.Span)
	if err != nil {
		return fmt.Errorf("search nonce: %w", err)
	}
	if err := s.suite.Chain.Exec(miner, nil, func(msg chain.Msg) error {
		return e.MineBlock(msg, nonce)
	}); err != nil {
		return fmt.Errorf("mine block: %w", err)
	}

	var (
		block mining.Block
		next  uint64
	)
	if err := s.suite.Chain.View(func(time.Time) error {
		next = e.Difficulty()
		block, err = e.Block(puzzle.Block)
		return err
	}); err != nil {
		return err
	}
	s.logger.Info("block mined",
		zap.Uint64("number", block.Number),
		zap.Stringer("miner", miner),
		zap.String("reward", model.FormatAmount(block.Reward)),
		zap.Uint64("difficulty", block.Difficulty),
		zap.Stringer("hash", hash),
		zap.Duration("search", time.Since(started)))
	if next != puzzle.Difficulty {
		s.logger.Info("difficulty adjusted", zap.Uint64("from", puzzle.Difficulty), zap.Uint64("to", next))
	}
	return nil
}

func (s *simulation) claimBonuses() {
	for _, m := range s.miners {
		err := s.suite.Chain.Exec(m, nil, s.suite.Mining.ClaimDailyBonus)
		if err != nil && !errors.Is(err, mining.ErrBonusNotReady) {
			s.logger.Warn("claim bonus", zap.Stringer("miner", m), zap.Error(err))
		}
	}
}

func (s *simulation) report() {
	_ = s.suite.Chain.View(func(now time.Time) error {
		for _, m := range s.miners {
			st := s.suite.Mining.MinerStats(m)
			s.logger.Info("miner",
				zap.Stringer("address", m),
				zap.Uint8("power", st.Power),
				zap.Uint64("blocks", st.BlocksFound),
				zap.String("mined", model.FormatAmount(st.TotalMined)),
				zap.String("balance", model.FormatAmount(s.suite.Token.BalanceOf(m))))
		}
		g := s.suite.Mining.GlobalStats()
		s.logger.Info("simulation finished",
			zap.Time("time", now),
			zap.Uint64("blocks", g.CurrentBlock-1),
			zap.String("totalMined", model.FormatAmount(g.TotalMined)),
			zap.String("currentReward", model.FormatAmount(g.CurrentReward)),
			zap.Uint64("difficulty", g.Difficulty),
			zap.String("totalSupply", model.FormatAmount(s.suite.Token.TotalSupply())))
		return nil
	})
}
