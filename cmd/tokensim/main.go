package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/clock"
	"github.com/goodnatureofminers/token42-backend/internal/genesis"
	"github.com/goodnatureofminers/token42-backend/internal/metrics"
	"github.com/goodnatureofminers/token42-backend/internal/model"
	"github.com/goodnatureofminers/token42-backend/internal/repository/clickhouse"
	"github.com/goodnatureofminers/token42-backend/internal/repository/deployment"
	"github.com/goodnatureofminers/token42-backend/internal/service"
	"github.com/goodnatureofminers/token42-backend/internal/transport"
	"github.com/goodnatureofminers/token42-backend/pkg/safe"
)

type config struct {
	Addr     string `long:"addr" env:"TOKENSIM_ADDR" description:"gRPC health addr" default:":8000"`
	RestAddr string `long:"rest-addr" env:"TOKENSIM_REST_ADDR" description:"REST addr" default:":8001"`
	// Zero leaves the gRPC default in place.
	MaxStreams int `long:"grpc-max-streams" env:"TOKENSIM_GRPC_MAX_STREAMS" description:"concurrent gRPC streams per connection"`

	Network string `long:"network" env:"TOKENSIM_NETWORK" description:"network name" default:"hardhat"`
	ChainID uint64 `long:"chain-id" env:"TOKENSIM_CHAIN_ID" description:"chain id" default:"31337"`
	// Hardhat's first default account.
	Deployer string   `long:"deployer" env:"TOKENSIM_DEPLOYER" description:"deployer address" default:"0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"`
	Owners   []string `long:"owner" env:"TOKENSIM_OWNERS" env-delim:"," description:"multisig owner, repeatable; defaults to the deployer"`
	Required uint64   `long:"required" env:"TOKENSIM_REQUIRED" description:"multisig confirmations" default:"1"`

	Difficulty     uint64        `long:"difficulty" env:"TOKENSIM_DIFFICULTY" description:"initial mining difficulty" default:"1000"`
	BaseReward     string        `long:"base-reward" env:"TOKENSIM_BASE_REWARD" description:"block reward in tokens" default:"100"`
	BlockTime      time.Duration `long:"block-time" env:"TOKENSIM_BLOCK_TIME" description:"target block time" default:"5m"`
	DripAmount     string        `long:"drip-amount" env:"TOKENSIM_DRIP_AMOUNT" description:"faucet drip in tokens" default:"100"`
	FaucetCooldown time.Duration `long:"faucet-cooldown" env:"TOKENSIM_FAUCET_COOLDOWN" description:"faucet cooldown" default:"24h"`
	FaucetFunding  string        `long:"faucet-funding" env:"TOKENSIM_FAUCET_FUNDING" description:"tokens moved to the faucet at deployment" default:"100000"`
	WalletFunding  string        `long:"wallet-funding" env:"TOKENSIM_WALLET_FUNDING" description:"native value credited to the multisig" default:"0"`

	DeploymentsPath string `long:"deployments-path" env:"TOKENSIM_DEPLOYMENTS_PATH" description:"bbolt deployment registry; empty disables it" default:"deployments.db"`
	DeploymentsJSON string `long:"deployments-json" env:"TOKENSIM_DEPLOYMENTS_JSON" description:"also write the registry as deployments.json to this path"`
	ClickhouseDSN   string `long:"clickhouse-dsn" env:"TOKENSIM_CLICKHOUSE_DSN" description:"ClickHouse DSN; empty disables the audit export"`
	AuditBridge     bool   `long:"audit-bridge" env:"TOKENSIM_AUDIT_BRIDGE" description:"record contract events in the audit log"`
	EventBuffer     int    `long:"event-buffer" env:"TOKENSIM_EVENT_BUFFER" description:"recent events kept for /v1/events" default:"1024"`
	SearchWorkers   int    `long:"search-workers" env:"TOKENSIM_SEARCH_WORKERS" description:"nonce search workers" default:"4"`
	Dev             bool   `long:"dev" env:"TOKENSIM_DEV" description:"mock clock, clock advancing and native credits"`
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
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("tokensim failed", zap.Error(err))
	}
}

func genesisConfig(cfg config) (genesis.Config, error) {
	if !common.IsHexAddress(cfg.Deployer) {
		return genesis.Config{}, fmt.Errorf("malformed deployer %q", cfg.Deployer)
	}
	g := genesis.DefaultConfig(common.HexToAddress(cfg.Deployer))
	g.ChainID = cfg.ChainID
	g.NetworkName = cfg.Network
	g.Required = cfg.Required
	for _, o := range cfg.Owners {
		if !common.IsHexAddress(o) {
			return genesis.Config{}, fmt.Errorf("malformed owner %q", o)
		}
		g.Owners = append(g.Owners, common.HexToAddress(o))
	}

	g.Mining.Difficulty = cfg.Difficulty
	g.Mining.BlockTime = cfg.BlockTime
	g.Faucet.Cooldown = cfg.FaucetCooldown
	amounts := []struct {
		name string
		raw  string
		dst  **big.Int
	}{
		{"base reward", cfg.BaseReward, &g.Mining.BaseReward},
		{"drip amount", cfg.DripAmount, &g.Faucet.DripAmount},
		{"faucet funding", cfg.FaucetFunding, &g.FaucetFunding},
		{"wallet funding", cfg.WalletFunding, &g.WalletFunding},
	}
	for _, a := range amounts {
		v, err := model.ParseAmount(a.raw)
		if err != nil {
			return genesis.Config{}, fmt.Errorf("%s: %w", a.name, err)
		}
		*a.dst = v
	}
	return g, nil
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	gcfg, err := genesisConfig(cfg)
	if err != nil {
		return err
	}

	var (
		clk      clock.Clock = clock.New()
		advancer transport.Advancer
	)
	if cfg.Dev {
		mock := clock.NewMock(time.Now())
		clk, advancer = mock, mock
	}

	c := chain.New(clk, logger)
	suite, err := genesis.Deploy(c, gcfg, logger)
	if err != nil {
		return fmt.Errorf("deploy contracts: %w", err)
	}
	d := suite.Deployment()
	logger.Info("contracts deployed",
		zap.String("network", cfg.Network),
		zap.String("token", d.Contracts.Token.Address),
		zap.String("mining", d.Contracts.Mining.Address),
		zap.String("faucet", d.Contracts.Faucet.Address),
		zap.String("multisig", d.Contracts.MultiSig.Address),
		zap.String("audit", d.Contracts.AuditLogger.Address))

	var store transport.DeploymentStore
	if cfg.DeploymentsPath != "" {
		s, err := deployment.Open(cfg.DeploymentsPath, metrics.NewDeploymentStore(), logger)
		if err != nil {
			return fmt.Errorf("open deployment registry: %w", err)
		}
		defer func() {
			if err := s.Close(); err != nil {
				logger.Error("close deployment registry", zap.Error(err))
			}
		}()
		key, err := s.Record(d)
		if err != nil {
			return fmt.Errorf("record deployment: %w", err)
		}
		logger.Info("deployment recorded", zap.String("key", key))
		if cfg.DeploymentsJSON != "" {
			if err := exportDeployments(s, cfg.DeploymentsJSON); err != nil {
				return err
			}
		}
		store = s
	}

	events := transport.NewEventBuffer(cfg.EventBuffer)
	sub := events.Follow(c)
	defer sub.Unsubscribe()

	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.AuditBridge {
		bridge, err := service.NewAuditBridge(c, suite.Audit, gcfg.Deployer, metrics.NewAuditBridge(), logger)
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := bridge.Run(ctx); err != nil {
				logger.Error("audit bridge stopped", zap.Error(err))
			}
		}()
	}

	var archive transport.AuditArchive
	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
		if err != nil {
			return fmt.Errorf("init repository: %w", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				logger.Error("close repository", zap.Error(err))
			}
		}()
		archive = repo
		ecfg := service.DefaultAuditExporterConfig()
		ecfg.Network = deployment.NetworkKey(cfg.ChainID, cfg.Network)
		exporter, err := service.NewAuditExporter(c, suite.Audit, repo, metrics.NewAuditExporter(ecfg.Network), ecfg, logger)
		if err != nil {
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := exporter.Run(ctx); err != nil {
				logger.Error("audit exporter stopped", zap.Error(err))
			}
		}()
	}

	if err := serveGRPC(ctx, &wg, cfg.Addr, cfg.MaxStreams, logger); err != nil {
		return err
	}

	srv, err := transport.NewServer(suite, store, archive, events, advancer, metrics.NewAPI(), transport.Config{
		ChainID:       cfg.ChainID,
		Network:       cfg.Network,
		SearchWorkers: cfg.SearchWorkers,
		Dev:           cfg.Dev,
	}, logger)
	if err != nil {
		return err
	}
	handler, err := srv.Handler()
	if err != nil {
		return err
	}

	s := &http.Server{
		Addr:              cfg.RestAddr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// nonce searches run inside the request
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", cfg.RestAddr), zap.Bool("dev", cfg.Dev))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		cancel()
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}

func exportDeployments(s *deployment.Store, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := s.Export(f); err != nil {
		return fmt.Errorf("export deployments: %w", err)
	}
	return nil
}

func serveGRPC(ctx context.Context, wg *sync.WaitGroup, addr string, maxStreams int, logger *zap.Logger) error {
	interceptors := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	opts := []grpc.ServerOption{
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(interceptors...)),
	}
	if maxStreams > 0 {
		streams, err := safe.Uint32(maxStreams)
		if err != nil {
			return fmt.Errorf("grpc max streams: %w", err)
		}
		opts = append(opts, grpc.MaxConcurrentStreams(streams))
	}
	grpcServer := grpc.NewServer(opts...)
	grpcPrometheus.EnableHandlingTimeHistogram()

	healthpb.RegisterHealthServer(grpcServer, transport.NewHealthHandler(nil))
	grpcPrometheus.Register(grpcServer)

	socket, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("Starting gRPC server", zap.String("addr", addr))
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("gRPC server stopped", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()
	return nil
}
