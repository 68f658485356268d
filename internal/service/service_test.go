package service

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/token42-backend/internal/audit"
	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/clock"
	"github.com/goodnatureofminers/token42-backend/internal/metrics"
	"github.com/goodnatureofminers/token42-backend/internal/model"
)

const network = "hardhat"

var (
	deployer = common.HexToAddress("0xd0")
	token    = common.HexToAddress("0x70")
	alice    = common.HexToAddress("0xa1")
	bob      = common.HexToAddress("0xb0")
	t0       = time.Unix(1_700_000_000, 0)
)

func newAuditChain(t *testing.T) (*chain.Chain, *audit.Logger) {
	t.Helper()
	c := chain.New(clock.NewMock(t0), zap.NewNop())
	addr := c.NextAddress(deployer)
	log, err := audit.New(addr, deployer, c, metrics.NewAuditLog(), zap.NewNop())
	require.NoError(t, err)
	c.Register(addr, log)
	return c, log
}

func appendEntries(t *testing.T, c *chain.Chain, log *audit.Logger, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		err := c.Exec(deployer, nil, func(msg chain.Msg) error {
			_, err := log.LogEvent(msg, model.TokenMinted, alice, token, []byte{byte(i)})
			return err
		})
		require.NoError(t, err)
	}
}

func logCount(t *testing.T, c *chain.Chain, log *audit.Logger) uint64 {
	t.Helper()
	var n uint64
	require.NoError(t, c.View(func(time.Time) error {
		n = log.LogCount()
		return nil
	}))
	return n
}
