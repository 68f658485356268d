package service

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Chain is the part of the chain host the services drive.
	Chain interface {
		View(fn func(now time.Time) error) error
		Exec(sender common.Address, value *big.Int, fn func(chain.Msg) error) error
		Subscribe(ch chan<- chain.Event) event.Subscription
	}
	// AuditLog is the audit contract as seen from inside View and Exec.
	AuditLog interface {
		Address() common.Address
		Entries(from uint64, limit int) []model.LogEntry
		LogEvent(msg chain.Msg, typ model.EventType, actor, target common.Address, data []byte) (uint64, error)
	}
	AuditRepository interface {
		MaxLogID(ctx context.Context, network string) (uint64, bool, error)
		InsertAuditLogs(ctx context.Context, network string, entries []model.LogEntry) error
	}
	AuditExporterMetrics interface {
		ObserveFetch(err error, started time.Time)
		ObserveFlush(err error, entries int, started time.Time)
		SetLastID(id uint64)
	}
	AuditBridgeMetrics interface {
		ObserveEvent(eventType string, err error, started time.Time)
		ObserveSkipped(event string)
		SetQueueLength(n int)
	}
)
