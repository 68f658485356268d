package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/token42-backend/internal/model"
	"github.com/goodnatureofminers/token42-backend/internal/repository/deployment"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		ObserveRequest(method, route string, code int, started time.Time)
		ObserveSearch(err error, started time.Time)
	}
	DeploymentStore interface {
		Latest(chainID uint64, name string) (model.Deployment, bool, error)
		History(chainID uint64, name string) ([]model.Deployment, error)
		Networks() ([]string, error)
		All() (deployment.File, error)
	}
	// AuditArchive is the exported copy of the audit log.
	AuditArchive interface {
		CountByType(ctx context.Context, network string) (map[model.EventType]uint64, error)
	}
	// Advancer moves a manually driven clock.
	Advancer interface {
		Add(d time.Duration)
	}
)
