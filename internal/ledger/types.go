package ledger

import (
	"time"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Emitter interface {
		Emit(ev chain.Event)
	}
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
