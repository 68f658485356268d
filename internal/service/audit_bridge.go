package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/model"
)

// eventActorKeys names, per chain event, the argument holding the acting account.
var eventActorKeys = map[string]string{
	"MiningStarted":        "miner",
	"MiningStopped":        "miner",
	"BlockMined":           "miner",
	"DailyBonusClaimed":    "miner",
	"TokensDripped":        "recipient",
	"SubmitTransaction":    "owner",
	"ConfirmTransaction":   "owner",
	"ExecuteTransaction":   "owner",
	"RevokeConfirmation":   "owner",
	"MinterAdded":          "minter",
	"MinterRemoved":        "minter",
	"RoleGranted":          "account",
	"RoleRevoked":          "account",
	"LoggerAdded":          "logger",
	"LoggerRemoved":        "logger",
	"OwnerAdded":           "owner",
	"OwnerRemoved":         "owner",
	"OwnershipTransferred": "newOwner",
	"Paused":               "account",
	"Unpaused":             "account",
}

var eventTypes = map[string]model.EventType{
	"MiningStarted":        model.MiningStarted,
	"MiningStopped":        model.MiningStopped,
	"BlockMined":           model.BlockMined,
	"DailyBonusClaimed":    model.DailyBonusClaimed,
	"TokensDripped":        model.FaucetDrip,
	"SubmitTransaction":    model.MultisigTransactionSubmitted,
	"ConfirmTransaction":   model.MultisigTransactionConfirmed,
	"ExecuteTransaction":   model.MultisigTransactionExecuted,
	"RevokeConfirmation":   model.MultisigTransactionRevoked,
	"MinterAdded":          model.RoleGranted,
	"RoleGranted":          model.RoleGranted,
	"LoggerAdded":          model.RoleGranted,
	"OwnerAdded":           model.RoleGranted,
	"MinterRemoved":        model.RoleRevoked,
	"RoleRevoked":          model.RoleRevoked,
	"LoggerRemoved":        model.RoleRevoked,
	"OwnerRemoved":         model.RoleRevoked,
	"OwnershipTransferred": model.OwnershipTransferred,
	"Paused":               model.ContractPaused,
	"Unpaused":             model.ContractUnpaused,
	"ParameterUpdated":     model.ConfigurationChanged,
	"DripAmountUpdated":    model.ConfigurationChanged,
	"CooldownUpdated":      model.ConfigurationChanged,
	"DifficultyAdjusted":   model.ConfigurationChanged,
	"RequirementChanged":   model.ConfigurationChanged,
}

// bridgeEntry is a chain event translated into LogEvent arguments.
type bridgeEntry struct {
	event  string
	typ    model.EventType
	actor  common.Address
	target common.Address
	data   []byte
}

// Translate maps a committed chain event to an audit entry. ok is false for events that
// have no audit counterpart.
func Translate(ev chain.Event) (typ model.EventType, actor common.Address, data []byte, ok bool) {
	if ev.Name == "Transfer" {
		from, to := argAddress(ev, "from"), argAddress(ev, "to")
		switch {
		case from == (common.Address{}):
			typ, actor = model.TokenMinted, to
		case to == (common.Address{}):
			typ, actor = model.TokenBurned, from
		default:
			typ, actor = model.TokenTransferred, from
		}
	} else {
		if typ, ok = eventTypes[ev.Name]; !ok {
			return 0, common.Address{}, nil, false
		}
		if key, found := eventActorKeys[ev.Name]; found {
			actor = argAddress(ev, key)
		}
	}
	if actor == (common.Address{}) {
		actor = ev.Contract
	}
	data, err := json.Marshal(struct {
		Event string         `json:"event"`
		Args  map[string]any `json:"args,omitempty"`
	}{ev.Name, ev.Args})
	if err != nil {
		return 0, common.Address{}, nil, false
	}
	return typ, actor, data, true
}

func argAddress(ev chain.Event, key string) common.Address {
	s, _ := ev.Args[key].(string)
	if !common.IsHexAddress(s) {
		return common.Address{}
	}
	return common.HexToAddress(s)
}

// AuditBridge records committed contract events in the audit log, signing as sender. The
// sender must hold the logger role.
type AuditBridge struct {
	chain   Chain
	log     AuditLog
	sender  common.Address
	metrics AuditBridgeMetrics
	logger  *zap.Logger

	mu     sync.Mutex
	queue  []bridgeEntry
	notify chan struct{}
}

// NewAuditBridge builds a bridge feeding log.
func NewAuditBridge(c Chain, log AuditLog, sender common.Address, metrics AuditBridgeMetrics, logger *zap.Logger) (*AuditBridge, error) {
	if c == nil || log == nil || metrics == nil {
		return nil, errors.New("audit bridge: chain, log and metrics are required")
	}
	if sender == (common.Address{}) {
		return nil, model.ErrZeroAddress
	}
	return &AuditBridge{
		chain:   c,
		log:     log,
		sender:  sender,
		metrics: metrics,
		logger:  logger.Named("audit_bridge"),
		notify:  make(chan struct{}, 1),
	}, nil
}

// Run bridges events until ctx is done. Events still queued at that point are dropped.
func (b *AuditBridge) Run(ctx context.Context) error {
	events := make(chan chain.Event, 256)
	sub := b.chain.Subscribe(events)
	defer sub.Unsubscribe()

	done := make(chan struct{})
	defer close(done)
	go b.receive(events, sub.Err(), done)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-b.notify:
		}
		for {
			entry, ok := b.pop()
			if !ok {
				break
			}
			b.record(entry)
		}
	}
}

// receive runs on the feed's delivery path and must never wait on the chain.
func (b *AuditBridge) receive(events <-chan chain.Event, errc <-chan error, done <-chan struct{}) {
	self := b.log.Address()
	for {
		select {
		case ev := <-events:
			if ev.Contract == self {
				continue
			}
			typ, actor, data, ok := Translate(ev)
			if !ok {
				b.metrics.ObserveSkipped(ev.Name)
				continue
			}
			b.push(bridgeEntry{event: ev.Name, typ: typ, actor: actor, target: ev.Contract, data: data})
		case <-errc:
			return
		case <-done:
			return
		}
	}
}

func (b *AuditBridge) push(e bridgeEntry) {
	b.mu.Lock()
	b.queue = append(b.queue, e)
	n := len(b.queue)
	b.mu.Unlock()
	b.metrics.SetQueueLength(n)
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

func (b *AuditBridge) pop() (bridgeEntry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return bridgeEntry{}, false
	}
	e := b.queue[0]
	b.queue[0] = bridgeEntry{}
	b.queue = b.queue[1:]
	b.metrics.SetQueueLength(len(b.queue))
	return e, true
}

func (b *AuditBridge) record(e bridgeEntry) {
	started := time.Now()
	var id uint64
	err := b.chain.Exec(b.sender, nil, func(msg chain.Msg) error {
		var err error
		id, err = b.log.LogEvent(msg, e.typ, e.actor, e.target, e.data)
		return err
	})
	b.metrics.ObserveEvent(e.typ.String(), err, started)
	if err != nil {
		b.logger.Warn("event not recorded in audit log",
			zap.String("event", e.event),
			zap.Stringer("target", e.target),
			zap.Error(fmt.Errorf("log %s: %w", e.typ, err)))
		return
	}
	b.logger.Debug("event recorded in audit log",
		zap.String("event", e.event),
		zap.Uint64("log_id", id))
}
