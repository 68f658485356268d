// Package audit implements the append-only audit log. Writers need the logger role; every
// entry is indexed by actor, type and target contract and can be re-verified against its
// stored checksum.
package audit

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/token42-backend/internal/access"
	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/model"
)

// Logger is the audit log contract. Entries are never mutated or removed; an entry's id is
// its position in the log.
type Logger struct {
	address common.Address
	roles   *access.Roles
	paused  bool

	entries    []model.LogEntry
	byActor    map[common.Address][]uint64
	byType     map[model.EventType][]uint64
	byContract map[common.Address][]uint64
	typeCount  map[model.EventType]uint64
	actorTypes map[common.Address]map[model.EventType]uint64
	lastSeen   map[common.Address]time.Time

	emitter Emitter
	metrics Metrics
	logger  *zap.Logger
}

// New deploys an audit log at address. The deployer holds every role.
func New(address, deployer common.Address, emitter Emitter, metrics Metrics, logger *zap.Logger) (*Logger, error) {
	if metrics == nil {
		return nil, errors.New("audit metrics is required")
	}
	if deployer == (common.Address{}) {
		return nil, model.ErrZeroAddress
	}
	l := &Logger{
		address:    address,
		roles:      access.NewRoles(),
		byActor:    make(map[common.Address][]uint64),
		byType:     make(map[model.EventType][]uint64),
		byContract: make(map[common.Address][]uint64),
		typeCount:  make(map[model.EventType]uint64),
		actorTypes: make(map[common.Address]map[model.EventType]uint64),
		lastSeen:   make(map[common.Address]time.Time),
		emitter:    emitter,
		metrics:    metrics,
		logger:     logger.Named("audit"),
	}
	for _, role := range []access.Role{access.Admin, access.Auditor, access.Logger} {
		l.roles.Grant(role, deployer)
	}
	return l, nil
}

func (l *Logger) Address() common.Address { return l.address }
func (l *Logger) Paused() bool            { return l.paused }
func (l *Logger) LogCount() uint64        { return uint64(len(l.entries)) }

// HasRole reports whether addr holds role.
func (l *Logger) HasRole(role access.Role, addr common.Address) bool {
	return l.roles.Has(role, addr)
}

// CanLog reports whether addr may append entries.
func (l *Logger) CanLog(addr common.Address) bool {
	return l.roles.Has(access.Logger, addr)
}

// AddLogger grants the logger role. Admin only.
func (l *Logger) AddLogger(msg chain.Msg, account common.Address) (err error) {
	defer l.observe("add_logger", time.Now(), &err)
	if err = l.roles.Require(msg.Sender, access.Admin); err != nil {
		return err
	}
	if account == (common.Address{}) {
		return ErrInvalidLogger
	}
	if l.roles.Grant(access.Logger, account) {
		l.emit("LoggerAdded", msg.Time, "logger", account, "addedBy", msg.Sender)
	}
	return nil
}

// RemoveLogger revokes the logger role. Admin only.
func (l *Logger) RemoveLogger(msg chain.Msg, account common.Address) (err error) {
	defer l.observe("remove_logger", time.Now(), &err)
	if err = l.roles.Require(msg.Sender, access.Admin); err != nil {
		return err
	}
	if account == (common.Address{}) {
		return ErrInvalidLogger
	}
	if l.roles.Revoke(access.Logger, account) {
		l.emit("LoggerRemoved", msg.Time, "logger", account, "removedBy", msg.Sender)
	}
	return nil
}

// GrantRole adds account to role. Admin only.
func (l *Logger) GrantRole(msg chain.Msg, role access.Role, account common.Address) (err error) {
	defer l.observe("grant_role", time.Now(), &err)
	if err = l.roles.Require(msg.Sender, access.Admin); err != nil {
		return err
	}
	if account == (common.Address{}) {
		return model.ErrZeroAddress
	}
	if l.roles.Grant(role, account) {
		l.emit("RoleGranted", msg.Time, "role", string(role), "account", account, "sender", msg.Sender)
	}
	return nil
}

// RevokeRole removes account from role. Admin only. The last admin cannot be revoked.
func (l *Logger) RevokeRole(msg chain.Msg, role access.Role, account common.Address) (err error) {
	defer l.observe("revoke_role", time.Now(), &err)
	if err = l.roles.Require(msg.Sender, access.Admin); err != nil {
		return err
	}
	if role == access.Admin && l.roles.Has(access.Admin, account) && l.roles.Count(access.Admin) == 1 {
		return model.Revert(model.ErrInvalidState, "cannot revoke the last admin")
	}
	if l.roles.Revoke(role, account) {
		l.emit("RoleRevoked", msg.Time, "role", string(role), "account", account, "sender", msg.Sender)
	}
	return nil
}

// LogEvent appends an entry attributed to actor and target and returns its id. Only the
// keccak256 hash of data is retained.
func (l *Logger) LogEvent(msg chain.Msg, typ model.EventType, actor, target common.Address, data []byte) (id uint64, err error) {
	defer l.observe("log_event", time.Now(), &err)
	if l.paused {
		return 0, model.ErrEnforced
	}
	if err = l.roles.Require(msg.Sender, access.Logger); err != nil {
		return 0, err
	}
	if actor == (common.Address{}) {
		return 0, ErrInvalidActor
	}
	if target == (common.Address{}) {
		return 0, ErrInvalidTarget
	}
	if !typ.Valid() {
		return 0, ErrInvalidEventType
	}

	id = uint64(len(l.entries))
	entry := model.LogEntry{
		ID:        id,
		Type:      typ,
		Actor:     actor,
		Target:    target,
		Timestamp: msg.Time,
		DataHash:  crypto.Keccak256Hash(data),
	}
	entry.Checksum = checksum(entry)
	l.append(entry)

	l.emit("AuditLog", msg.Time,
		"logId", id,
		"eventType", typ.String(),
		"actor", actor,
		"targetContract", target,
		"timestamp", msg.Time.Unix(),
		"dataHash", entry.DataHash,
	)
	l.metrics.SetLogCount(uint64(len(l.entries)))
	l.logger.Debug("entry appended",
		zap.Uint64("id", id),
		zap.Stringer("type", typ),
		zap.Stringer("actor", actor))
	return id, nil
}

func (l *Logger) append(entry model.LogEntry) {
	l.entries = append(l.entries, entry)
	l.byActor[entry.Actor] = append(l.byActor[entry.Actor], entry.ID)
	l.byType[entry.Type] = append(l.byType[entry.Type], entry.ID)
	l.byContract[entry.Target] = append(l.byContract[entry.Target], entry.ID)
	l.typeCount[entry.Type]++

	counts, ok := l.actorTypes[entry.Actor]
	if !ok {
		counts = make(map[model.EventType]uint64)
		l.actorTypes[entry.Actor] = counts
	}
	counts[entry.Type]++
	l.lastSeen[entry.Actor] = entry.Timestamp
}

// Pause blocks LogEvent. Admin or auditor.
func (l *Logger) Pause(msg chain.Msg) (err error) {
	defer l.observe("pause", time.Now(), &err)
	if err = l.roles.Require(msg.Sender, access.Admin, access.Auditor); err != nil {
		return err
	}
	if l.paused {
		return model.ErrEnforced
	}
	l.paused = true
	l.emit("AuditSystemPaused", msg.Time, "account", msg.Sender, "timestamp", msg.Time.Unix())
	l.logger.Info("audit log paused", zap.Stringer("by", msg.Sender))
	return nil
}

// Unpause resumes LogEvent. Admin only.
func (l *Logger) Unpause(msg chain.Msg) (err error) {
	defer l.observe("unpause", time.Now(), &err)
	if err = l.roles.Require(msg.Sender, access.Admin); err != nil {
		return err
	}
	if !l.paused {
		return model.ErrNotPaused
	}
	l.paused = false
	l.emit("AuditSystemUnpaused", msg.Time, "account", msg.Sender, "timestamp", msg.Time.Unix())
	l.logger.Info("audit log unpaused", zap.Stringer("by", msg.Sender))
	return nil
}

// checksum binds every stored field of an entry.
func checksum(e model.LogEntry) common.Hash {
	buf := make([]byte, 0, 8+1+2*common.AddressLength+8+common.HashLength)
	buf = binary.BigEndian.AppendUint64(buf, e.ID)
	buf = append(buf, byte(e.Type))
	buf = append(buf, e.Actor.Bytes()...)
	buf = append(buf, e.Target.Bytes()...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(e.Timestamp.Unix()))
	buf = append(buf, e.DataHash.Bytes()...)
	return crypto.Keccak256Hash(buf)
}

func (l *Logger) emit(name string, at time.Time, kv ...any) {
	if l.emitter == nil {
		return
	}
	l.emitter.Emit(chain.NewEvent(l.address, name, at, kv...))
}

func (l *Logger) observe(operation string, started time.Time, err *error) {
	l.metrics.Observe(operation, *err, started)
}
