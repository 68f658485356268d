package model

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// EventType classifies an audit log entry.
type EventType uint8

const (
	TokenMinted EventType = iota
	TokenBurned
	TokenTransferred
	MiningStarted
	MiningStopped
	BlockMined
	DailyBonusClaimed
	FaucetDrip
	MultisigTransactionSubmitted
	MultisigTransactionConfirmed
	MultisigTransactionExecuted
	MultisigTransactionRevoked
	RoleGranted
	RoleRevoked
	OwnershipTransferred
	ContractPaused
	ContractUnpaused
	ConfigurationChanged

	eventTypeCount
)

var eventTypeNames = [...]string{
	"TOKEN_MINTED",
	"TOKEN_BURNED",
	"TOKEN_TRANSFERRED",
	"MINING_STARTED",
	"MINING_STOPPED",
	"BLOCK_MINED",
	"DAILY_BONUS_CLAIMED",
	"FAUCET_DRIP",
	"MULTISIG_TRANSACTION_SUBMITTED",
	"MULTISIG_TRANSACTION_CONFIRMED",
	"MULTISIG_TRANSACTION_EXECUTED",
	"MULTISIG_TRANSACTION_REVOKED",
	"ROLE_GRANTED",
	"ROLE_REVOKED",
	"OWNERSHIP_TRANSFERRED",
	"CONTRACT_PAUSED",
	"CONTRACT_UNPAUSED",
	"CONFIGURATION_CHANGED",
}

// EventTypes lists every defined event type in enum order.
func EventTypes() []EventType {
	out := make([]EventType, 0, eventTypeCount)
	for t := EventType(0); t < eventTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

// Valid reports whether t is a defined event type.
func (t EventType) Valid() bool {
	return t < eventTypeCount
}

func (t EventType) String() string {
	if !t.Valid() {
		return "UNKNOWN"
	}
	return eventTypeNames[t]
}

// ParseEventType resolves an event type by name.
func ParseEventType(name string) (EventType, bool) {
	for i, n := range eventTypeNames {
		if n == name {
			return EventType(i), true
		}
	}
	return 0, false
}

// LogEntry is an immutable audit record.
type LogEntry struct {
	ID        uint64
	Type      EventType
	Actor     common.Address
	Target    common.Address
	Timestamp time.Time
	DataHash  common.Hash
	Checksum  common.Hash
}
