// Package chain is the execution host the contracts run in: it serializes transactions,
// stamps caller identity and block time, routes internal calls and publishes events.
package chain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Msg is the implicit context of a call: who signed it, what native value it carries and
// the block time it executes at.
type Msg struct {
	Sender common.Address
	Value  *big.Int
	Time   time.Time
}

// As returns a copy of m re-signed by sender, carrying value. Contracts use it when they
// call into another contract on their own behalf.
func (m Msg) As(sender common.Address, value *big.Int) Msg {
	return Msg{Sender: sender, Value: value, Time: m.Time}
}

// Call is a typed invocation routed to a contract by Dispatch.
type Call interface {
	Method() string
}

// Contract accepts dispatched calls.
type Contract interface {
	Invoke(msg Msg, call Call) error
}

// Event is a state-change notification published after its transaction commits.
type Event struct {
	Contract common.Address `json:"contract"`
	Name     string         `json:"name"`
	Time     time.Time      `json:"time"`
	Args     map[string]any `json:"args,omitempty"`
}

// NewEvent builds an Event from alternating key/value pairs.
func NewEvent(contract common.Address, name string, at time.Time, kv ...any) Event {
	ev := Event{Contract: contract, Name: name, Time: at}
	if len(kv) > 0 {
		ev.Args = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			key, _ := kv[i].(string)
			ev.Args[key] = render(kv[i+1])
		}
	}
	return ev
}

func render(v any) any {
	switch x := v.(type) {
	case common.Address:
		return x.Hex()
	case common.Hash:
		return x.Hex()
	case *big.Int:
		if x == nil {
			return "0"
		}
		return x.String()
	case time.Duration:
		return x.String()
	default:
		return v
	}
}
