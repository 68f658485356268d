package audit

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/goodnatureofminers/token42-backend/internal/access"
	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/model"
)

type (
	AddLoggerCall    struct{ Account common.Address }
	RemoveLoggerCall struct{ Account common.Address }
	GrantRoleCall    struct {
		Role    access.Role
		Account common.Address
	}
	RevokeRoleCall struct {
		Role    access.Role
		Account common.Address
	}
	LogEventCall struct {
		Type   model.EventType
		Actor  common.Address
		Target common.Address
		Data   []byte
	}
	PauseCall   struct{}
	UnpauseCall struct{}
)

func (AddLoggerCall) Method() string    { return "addLogger" }
func (RemoveLoggerCall) Method() string { return "removeLogger" }
func (GrantRoleCall) Method() string    { return "grantRole" }
func (RevokeRoleCall) Method() string   { return "revokeRole" }
func (LogEventCall) Method() string     { return "logEvent" }
func (PauseCall) Method() string        { return "pause" }
func (UnpauseCall) Method() string      { return "unpause" }

// Invoke executes a dispatched call.
func (l *Logger) Invoke(msg chain.Msg, call chain.Call) error {
	switch c := call.(type) {
	case AddLoggerCall:
		return l.AddLogger(msg, c.Account)
	case RemoveLoggerCall:
		return l.RemoveLogger(msg, c.Account)
	case GrantRoleCall:
		return l.GrantRole(msg, c.Role, c.Account)
	case RevokeRoleCall:
		return l.RevokeRole(msg, c.Role, c.Account)
	case LogEventCall:
		_, err := l.LogEvent(msg, c.Type, c.Actor, c.Target, c.Data)
		return err
	case PauseCall:
		return l.Pause(msg)
	case UnpauseCall:
		return l.Unpause(msg)
	default:
		return chain.ErrUnsupportedCall
	}
}
