package transport

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/goodnatureofminers/token42-backend/internal/access"
	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/model"
	"github.com/goodnatureofminers/token42-backend/internal/repository/deployment"
	"github.com/goodnatureofminers/token42-backend/pkg/safe"
)

type logView struct {
	ID        uint64    `json:"id"`
	Type      string    `json:"eventType"`
	Actor     string    `json:"actor"`
	Target    string    `json:"targetContract"`
	Timestamp time.Time `json:"timestamp"`
	DataHash  string    `json:"dataHash"`
	Checksum  string    `json:"checksum"`
}

func toLogView(e model.LogEntry) logView {
	return logView{
		ID:        e.ID,
		Type:      e.Type.String(),
		Actor:     e.Actor.Hex(),
		Target:    e.Target.Hex(),
		Timestamp: e.Timestamp,
		DataHash:  e.DataHash.Hex(),
		Checksum:  e.Checksum.Hex(),
	}
}

func (s *Server) auditRoutes() []route {
	return []route{
		{http.MethodGet, "/v1/audit/stats", s.getAuditStats},
		{http.MethodGet, "/v1/audit/archive/stats", s.getArchiveStats},
		{http.MethodGet, "/v1/audit/logs", s.listLogs},
		{http.MethodGet, "/v1/audit/logs/{id}", s.getLog},
		{http.MethodGet, "/v1/audit/logs/{id}/integrity", s.verifyLog},
		{http.MethodPost, "/v1/audit/logs/{id}/verify", s.verifyLogData},
		{http.MethodGet, "/v1/audit/actors/{address}", s.getActorStats},
		{http.MethodPost, "/v1/audit/logs", s.logEvent},
		{http.MethodPost, "/v1/audit/loggers/{address}", s.addLogger},
		{http.MethodDelete, "/v1/audit/loggers/{address}", s.removeLogger},
		{http.MethodPost, "/v1/audit/roles/{role}/{address}", s.grantAuditRole},
		{http.MethodDelete, "/v1/audit/roles/{role}/{address}", s.revokeAuditRole},
		{http.MethodPost, "/v1/audit/pause", s.pauseAudit},
		{http.MethodPost, "/v1/audit/unpause", s.unpauseAudit},
	}
}

func (s *Server) getAuditStats(r *http.Request, _ map[string]string) (any, error) {
	return s.view(func(time.Time) (any, error) {
		counts := make(map[string]uint64)
		for _, typ := range model.EventTypes() {
			if n := s.suite.Audit.EventTypeCount(typ); n > 0 {
				counts[typ.String()] = n
			}
		}
		return map[string]any{
			"global":  s.suite.Audit.GlobalStats(),
			"byType":  counts,
			"paused":  s.suite.Audit.Paused(),
			"address": s.suite.Audit.Address().Hex(),
		}, nil
	})
}

// getArchiveStats counts the exported entries of this network by type.
func (s *Server) getArchiveStats(r *http.Request, _ map[string]string) (any, error) {
	if s.archive == nil {
		return nil, model.Revert(model.ErrNotFound, "audit export disabled")
	}
	network := deployment.NetworkKey(s.cfg.ChainID, s.cfg.Network)
	counts, err := s.archive.CountByType(r.Context(), network)
	if err != nil {
		return nil, fmt.Errorf("count exported entries: %w", err)
	}
	byType := make(map[string]uint64, len(counts))
	var total uint64
	for typ, n := range counts {
		byType[typ.String()] = n
		total += n
	}
	return map[string]any{"network": network, "total": total, "byType": byType}, nil
}

// listLogs returns entries matching at most one of the actor, type, contract or from/to
// filters; without a filter it pages the whole log.
func (s *Server) listLogs(r *http.Request, _ map[string]string) (any, error) {
	offset, limit, err := pageOf(r)
	if err != nil {
		return nil, err
	}
	q := r.URL.Query()
	a := s.suite.Audit

	var ids func(now time.Time) ([]uint64, error)
	switch {
	case q.Has("actor"):
		actor, err := parseAddress(q.Get("actor"))
		if err != nil {
			return nil, err
		}
		ids = func(time.Time) ([]uint64, error) { return a.GetLogsByActor(actor, offset, limit), nil }
	case q.Has("type"):
		typ, ok := model.ParseEventType(q.Get("type"))
		if !ok {
			return nil, badRequest("unknown event type " + q.Get("type"))
		}
		ids = func(time.Time) ([]uint64, error) { return a.GetLogsByType(typ, offset, limit), nil }
	case q.Has("contract"):
		contract, err := parseAddress(q.Get("contract"))
		if err != nil {
			return nil, err
		}
		ids = func(time.Time) ([]uint64, error) { return a.GetLogsByContract(contract, offset, limit), nil }
	case q.Has("from") || q.Has("to"):
		from, err := unixParam(q.Get("from"))
		if err != nil {
			return nil, err
		}
		to, err := unixParam(q.Get("to"))
		if err != nil {
			return nil, err
		}
		ids = func(now time.Time) ([]uint64, error) { return a.GetLogsByTimeRange(now, from, to, offset, limit) }
	default:
		n, err := queryInt(r, "limit", defaultPageSize)
		if err != nil {
			return nil, err
		}
		return s.view(func(time.Time) (any, error) {
			entries := a.Entries(offset, min(n, maxPageSize))
			out := make([]logView, 0, len(entries))
			for _, e := range entries {
				out = append(out, toLogView(e))
			}
			return out, nil
		})
	}

	return s.view(func(now time.Time) (any, error) {
		found, err := ids(now)
		if err != nil {
			return nil, err
		}
		return map[string]any{"ids": found}, nil
	})
}

func unixParam(v string) (time.Time, error) {
	sec, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, badRequest("malformed unix time " + strconv.Quote(v))
	}
	// Entry checksums pack timestamps as unsigned seconds.
	if _, err := safe.Uint64(sec); err != nil {
		return time.Time{}, badRequest("unix time before the epoch: " + err.Error())
	}
	return time.Unix(sec, 0), nil
}

func (s *Server) getLog(_ *http.Request, p map[string]string) (any, error) {
	id, err := pathUint(p, "id")
	if err != nil {
		return nil, err
	}
	return s.view(func(time.Time) (any, error) {
		e, err := s.suite.Audit.GetLog(id)
		if err != nil {
			return nil, err
		}
		return toLogView(e), nil
	})
}

func (s *Server) verifyLog(_ *http.Request, p map[string]string) (any, error) {
	id, err := pathUint(p, "id")
	if err != nil {
		return nil, err
	}
	return s.view(func(time.Time) (any, error) {
		ok, err := s.suite.Audit.VerifyLogIntegrity(id)
		if err != nil {
			return nil, err
		}
		return map[string]bool{"valid": ok}, nil
	})
}

func (s *Server) verifyLogData(r *http.Request, p map[string]string) (any, error) {
	id, err := pathUint(p, "id")
	if err != nil {
		return nil, err
	}
	var req struct {
		Data string `json:"data"`
	}
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	return s.view(func(time.Time) (any, error) {
		ok, err := s.suite.Audit.VerifyLogData(id, []byte(req.Data))
		if err != nil {
			return nil, err
		}
		return map[string]bool{"valid": ok}, nil
	})
}

func (s *Server) getActorStats(_ *http.Request, p map[string]string) (any, error) {
	actor, err := pathAddress(p, "address")
	if err != nil {
		return nil, err
	}
	return s.view(func(time.Time) (any, error) {
		return s.suite.Audit.ActorStats(actor)
	})
}

func (s *Server) logEvent(r *http.Request, _ map[string]string) (any, error) {
	var req struct {
		Type   string `json:"eventType"`
		Actor  string `json:"actor"`
		Target string `json:"targetContract"`
		Data   string `json:"data"`
	}
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	typ, ok := model.ParseEventType(req.Type)
	if !ok {
		return nil, badRequest("unknown event type " + req.Type)
	}
	actor, err := parseAddress(req.Actor)
	if err != nil {
		return nil, err
	}
	target, err := parseAddress(req.Target)
	if err != nil {
		return nil, err
	}
	var id uint64
	out, err := s.exec(r, func(msg chain.Msg) error {
		var err error
		id, err = s.suite.Audit.LogEvent(msg, typ, actor, target, []byte(req.Data))
		return err
	})
	if err != nil {
		return nil, err
	}
	res := out.(txResult)
	res.ID = &id
	return res, nil
}

func (s *Server) addLogger(r *http.Request, p map[string]string) (any, error) {
	logger, err := pathAddress(p, "address")
	if err != nil {
		return nil, err
	}
	return s.exec(r, func(msg chain.Msg) error {
		return s.suite.Audit.AddLogger(msg, logger)
	})
}

func (s *Server) removeLogger(r *http.Request, p map[string]string) (any, error) {
	logger, err := pathAddress(p, "address")
	if err != nil {
		return nil, err
	}
	return s.exec(r, func(msg chain.Msg) error {
		return s.suite.Audit.RemoveLogger(msg, logger)
	})
}

func (s *Server) grantAuditRole(r *http.Request, p map[string]string) (any, error) {
	account, err := pathAddress(p, "address")
	if err != nil {
		return nil, err
	}
	role := access.Role(p["role"])
	return s.exec(r, func(msg chain.Msg) error {
		return s.suite.Audit.GrantRole(msg, role, account)
	})
}

func (s *Server) revokeAuditRole(r *http.Request, p map[string]string) (any, error) {
	account, err := pathAddress(p, "address")
	if err != nil {
		return nil, err
	}
	role := access.Role(p["role"])
	return s.exec(r, func(msg chain.Msg) error {
		return s.suite.Audit.RevokeRole(msg, role, account)
	})
}

func (s *Server) pauseAudit(r *http.Request, _ map[string]string) (any, error) {
	return s.exec(r, s.suite.Audit.Pause)
}

func (s *Server) unpauseAudit(r *http.Request, _ map[string]string) (any, error) {
	return s.exec(r, s.suite.Audit.Unpause)
}
