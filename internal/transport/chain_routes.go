package transport

import (
	"net/http"
	"time"

	"github.com/goodnatureofminers/token42-backend/internal/model"
	"github.com/goodnatureofminers/token42-backend/internal/repository/deployment"
)

var errDevOnly = model.Revert(model.ErrInvalidState, "only available in dev mode")

type chainInfo struct {
	ChainID uint64    `json:"chainId"`
	Network string    `json:"network"`
	Height  uint64    `json:"height"`
	Time    time.Time `json:"time"`
	Events  uint64    `json:"events"`
}

func (s *Server) chainRoutes() []route {
	return []route{
		{http.MethodGet, "/v1/chain", s.getChain},
		{http.MethodGet, "/v1/chain/balances/{address}", s.getNativeBalance},
		{http.MethodPost, "/v1/chain/credit", s.credit},
		{http.MethodPost, "/v1/clock/advance", s.advanceClock},
		{http.MethodGet, "/v1/events", s.getEvents},
		{http.MethodGet, "/v1/deployments", s.getDeployments},
		{http.MethodGet, "/v1/deployments/latest", s.getLatestDeployment},
		{http.MethodGet, "/v1/deployments/history", s.getDeploymentHistory},
		{http.MethodGet, "/v1/deployments/networks", s.getDeploymentNetworks},
	}
}

func (s *Server) getChain(*http.Request, map[string]string) (any, error) {
	return chainInfo{
		ChainID: s.cfg.ChainID,
		Network: s.cfg.Network,
		Height:  s.chain.Height(),
		Time:    s.chain.Now(),
		Events:  s.events.Total(),
	}, nil
}

func (s *Server) getNativeBalance(_ *http.Request, p map[string]string) (any, error) {
	addr, err := pathAddress(p, "address")
	if err != nil {
		return nil, err
	}
	return s.view(func(time.Time) (any, error) {
		return map[string]string{"balance": model.FormatAmount(s.chain.BalanceAt(addr))}, nil
	})
}

func (s *Server) credit(r *http.Request, _ map[string]string) (any, error) {
	if !s.cfg.Dev {
		return nil, errDevOnly
	}
	var req struct {
		Address string `json:"address"`
		Amount  string `json:"amount"`
	}
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	addr, err := parseAddress(req.Address)
	if err != nil {
		return nil, err
	}
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	s.chain.Credit(addr, amount)
	return s.getNativeBalance(r, map[string]string{"address": req.Address})
}

func (s *Server) advanceClock(r *http.Request, _ map[string]string) (any, error) {
	if !s.cfg.Dev || s.clock == nil {
		return nil, errDevOnly
	}
	var req struct {
		Seconds int64 `json:"seconds"`
	}
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if req.Seconds <= 0 {
		return nil, badRequest("seconds must be positive")
	}
	s.clock.Add(time.Duration(req.Seconds) * time.Second)
	return map[string]time.Time{"time": s.chain.Now()}, nil
}

func (s *Server) getEvents(r *http.Request, _ map[string]string) (any, error) {
	limit, err := queryInt(r, "limit", defaultPageSize)
	if err != nil {
		return nil, err
	}
	return s.events.Recent(limit), nil
}

func (s *Server) getDeployments(*http.Request, map[string]string) (any, error) {
	if s.store == nil {
		return deployment.File{Networks: map[string][]model.Deployment{}}, nil
	}
	return s.store.All()
}

func (s *Server) getLatestDeployment(*http.Request, map[string]string) (any, error) {
	if s.store == nil {
		return s.suite.Deployment(), nil
	}
	d, ok, err := s.store.Latest(s.cfg.ChainID, s.cfg.Network)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.Revert(model.ErrNotFound, "no deployment recorded for "+s.cfg.Network)
	}
	return d, nil
}

var errNoRegistry = model.Revert(model.ErrNotFound, "deployment registry disabled")

func (s *Server) getDeploymentHistory(*http.Request, map[string]string) (any, error) {
	if s.store == nil {
		return nil, errNoRegistry
	}
	return s.store.History(s.cfg.ChainID, s.cfg.Network)
}

func (s *Server) getDeploymentNetworks(*http.Request, map[string]string) (any, error) {
	if s.store == nil {
		return nil, errNoRegistry
	}
	return s.store.Networks()
}
