package transport

import (
	"net/http"
	"time"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/model"
)

type faucetStats struct {
	Balance          string `json:"balance"`
	TotalDistributed string `json:"totalDistributed"`
	TotalClaims      uint64 `json:"totalClaims"`
	DripAmount       string `json:"dripAmount"`
	CooldownSeconds  int64  `json:"cooldownTime"`
	Paused           bool   `json:"paused"`
}

type faucetUser struct {
	LastClaim        time.Time `json:"lastClaim"`
	TotalReceived    string    `json:"totalReceived"`
	CanDrip          bool      `json:"canDrip"`
	RemainingSeconds int64     `json:"remainingCooldown"`
}

func (s *Server) faucetRoutes() []route {
	return []route{
		{http.MethodGet, "/v1/faucet/stats", s.getFaucetStats},
		{http.MethodGet, "/v1/faucet/users/{address}", s.getFaucetUser},
		{http.MethodPost, "/v1/faucet/drip", s.drip},
		{http.MethodPost, "/v1/faucet/fund", s.fundFaucet},
		{http.MethodPost, "/v1/faucet/config", s.configureFaucet},
		{http.MethodPost, "/v1/faucet/withdraw", s.withdrawFaucet},
		{http.MethodPost, "/v1/faucet/pause", s.pauseFaucet},
		{http.MethodPost, "/v1/faucet/unpause", s.unpauseFaucet},
	}
}

func (s *Server) getFaucetStats(*http.Request, map[string]string) (any, error) {
	return s.view(func(time.Time) (any, error) {
		st := s.suite.Faucet.Stats()
		return faucetStats{
			Balance:          model.FormatAmount(st.Balance),
			TotalDistributed: model.FormatAmount(st.TotalDistributed),
			TotalClaims:      st.TotalClaims,
			DripAmount:       model.FormatAmount(st.DripAmount),
			CooldownSeconds:  int64(st.Cooldown / time.Second),
			Paused:           s.suite.Faucet.Paused(),
		}, nil
	})
}

func (s *Server) getFaucetUser(_ *http.Request, p map[string]string) (any, error) {
	addr, err := pathAddress(p, "address")
	if err != nil {
		return nil, err
	}
	return s.view(func(now time.Time) (any, error) {
		u := s.suite.Faucet.UserStats(addr, now)
		return faucetUser{
			LastClaim:        u.LastClaim,
			TotalReceived:    model.FormatAmount(u.TotalReceived),
			CanDrip:          u.CanDrip,
			RemainingSeconds: int64(u.Remaining / time.Second),
		}, nil
	})
}

func (s *Server) drip(r *http.Request, _ map[string]string) (any, error) {
	return s.exec(r, s.suite.Faucet.Drip)
}

func (s *Server) fundFaucet(r *http.Request, _ map[string]string) (any, error) {
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	return s.exec(r, func(msg chain.Msg) error {
		return s.suite.Faucet.Fund(msg, amount)
	})
}

// configureFaucet sets either the drip amount or the cooldown.
func (s *Server) configureFaucet(r *http.Request, _ map[string]string) (any, error) {
	var req struct {
		DripAmount      *string `json:"dripAmount,omitempty"`
		CooldownSeconds *int64  `json:"cooldownTime,omitempty"`
	}
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	switch {
	case req.DripAmount != nil && req.CooldownSeconds == nil:
		amount, err := model.ParseAmount(*req.DripAmount)
		if err != nil {
			return nil, err
		}
		return s.exec(r, func(msg chain.Msg) error {
			return s.suite.Faucet.SetDripAmount(msg, amount)
		})
	case req.CooldownSeconds != nil && req.DripAmount == nil:
		cooldown := time.Duration(*req.CooldownSeconds) * time.Second
		return s.exec(r, func(msg chain.Msg) error {
			return s.suite.Faucet.SetCooldown(msg, cooldown)
		})
	default:
		return nil, badRequest("exactly one of dripAmount and cooldownTime must be given")
	}
}

func (s *Server) withdrawFaucet(r *http.Request, _ map[string]string) (any, error) {
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	to, err := parseAddress(req.To)
	if err != nil {
		return nil, err
	}
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	return s.exec(r, func(msg chain.Msg) error {
		return s.suite.Faucet.WithdrawTokens(msg, to, amount)
	})
}

func (s *Server) pauseFaucet(r *http.Request, _ map[string]string) (any, error) {
	return s.exec(r, s.suite.Faucet.Pause)
}

func (s *Server) unpauseFaucet(r *http.Request, _ map[string]string) (any, error) {
	return s.exec(r, s.suite.Faucet.Unpause)
}
