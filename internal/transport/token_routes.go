package transport

import (
	"net/http"
	"time"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/model"
)

type tokenInfo struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	TotalSupply string `json:"totalSupply"`
	MaxSupply   string `json:"maxSupply"`
}

type amountRequest struct {
	To      string `json:"to,omitempty"`
	From    string `json:"from,omitempty"`
	Spender string `json:"spender,omitempty"`
	Amount  string `json:"amount"`
}

func (s *Server) tokenRoutes() []route {
	return []route{
		{http.MethodGet, "/v1/token", s.getToken},
		{http.MethodGet, "/v1/token/balances/{address}", s.getBalance},
		{http.MethodGet, "/v1/token/allowances/{owner}/{spender}", s.getAllowance},
		{http.MethodPost, "/v1/token/transfer", s.transfer},
		{http.MethodPost, "/v1/token/approve", s.approve},
		{http.MethodPost, "/v1/token/transfer-from", s.transferFrom},
		{http.MethodPost, "/v1/token/mint", s.mint},
		{http.MethodPost, "/v1/token/burn", s.burn},
		{http.MethodPost, "/v1/token/minters/{address}", s.addMinter},
		{http.MethodDelete, "/v1/token/minters/{address}", s.removeMinter},
	}
}

func (s *Server) getToken(*http.Request, map[string]string) (any, error) {
	t := s.suite.Token
	return s.view(func(time.Time) (any, error) {
		return tokenInfo{
			Address:     t.Address().Hex(),
			Name:        t.Name(),
			Symbol:      t.Symbol(),
			Decimals:    t.Decimals(),
			TotalSupply: model.FormatAmount(t.TotalSupply()),
			MaxSupply:   model.FormatAmount(t.MaxSupply()),
		}, nil
	})
}

func (s *Server) getBalance(_ *http.Request, p map[string]string) (any, error) {
	addr, err := pathAddress(p, "address")
	if err != nil {
		return nil, err
	}
	return s.view(func(time.Time) (any, error) {
		return map[string]any{
			"balance": model.FormatAmount(s.suite.Token.BalanceOf(addr)),
			"canMint": s.suite.Token.CanMint(addr),
		}, nil
	})
}

func (s *Server) getAllowance(_ *http.Request, p map[string]string) (any, error) {
	owner, err := pathAddress(p, "owner")
	if err != nil {
		return nil, err
	}
	spender, err := pathAddress(p, "spender")
	if err != nil {
		return nil, err
	}
	return s.view(func(time.Time) (any, error) {
		return map[string]string{"allowance": model.FormatAmount(s.suite.Token.Allowance(owner, spender))}, nil
	})
}

func (s *Server) transfer(r *http.Request, _ map[string]string) (any, error) {
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
		return s.suite.Token.Transfer(msg, to, amount)
	})
}

func (s *Server) approve(r *http.Request, _ map[string]string) (any, error) {
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	spender, err := parseAddress(req.Spender)
	if err != nil {
		return nil, err
	}
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	return s.exec(r, func(msg chain.Msg) error {
		return s.suite.Token.Approve(msg, spender, amount)
	})
}

func (s *Server) transferFrom(r *http.Request, _ map[string]string) (any, error) {
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	from, err := parseAddress(req.From)
	if err != nil {
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
		return s.suite.Token.TransferFrom(msg, from, to, amount)
	})
}

func (s *Server) mint(r *http.Request, _ map[string]string) (any, error) {
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
		return s.suite.Token.Mint(msg, to, amount)
	})
}

func (s *Server) burn(r *http.Request, _ map[string]string) (any, error) {
	var req amountRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	return s.exec(r, func(msg chain.Msg) error {
		return s.suite.Token.Burn(msg, amount)
	})
}

func (s *Server) addMinter(r *http.Request, p map[string]string) (any, error) {
	minter, err := pathAddress(p, "address")
	if err != nil {
		return nil, err
	}
	return s.exec(r, func(msg chain.Msg) error {
		return s.suite.Token.AddMinter(msg, minter)
	})
}

func (s *Server) removeMinter(r *http.Request, p map[string]string) (any, error) {
	minter, err := pathAddress(p, "address")
	if err != nil {
		return nil, err
	}
	return s.exec(r, func(msg chain.Msg) error {
		return s.suite.Token.RemoveMinter(msg, minter)
	})
}
