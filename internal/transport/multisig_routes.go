package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/model"
)

type walletView struct {
	Address          string   `json:"address"`
	Owners           []string `json:"owners"`
	Required         uint64   `json:"required"`
	Balance          string   `json:"balance"`
	TransactionCount uint64   `json:"transactionCount"`
	Pending          []uint64 `json:"pending"`
}

type walletTxView struct {
	Index         uint64    `json:"index"`
	To            string    `json:"to"`
	Value         string    `json:"value"`
	Method        string    `json:"method,omitempty"`
	Executed      bool      `json:"executed"`
	Confirmations uint64    `json:"confirmations"`
	ConfirmedBy   []string  `json:"confirmedBy"`
	CanExecute    bool      `json:"canExecute"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

type submitRequest struct {
	To     string          `json:"to"`
	Value  string          `json:"value,omitempty"`
	Method string          `json:"method,omitempty"`
	Args   json.RawMessage `json:"args,omitempty"`
}

func (s *Server) multisigRoutes() []route {
	return []route{
		{http.MethodGet, "/v1/multisig", s.getWallet},
		{http.MethodGet, "/v1/multisig/transactions/{index}", s.getWalletTx},
		{http.MethodPost, "/v1/multisig/deposit", s.deposit},
		{http.MethodPost, "/v1/multisig/transactions", s.submitTx},
		{http.MethodPost, "/v1/multisig/transactions/{index}/confirm", s.confirmTx},
		{http.MethodPost, "/v1/multisig/transactions/{index}/revoke", s.revokeTx},
		{http.MethodPost, "/v1/multisig/transactions/{index}/execute", s.executeTx},
	}
}

func hexes[T interface{ Hex() string }](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = v.Hex()
	}
	return out
}

func (s *Server) getWallet(*http.Request, map[string]string) (any, error) {
	w := s.suite.MultiSig
	return s.view(func(time.Time) (any, error) {
		return walletView{
			Address:          w.Address().Hex(),
			Owners:           hexes(w.Owners()),
			Required:         w.Required(),
			Balance:          model.FormatAmount(w.Balance()),
			TransactionCount: w.TransactionCount(),
			Pending:          w.PendingTransactions(),
		}, nil
	})
}

func (s *Server) getWalletTx(_ *http.Request, p map[string]string) (any, error) {
	idx, err := pathUint(p, "index")
	if err != nil {
		return nil, err
	}
	w := s.suite.MultiSig
	return s.view(func(time.Time) (any, error) {
		tx, err := w.Transaction(idx)
		if err != nil {
			return nil, err
		}
		confirmers, err := w.Confirmations(idx)
		if err != nil {
			return nil, err
		}
		v := walletTxView{
			Index:         tx.Index,
			To:            tx.To.Hex(),
			Value:         model.FormatAmount(tx.Value),
			Executed:      tx.Executed,
			Confirmations: tx.Confirmations,
			ConfirmedBy:   hexes(confirmers),
			CanExecute:    w.CanExecute(idx),
			SubmittedAt:   tx.SubmittedAt,
		}
		if tx.Call != nil {
			v.Method = tx.Call.Method()
		}
		return v, nil
	})
}

func (s *Server) deposit(r *http.Request, _ map[string]string) (any, error) {
	return s.exec(r, s.suite.MultiSig.Deposit)
}

func (s *Server) submitTx(r *http.Request, _ map[string]string) (any, error) {
	var req submitRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	to, err := parseAddress(req.To)
	if err != nil {
		return nil, err
	}
	value, err := parseAmountOrZero(req.Value)
	if err != nil {
		return nil, err
	}
	call, err := s.decodeCall(to, req.Method, req.Args)
	if err != nil {
		return nil, err
	}
	var idx uint64
	out, err := s.exec(r, func(msg chain.Msg) error {
		var err error
		idx, err = s.suite.MultiSig.SubmitTransaction(msg, to, value, call)
		return err
	})
	if err != nil {
		return nil, err
	}
	res := out.(txResult)
	res.ID = &idx
	return res, nil
}

func (s *Server) walletTx(r *http.Request, p map[string]string, fn func(chain.Msg, uint64) error) (any, error) {
	idx, err := pathUint(p, "index")
	if err != nil {
		return nil, err
	}
	return s.exec(r, func(msg chain.Msg) error {
		return fn(msg, idx)
	})
}

func (s *Server) confirmTx(r *http.Request, p map[string]string) (any, error) {
	return s.walletTx(r, p, s.suite.MultiSig.ConfirmTransaction)
}

func (s *Server) revokeTx(r *http.Request, p map[string]string) (any, error) {
	return s.walletTx(r, p, s.suite.MultiSig.RevokeConfirmation)
}

func (s *Server) executeTx(r *http.Request, p map[string]string) (any, error) {
	return s.walletTx(r, p, s.suite.MultiSig.ExecuteTransaction)
}
