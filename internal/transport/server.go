// Package transport exposes the simulated contracts over REST and serves gRPC health.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/genesis"
	"github.com/goodnatureofminers/token42-backend/internal/model"
	"github.com/goodnatureofminers/token42-backend/pkg/safe"
)

const (
	// SenderHeader carries the address a request is signed as.
	SenderHeader = "X-Sender"
	// ValueHeader carries native value, in decimal units, attached to a request.
	ValueHeader = "X-Value"

	defaultPageSize = 50
	maxPageSize     = 1000
)

// Config tunes the REST server.
type Config struct {
	ChainID uint64
	Network string
	// SearchWorkers and SearchSpan bound the server-side nonce search.
	SearchWorkers int
	SearchSpan    uint64
	// Dev enables clock advancing and native credits.
	Dev bool
}

// Server serves the REST API.
type Server struct {
	suite   *genesis.Suite
	chain   *chain.Chain
	store   DeploymentStore
	archive AuditArchive
	events  *EventBuffer
	clock   Advancer
	metrics Metrics
	cfg     Config
	logger  *zap.Logger
}

// NewServer builds the REST API over a deployed suite. store, archive and clock may be nil.
func NewServer(
	suite *genesis.Suite,
	store DeploymentStore,
	archive AuditArchive,
	events *EventBuffer,
	clock Advancer,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
) (*Server, error) {
	if suite == nil || events == nil || metrics == nil {
		return nil, errors.New("transport: suite, events and metrics are required")
	}
	if cfg.SearchWorkers <= 0 {
		cfg.SearchWorkers = 4
	}
	if cfg.SearchSpan == 0 {
		cfg.SearchSpan = 1 << 24
	}
	return &Server{
		suite:   suite,
		chain:   suite.Chain,
		store:   store,
		archive: archive,
		events:  events,
		clock:   clock,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger.Named("rest"),
	}, nil
}

// handlerFunc returns the JSON body of a successful response.
type handlerFunc func(r *http.Request, params map[string]string) (any, error)

type route struct {
	method  string
	pattern string
	h       handlerFunc
}

// Handler returns the REST router with CORS and /metrics mounted.
func (s *Server) Handler() (http.Handler, error) {
	gw := gwruntime.NewServeMux()
	var routes []route
	routes = append(routes, s.chainRoutes()...)
	routes = append(routes, s.tokenRoutes()...)
	routes = append(routes, s.miningRoutes()...)
	routes = append(routes, s.faucetRoutes()...)
	routes = append(routes, s.multisigRoutes()...)
	routes = append(routes, s.auditRoutes()...)
	for _, rt := range routes {
		if err := gw.HandlePath(rt.method, rt.pattern, s.wrap(rt)); err != nil {
			return nil, fmt.Errorf("register %s %s: %w", rt.method, rt.pattern, err)
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", SenderHeader, ValueHeader},
	})
	return c.Handler(mux), nil
}

func (s *Server) wrap(rt route) gwruntime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		started := time.Now()
		code := http.StatusOK
		body, err := rt.h(r, params)
		if err != nil {
			code = writeError(w, err)
			if code == http.StatusInternalServerError {
				s.logger.Error("request failed",
					zap.String("method", rt.method),
					zap.String("route", rt.pattern),
					zap.Error(err))
			}
		} else {
			writeJSON(w, code, body)
		}
		s.metrics.ObserveRequest(rt.method, rt.pattern, code, started)
	}
}

// view runs fn against a consistent snapshot of contract state.
func (s *Server) view(fn func(now time.Time) (any, error)) (any, error) {
	var out any
	err := s.chain.View(func(now time.Time) error {
		var err error
		out, err = fn(now)
		return err
	})
	return out, err
}

// exec runs fn as a transaction signed by the request's sender.
func (s *Server) exec(r *http.Request, fn func(chain.Msg) error) (any, error) {
	sender, err := senderOf(r)
	if err != nil {
		return nil, err
	}
	value, err := valueOf(r)
	if err != nil {
		return nil, err
	}
	if err := s.chain.Exec(sender, value, fn); err != nil {
		return nil, err
	}
	return txResult{Height: s.chain.Height()}, nil
}

type txResult struct {
	Height uint64  `json:"height"`
	ID     *uint64 `json:"id,omitempty"`
}

func senderOf(r *http.Request) (common.Address, error) {
	h := r.Header.Get(SenderHeader)
	if h == "" {
		return common.Address{}, model.Revert(model.ErrUnauthorized, "missing "+SenderHeader+" header")
	}
	return parseAddress(h)
}

func valueOf(r *http.Request) (*big.Int, error) {
	h := r.Header.Get(ValueHeader)
	if h == "" {
		return nil, nil
	}
	return model.ParseAmount(h)
}

func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return badRequest("missing request body")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return badRequest("malformed request body: " + err.Error())
	}
	return nil
}

func pathAddress(params map[string]string, key string) (common.Address, error) {
	return parseAddress(params[key])
}

func pathUint(params map[string]string, key string) (uint64, error) {
	v, err := strconv.ParseUint(params[key], 10, 64)
	if err != nil {
		return 0, badRequest("malformed " + key)
	}
	return v, nil
}

func queryUint(r *http.Request, key string, def uint64) (uint64, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, badRequest("malformed " + key)
	}
	return v, nil
}

// pageOf reads offset and limit, capping limit at maxPageSize.
func pageOf(r *http.Request) (offset, limit uint64, err error) {
	if offset, err = queryUint(r, "offset", 0); err != nil {
		return 0, 0, err
	}
	if limit, err = queryUint(r, "limit", defaultPageSize); err != nil {
		return 0, 0, err
	}
	return offset, min(limit, maxPageSize), nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v, err := queryUint(r, key, uint64(def))
	if err != nil {
		return 0, err
	}
	n, err := safe.Int(v)
	if err != nil {
		return 0, badRequest(err.Error())
	}
	return n, nil
}
