package transport

import (
	"errors"
	"math/big"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/token42-backend/internal/chain"
	"github.com/goodnatureofminers/token42-backend/internal/mining"
	"github.com/goodnatureofminers/token42-backend/internal/model"
	"github.com/goodnatureofminers/token42-backend/pkg/safe"
)

// searchAttempts bounds how often a found nonce is re-searched because the block or the
// block time moved before it was submitted.
const searchAttempts = 3

type minerView struct {
	Power         uint8     `json:"power"`
	Active        bool      `json:"active"`
	StartTime     time.Time `json:"startTime"`
	LastClaim     time.Time `json:"lastClaim"`
	LastBlockTime time.Time `json:"lastBlockTime"`
	BlocksFound   uint64    `json:"blocksFound"`
	TotalMined    string    `json:"totalMined"`
	PendingReward string    `json:"pendingReward"`
}

type miningStats struct {
	CurrentBlock     uint64 `json:"currentBlock"`
	TotalMined       string `json:"totalMined"`
	Difficulty       uint64 `json:"difficulty"`
	ActiveMiners     uint64 `json:"activeMiners"`
	CurrentReward    string `json:"currentReward"`
	NextRetarget     uint64 `json:"nextDifficultyAdjustment"`
	BaseReward       string `json:"baseReward"`
	BlockTimeSeconds int64  `json:"blockTime"`
	HalvingInterval  uint64 `json:"halvingInterval"`
	Paused           bool   `json:"paused"`
}

type blockView struct {
	Number     uint64    `json:"number"`
	Miner      string    `json:"miner"`
	Timestamp  time.Time `json:"timestamp"`
	Reward     string    `json:"reward"`
	Difficulty uint64    `json:"difficulty"`
	Bits       uint32    `json:"bits"`
	Nonce      string    `json:"nonce"`
	Hash       string    `json:"hash"`
}

type puzzleView struct {
	Block      uint64    `json:"block"`
	Miner      string    `json:"miner"`
	Timestamp  time.Time `json:"timestamp"`
	Difficulty uint64    `json:"difficulty"`
	Target     string    `json:"target"`
}

func toBlockView(b mining.Block) blockView {
	return blockView{
		Number:     b.Number,
		Miner:      b.Miner.Hex(),
		Timestamp:  b.Timestamp,
		Reward:     model.FormatAmount(b.Reward),
		Difficulty: b.Difficulty,
		Bits:       b.Bits,
		Nonce:      b.Nonce.String(),
		Hash:       b.Hash.Hex(),
	}
}

func (s *Server) miningRoutes() []route {
	return []route{
		{http.MethodGet, "/v1/mining/stats", s.getMiningStats},
		{http.MethodGet, "/v1/mining/miners/{address}", s.getMiner},
		{http.MethodGet, "/v1/mining/puzzle/{address}", s.getPuzzle},
		{http.MethodGet, "/v1/mining/blocks", s.getBlocks},
		{http.MethodGet, "/v1/mining/blocks/{number}", s.getBlock},
		{http.MethodPost, "/v1/mining/start", s.startMining},
		{http.MethodPost, "/v1/mining/stop", s.stopMining},
		{http.MethodPost, "/v1/mining/mine", s.mineBlock},
		{http.MethodPost, "/v1/mining/search", s.searchAndMine},
		{http.MethodPost, "/v1/mining/bonus", s.claimBonus},
		{http.MethodPost, "/v1/mining/parameters", s.setMiningParameters},
		{http.MethodPost, "/v1/mining/pause", s.pauseMining},
		{http.MethodPost, "/v1/mining/unpause", s.unpauseMining},
		{http.MethodPost, "/v1/mining/owner", s.transferMiningOwnership},
	}
}

func (s *Server) getMiningStats(*http.Request, map[string]string) (any, error) {
	e := s.suite.Mining
	return s.view(func(time.Time) (any, error) {
		g := e.GlobalStats()
		return miningStats{
			CurrentBlock:     g.CurrentBlock,
			TotalMined:       model.FormatAmount(g.TotalMined),
			Difficulty:       g.Difficulty,
			ActiveMiners:     g.ActiveMiners,
			CurrentReward:    model.FormatAmount(g.CurrentReward),
			NextRetarget:     g.NextRetarget,
			BaseReward:       model.FormatAmount(e.BaseReward()),
			BlockTimeSeconds: int64(e.BlockTime() / time.Second),
			HalvingInterval:  e.HalvingInterval(),
			Paused:           e.Paused(),
		}, nil
	})
}

func (s *Server) getMiner(_ *http.Request, p map[string]string) (any, error) {
	addr, err := pathAddress(p, "address")
	if err != nil {
		return nil, err
	}
	return s.view(func(time.Time) (any, error) {
		m := s.suite.Mining.MinerStats(addr)
		return minerView{
			Power:         m.Power,
			Active:        m.Active,
			StartTime:     m.StartTime,
			LastClaim:     m.LastClaim,
			LastBlockTime: m.LastBlockTime,
			BlocksFound:   m.BlocksFound,
			TotalMined:    model.FormatAmount(m.TotalMined),
			PendingReward: model.FormatAmount(s.suite.Mining.CalculateReward(addr)),
		}, nil
	})
}

func (s *Server) getPuzzle(_ *http.Request, p map[string]string) (any, error) {
	addr, err := pathAddress(p, "address")
	if err != nil {
		return nil, err
	}
	return s.view(func(now time.Time) (any, error) {
		pz := s.suite.Mining.Puzzle(addr, now)
		return puzzleView{
			Block:      pz.Block,
			Miner:      pz.Miner.Hex(),
			Timestamp:  pz.Timestamp,
			Difficulty: pz.Difficulty,
			Target:     mining.Target(pz.Difficulty).Text(16),
		}, nil
	})
}

func (s *Server) getBlocks(r *http.Request, _ map[string]string) (any, error) {
	offset, limit, err := pageOf(r)
	if err != nil {
		return nil, err
	}
	return s.view(func(time.Time) (any, error) {
		blocks := s.suite.Mining.Blocks(offset, limit)
		out := make([]blockView, 0, len(blocks))
		for _, b := range blocks {
			out = append(out, toBlockView(b))
		}
		return out, nil
	})
}

func (s *Server) getBlock(_ *http.Request, p map[string]string) (any, error) {
	number, err := pathUint(p, "number")
	if err != nil {
		return nil, err
	}
	return s.view(func(time.Time) (any, error) {
		b, err := s.suite.Mining.Block(number)
		if err != nil {
			return nil, err
		}
		return toBlockView(b), nil
	})
}

func (s *Server) startMining(r *http.Request, _ map[string]string) (any, error) {
	var req struct {
		Power int `json:"power"`
	}
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	power, err := safe.Uint8(req.Power)
	if err != nil {
		return nil, mining.ErrInvalidPower
	}
	return s.exec(r, func(msg chain.Msg) error {
		return s.suite.Mining.StartMining(msg, power)
	})
}

func (s *Server) stopMining(r *http.Request, _ map[string]string) (any, error) {
	return s.exec(r, s.suite.Mining.StopMining)
}

func (s *Server) claimBonus(r *http.Request, _ map[string]string) (any, error) {
	return s.exec(r, s.suite.Mining.ClaimDailyBonus)
}

func (s *Server) mineBlock(r *http.Request, _ map[string]string) (any, error) {
	var req struct {
		Nonce string `json:"nonce"`
	}
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	nonce, ok := new(big.Int).SetString(req.Nonce, 0)
	if !ok {
		return nil, mining.ErrInvalidNonce
	}
	return s.exec(r, func(msg chain.Msg) error {
		return s.suite.Mining.MineBlock(msg, nonce)
	})
}

// searchAndMine finds a nonce for the sender on the server's workers and submits it.
func (s *Server) searchAndMine(r *http.Request, _ map[string]string) (out any, err error) {
	started := time.Now()
	defer func() { s.metrics.ObserveSearch(err, started) }()

	sender, err := senderOf(r)
	if err != nil {
		return nil, err
	}
	for attempt := 1; ; attempt++ {
		var puzzle mining.Puzzle
		if _, err = s.view(func(now time.Time) (any, error) {
			puzzle = s.suite.Mining.Puzzle(sender, now)
			return nil, nil
		}); err != nil {
			return nil, err
		}

		nonce, _, err := mining.Search(r.Context(), puzzle, s.cfg.SearchWorkers, 0, s.cfg.SearchSpan)
		if errors.Is(err, mining.ErrNonceNotFound) {
			return nil, model.Revert(model.ErrNotFound, "no valid nonce within the search span")
		}
		if err != nil {
			return nil, err
		}

		out, err = s.exec(r, func(msg chain.Msg) error {
			return s.suite.Mining.MineBlock(msg, nonce)
		})
		if !errors.Is(err, mining.ErrInvalidPoW) || attempt == searchAttempts {
			if err == nil {
				s.logger.Debug("nonce found",
					zap.Stringer("miner", sender),
					zap.Uint64("block", puzzle.Block),
					zap.Stringer("nonce", nonce))
			}
			return out, err
		}
	}
}

type miningParameters struct {
	BaseReward       *string `json:"baseReward,omitempty"`
	BlockTime        *int64  `json:"blockTime,omitempty"`
	Difficulty       *uint64 `json:"difficulty,omitempty"`
	HalvingInterval  *uint64 `json:"halvingInterval,omitempty"`
	RetargetInterval *uint64 `json:"retargetInterval,omitempty"`
}

func (p miningParameters) count() int {
	n := 0
	for _, set := range []bool{p.BaseReward != nil, p.BlockTime != nil, p.Difficulty != nil, p.HalvingInterval != nil, p.RetargetInterval != nil} {
		if set {
			n++
		}
	}
	return n
}

// setMiningParameters updates exactly one schedule parameter.
func (s *Server) setMiningParameters(r *http.Request, _ map[string]string) (any, error) {
	var req miningParameters
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	if req.count() != 1 {
		return nil, badRequest("exactly one parameter must be given")
	}
	var reward *big.Int
	if req.BaseReward != nil {
		var err error
		if reward, err = model.ParseAmount(*req.BaseReward); err != nil {
			return nil, err
		}
	}
	e := s.suite.Mining
	return s.exec(r, func(msg chain.Msg) error {
		switch {
		case reward != nil:
			return e.SetBaseReward(msg, reward)
		case req.BlockTime != nil:
			return e.SetBlockTime(msg, time.Duration(*req.BlockTime)*time.Second)
		case req.Difficulty != nil:
			return e.SetDifficulty(msg, *req.Difficulty)
		case req.HalvingInterval != nil:
			return e.SetHalvingInterval(msg, *req.HalvingInterval)
		default:
			return e.SetRetargetInterval(msg, *req.RetargetInterval)
		}
	})
}

func (s *Server) pauseMining(r *http.Request, _ map[string]string) (any, error) {
	return s.exec(r, s.suite.Mining.Pause)
}

func (s *Server) unpauseMining(r *http.Request, _ map[string]string) (any, error) {
	return s.exec(r, s.suite.Mining.Unpause)
}

func (s *Server) transferMiningOwnership(r *http.Request, _ map[string]string) (any, error) {
	var req struct {
		NewOwner string `json:"newOwner"`
	}
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	owner, err := parseAddress(req.NewOwner)
	if err != nil {
		return nil, err
	}
	return s.exec(r, func(msg chain.Msg) error {
		return s.suite.Mining.TransferOwnership(msg, owner)
	})
}
