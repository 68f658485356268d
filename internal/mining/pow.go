package mining

import (
	"context"
	"encoding/binary"
	"math"
	"math/big"
	"sync"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/goodnatureofminers/token42-backend/pkg/workerpool"
)

const (
	nonceOffset = 64
	searchChunk = 4096
)

var (
	uint256Type, _ = abi.NewType("uint256", "", nil)
	addressType, _ = abi.NewType("address", "", nil)

	// abi.encode(uint256 block, address miner, uint256 nonce, uint256 timestamp)
	preimageArgs = abi.Arguments{
		{Type: uint256Type},
		{Type: addressType},
		{Type: uint256Type},
		{Type: uint256Type},
	}

	two256     = new(big.Int).Lsh(big.NewInt(1), 256)
	maxUint256 = new(big.Int).Sub(two256, big.NewInt(1))
)

// Puzzle is the block context a nonce is hashed against.
type Puzzle struct {
	Block      uint64
	Miner      common.Address
	Timestamp  time.Time
	Difficulty uint64
}

// Hash returns keccak256 of the ABI-encoded preimage for nonce.
func (p Puzzle) Hash(nonce *big.Int) (common.Hash, error) {
	if nonce == nil || nonce.Sign() < 0 || nonce.Cmp(maxUint256) > 0 {
		return common.Hash{}, ErrInvalidNonce
	}
	packed, err := p.pack(nonce)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(packed), nil
}

// Check hashes nonce and reports whether it meets the puzzle difficulty.
func (p Puzzle) Check(nonce *big.Int) (common.Hash, bool, error) {
	hash, err := p.Hash(nonce)
	if err != nil {
		return common.Hash{}, false, err
	}
	return hash, Meets(hash, p.Difficulty), nil
}

func (p Puzzle) pack(nonce *big.Int) ([]byte, error) {
	return preimageArgs.Pack(
		new(big.Int).SetUint64(p.Block),
		p.Miner,
		nonce,
		big.NewInt(p.Timestamp.Unix()),
	)
}

// Target returns 2^256 / difficulty. Difficulty must be positive.
func Target(difficulty uint64) *big.Int {
	return new(big.Int).Div(two256, new(big.Int).SetUint64(difficulty))
}

// CompactTarget encodes the target of difficulty in nBits form.
func CompactTarget(difficulty uint64) uint32 {
	return blockchain.BigToCompact(Target(difficulty))
}

// Meets reports whether hash is strictly below the target of difficulty.
func Meets(hash common.Hash, difficulty uint64) bool {
	if difficulty == 0 {
		return false
	}
	return new(big.Int).SetBytes(hash[:]).Cmp(Target(difficulty)) < 0
}

type nonceRange struct {
	from, to uint64
}

// Search scans count nonces starting at from on workers goroutines and returns the first
// one found that meets the puzzle difficulty.
func Search(ctx context.Context, p Puzzle, workers int, from, count uint64) (*big.Int, common.Hash, error) {
	if p.Difficulty == 0 {
		return nil, common.Hash{}, ErrZeroDifficulty
	}
	if count > math.MaxUint64-from {
		count = math.MaxUint64 - from
	}
	template, err := p.pack(new(big.Int))
	if err != nil {
		return nil, common.Hash{}, err
	}
	target := Target(p.Difficulty)

	ranges := make([]nonceRange, 0, count/searchChunk+1)
	for start := from; start < from+count; {
		end := start + searchChunk
		if end > from+count || end < start {
			end = from + count
		}
		ranges = append(ranges, nonceRange{from: start, to: end})
		start = end
	}

	var (
		mu        sync.Mutex
		found     *big.Int
		foundHash common.Hash
	)
	err = workerpool.Process(ctx, workers, ranges, func(ctx context.Context, r nonceRange) error {
		buf := make([]byte, len(template))
		copy(buf, template)
		word := buf[nonceOffset+24 : nonceOffset+32]
		value := new(big.Int)
		for n := r.from; n < r.to; n++ {
			if n%1024 == 0 && ctx.Err() != nil {
				return nil
			}
			binary.BigEndian.PutUint64(word, n)
			hash := crypto.Keccak256Hash(buf)
			if value.SetBytes(hash[:]).Cmp(target) < 0 {
				mu.Lock()
				if found == nil {
					found, foundHash = new(big.Int).SetUint64(n), hash
				}
				mu.Unlock()
				return workerpool.ErrStop
			}
		}
		return nil
	}, nil)
	if err != nil {
		return nil, common.Hash{}, err
	}
	if found == nil {
		return nil, common.Hash{}, ErrNonceNotFound
	}
	return found, foundHash, nil
}
