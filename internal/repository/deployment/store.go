// Package deployment persists deployment records in a bbolt file so front-ends can
// discover contract addresses per network.
package deployment

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/token42-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type Metrics interface {
	Observe(operation string, err error, started time.Time)
}

// MaxPerNetwork is how many records a network keeps; older ones are dropped.
const MaxPerNetwork = 10

const fileVersion = "1.0.0"

var (
	rootBucket = []byte("deployments")
	metaBucket = []byte("meta")
	updatedKey = []byte("lastUpdated")
)

var knownNetworks = map[uint64]string{
	1:        "ethereum-mainnet",
	5:        "ethereum-goerli",
	11155111: "ethereum-sepolia",
	56:       "bsc-mainnet",
	97:       "bsc-testnet",
	1337:     "localhost",
	31337:    "hardhat",
}

// NetworkKey names the bucket records of chainID are stored under.
func NetworkKey(chainID uint64, networkName string) string {
	if key, ok := knownNetworks[chainID]; ok {
		return key
	}
	return networkName + "-" + strconv.FormatUint(chainID, 10)
}

// File mirrors the deployments.json layout.
type File struct {
	Version     string                        `json:"version"`
	LastUpdated *time.Time                    `json:"lastUpdated"`
	Networks    map[string][]model.Deployment `json:"networks"`
}

type Store struct {
	db      *bbolt.DB
	metrics Metrics
	logger  *zap.Logger
}

// Open opens or creates the store at path.
func Open(path string, metrics Metrics, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("deployment store path is required")
	}
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(rootBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(metaBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init buckets: %w", err)
	}
	return &Store{db: db, metrics: metrics, logger: logger.Named("deployments")}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores d as the newest deployment of its network and returns the network key.
func (s *Store) Record(d model.Deployment) (key string, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("record", err, start)
	}()

	if d.Timestamp.IsZero() {
		return "", errors.New("deployment timestamp is required")
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode deployment: %w", err)
	}
	key = NetworkKey(d.ChainID, d.NetworkName)

	err = s.db.Update(func(tx *bbolt.Tx) error {
		network, err := tx.Bucket(rootBucket).CreateBucketIfNotExists([]byte(key))
		if err != nil {
			return fmt.Errorf("network bucket: %w", err)
		}
		seq, err := network.NextSequence()
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}
		if err := network.Put(itob(seq), raw); err != nil {
			return fmt.Errorf("put deployment: %w", err)
		}
		if err := trim(network, MaxPerNetwork); err != nil {
			return err
		}
		stamp, err := d.Timestamp.UTC().MarshalText()
		if err != nil {
			return err
		}
		return tx.Bucket(metaBucket).Put(updatedKey, stamp)
	})
	if err != nil {
		return "", err
	}
	s.logger.Info("deployment recorded",
		zap.String("network", key),
		zap.String("deployer", d.Deployer))
	return key, nil
}

// trim drops the oldest records until at most keep remain.
func trim(b *bbolt.Bucket, keep int) error {
	var keys [][]byte
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		keys = append(keys, bytes.Clone(k))
	}
	for i := 0; i < len(keys)-keep; i++ {
		if err := b.Delete(keys[i]); err != nil {
			return fmt.Errorf("trim deployments: %w", err)
		}
	}
	return nil
}

// Latest returns the newest deployment recorded for the network.
func (s *Store) Latest(chainID uint64, networkName string) (d model.Deployment, ok bool, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("latest", err, start)
	}()

	err = s.db.View(func(tx *bbolt.Tx) error {
		network := tx.Bucket(rootBucket).Bucket([]byte(NetworkKey(chainID, networkName)))
		if network == nil {
			return nil
		}
		_, raw := network.Cursor().Last()
		if raw == nil {
			return nil
		}
		ok = true
		return json.Unmarshal(raw, &d)
	})
	if err != nil {
		return model.Deployment{}, false, fmt.Errorf("read latest deployment: %w", err)
	}
	return d, ok, nil
}

// History returns the records of one network, newest first.
func (s *Store) History(chainID uint64, networkName string) (out []model.Deployment, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("history", err, start)
	}()

	err = s.db.View(func(tx *bbolt.Tx) error {
		network := tx.Bucket(rootBucket).Bucket([]byte(NetworkKey(chainID, networkName)))
		if network == nil {
			return nil
		}
		out, err = newestFirst(network)
		return err
	})
	return out, err
}

// All returns every network's records in the deployments.json layout.
func (s *Store) All() (f File, err error) {
	start := time.Now()
	defer func() {
		s.metrics.Observe("all", err, start)
	}()

	f = File{Version: fileVersion, Networks: make(map[string][]model.Deployment)}
	err = s.db.View(func(tx *bbolt.Tx) error {
		if raw := tx.Bucket(metaBucket).Get(updatedKey); raw != nil {
			var ts time.Time
			if err := ts.UnmarshalText(raw); err != nil {
				return fmt.Errorf("decode last updated: %w", err)
			}
			f.LastUpdated = &ts
		}
		root := tx.Bucket(rootBucket)
		return root.ForEach(func(name, v []byte) error {
			if v != nil {
				return nil
			}
			list, err := newestFirst(root.Bucket(name))
			if err != nil {
				return err
			}
			f.Networks[string(name)] = list
			return nil
		})
	})
	return f, err
}

// Networks lists the known network keys in lexical order.
func (s *Store) Networks() ([]string, error) {
	f, err := s.All()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(f.Networks))
	for k := range f.Networks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Export writes the deployments.json document to w.
func (s *Store) Export(w io.Writer) error {
	f, err := s.All()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

func newestFirst(b *bbolt.Bucket) ([]model.Deployment, error) {
	var out []model.Deployment
	c := b.Cursor()
	for k, raw := c.Last(); k != nil; k, raw = c.Prev() {
		var d model.Deployment
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode deployment %x: %w", k, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func itob(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}
