package config

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"hrw/internal/placement"
	"hrw/internal/rendezvous"
)

// Hash algorithm names accepted in HashConfig.Algorithm.
const (
	AlgorithmSipHash = "siphash"
	AlgorithmXXHash  = "xxhash"
	AlgorithmMurmur3 = "murmur3"
	AlgorithmMapHash = "maphash"
	AlgorithmFNV     = "fnv"
)

// ErrUnknownAlgorithm is returned for an unsupported hash algorithm.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// Peer represents a node in the cluster.
type Peer struct {
	ID   string `yaml:"id"`
	Addr string `yaml:"addr"`
}

// HashConfig selects the hash builder. A nil Seed means a random seed,
// which makes the key mapping differ between runs.
type HashConfig struct {
	Algorithm string  `yaml:"algorithm"`
	Seed      *uint64 `yaml:"seed"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config holds the placement configuration.
type Config struct {
	Nodes    []Peer     `yaml:"nodes"`
	Hash     HashConfig `yaml:"hash"`
	Replicas int        `yaml:"replicas"`
	Log      LogConfig  `yaml:"log"`
}

// Default returns a config with the default hash algorithm and log level.
func Default() *Config {
	return &Config{
		Hash: HashConfig{Algorithm: AlgorithmSipHash},
		Log:  LogConfig{Level: "info"},
	}
}

// Load reads and validates a YAML config file. Unset fields keep the
// values from Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML config data.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config for unusable values.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Nodes))
	for _, n := range c.Nodes {
		if n.ID == "" || n.Addr == "" {
			return fmt.Errorf("node ID and address cannot be empty: %q=%q", n.ID, n.Addr)
		}
		if seen[n.ID] {
			return fmt.Errorf("duplicate node ID: %s", n.ID)
		}
		seen[n.ID] = true
	}
	if c.Replicas < 0 {
		return fmt.Errorf("replicas must not be negative: %d", c.Replicas)
	}
	if _, err := c.HashBuilder(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.logLevel()); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// ParsePeers parses a comma-separated list of peers in the format:
// "id1=addr1,id2=addr2,id3=addr3"
func ParsePeers(peersStr string) ([]Peer, error) {
	if peersStr == "" {
		return []Peer{}, nil
	}

	parts := strings.Split(peersStr, ",")
	peers := make([]Peer, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid peer format: %s (expected id=addr)", part)
		}

		id := strings.TrimSpace(kv[0])
		addr := strings.TrimSpace(kv[1])

		if id == "" || addr == "" {
			return nil, fmt.Errorf("peer ID and address cannot be empty: %s", part)
		}

		peers = append(peers, Peer{
			ID:   id,
			Addr: addr,
		})
	}

	return peers, nil
}

// BuildNodes converts config peers into placement nodes.
func (c *Config) BuildNodes() []placement.Node {
	nodes := make([]placement.Node, 0, len(c.Nodes))
	for _, peer := range c.Nodes {
		nodes = append(nodes, placement.Node{
			ID:   peer.ID,
			Addr: peer.Addr,
		})
	}
	return nodes
}

// HashBuilder returns the builder named by the hash config.
// siphash uses the seed for both key halves; murmur3 uses its low 32 bits.
// maphash has no portable seed, so a set Seed is rejected.
func (c *Config) HashBuilder() (rendezvous.HashBuilder, error) {
	seed := c.Hash.Seed
	switch strings.ToLower(c.Hash.Algorithm) {
	case "", AlgorithmSipHash:
		if seed == nil {
			return rendezvous.NewSipHash(), nil
		}
		return rendezvous.SipHash(*seed, *seed), nil
	case AlgorithmXXHash:
		return rendezvous.XXHash(seedOrRandom(seed)), nil
	case AlgorithmMurmur3:
		return rendezvous.Murmur3(uint32(seedOrRandom(seed))), nil
	case AlgorithmMapHash:
		if seed != nil {
			return nil, fmt.Errorf("maphash does not accept a fixed seed")
		}
		return rendezvous.NewMapHash(), nil
	case AlgorithmFNV:
		return rendezvous.FNV(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, c.Hash.Algorithm)
	}
}

// Logger returns a logrus logger at the configured level.
func (c *Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.logLevel())
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	l := logrus.New()
	l.SetLevel(level)
	return l, nil
}

func seedOrRandom(seed *uint64) uint64 {
	if seed == nil {
		return rand.Uint64()
	}
	return *seed
}

func (c *Config) logLevel() string {
	if c.Log.Level == "" {
		return "info"
	}
	return c.Log.Level
}
