package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"hrw/internal/config"
	"hrw/internal/placement"
	"hrw/internal/replication"
)

// ErrUsage is returned for a missing or unknown subcommand.
var ErrUsage = errors.New("usage: hrw <pick|moved> [flags]")

// Run executes the hrw command line with args (without the program name)
// and writes results to stdout.
func Run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return ErrUsage
	}
	switch args[0] {
	case "pick":
		return runPick(args[1:], stdout)
	case "moved":
		return runMoved(args[1:], stdout)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

// common holds the flags shared by every subcommand.
type common struct {
	configPath string
	nodes      string
	algorithm  string
	seed       *uint64
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&c.nodes, "nodes", "", "comma-separated id=addr node list, overrides the config")
	fs.StringVar(&c.algorithm, "hash", "", "hash algorithm: siphash, xxhash, murmur3, maphash or fnv")
	fs.Func("seed", "hash seed; random when unset", func(s string) error {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return err
		}
		c.seed = &v
		return nil
	})
}

// load builds the config and the placement described by the flags.
func (c *common) load() (*config.Config, *placement.Placement, error) {
	cfg := config.Default()
	if c.configPath != "" {
		var err error
		if cfg, err = config.Load(c.configPath); err != nil {
			return nil, nil, err
		}
	}
	if c.nodes != "" {
		peers, err := config.ParsePeers(c.nodes)
		if err != nil {
			return nil, nil, err
		}
		cfg.Nodes = peers
	}
	if c.algorithm != "" {
		cfg.Hash.Algorithm = c.algorithm
	}
	if c.seed != nil {
		cfg.Hash.Seed = c.seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := cfg.Logger()
	if err != nil {
		return nil, nil, err
	}
	logger.SetOutput(os.Stderr)
	entry := logger.WithField("component", "hrw")

	build, err := cfg.HashBuilder()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Hash.Seed == nil {
		entry.WithField("algorithm", cfg.Hash.Algorithm).Warn("no hash seed configured, mapping is random for this run")
	}

	p := placement.New(build, placement.WithLogger(entry))
	p.SetNodes(cfg.BuildNodes())
	return cfg, p, nil
}

func runPick(args []string, stdout io.Writer) error {
	var c common
	fs := flag.NewFlagSet("pick", flag.ContinueOnError)
	c.register(fs)
	k := fs.Int("k", 0, "number of nodes per key; defaults to the configured replicas")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: pick needs at least one key", ErrUsage)
	}

	cfg, p, err := c.load()
	if err != nil {
		return err
	}

	count := *k
	if count <= 0 {
		count = cfg.Replicas
	}
	for _, key := range fs.Args() {
		replicas := replication.GetReplicasForKey(p, key, count)
		parts := make([]string, len(replicas))
		for i, n := range replicas {
			parts[i] = fmt.Sprintf("%s(%s)", n.ID, n.Addr)
		}
		fmt.Fprintf(stdout, "%s\t%s\n", key, strings.Join(parts, ","))
	}
	return nil
}

func runMoved(args []string, stdout io.Writer) error {
	var c common
	fs := flag.NewFlagSet("moved", flag.ContinueOnError)
	c.register(fs)
	add := fs.String("add", "", "comma-separated id=addr nodes to add")
	remove := fs.String("remove", "", "comma-separated node IDs to remove")
	numKeys := fs.Int("keys", 1000, "number of sampled keys")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *numKeys <= 0 {
		return fmt.Errorf("%w: -keys must be positive", ErrUsage)
	}

	_, before, err := c.load()
	if err != nil {
		return err
	}

	after := before.Clone()
	added, err := config.ParsePeers(*add)
	if err != nil {
		return err
	}
	for _, peer := range added {
		after.AddNode(placement.Node{ID: peer.ID, Addr: peer.Addr})
	}
	for _, id := range strings.Split(*remove, ",") {
		if id = strings.TrimSpace(id); id != "" && !after.RemoveNode(id) {
			logrus.WithField("node_id", id).Warn("node to remove is not a member")
		}
	}

	keys := make([]string, *numKeys)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	moves := placement.Diff(before, after, keys)

	fmt.Fprintf(stdout, "nodes\t%d -> %d\n", before.Len(), after.Len())
	fmt.Fprintf(stdout, "moved\t%d/%d (%.2f%%)\n", len(moves), len(keys), 100*float64(len(moves))/float64(len(keys)))

	gained := make(map[string]int)
	for _, m := range moves {
		gained[m.To]++
	}
	ids := make([]string, 0, len(gained))
	for id := range gained {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(stdout, "to\t%s\t%d\n", id, gained[id])
	}
	return nil
}
