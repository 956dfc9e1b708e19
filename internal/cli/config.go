package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okdaichi/dvrouter/internal/router"
)

// Config holds everything needed to start a single router node.
type Config struct {
	Port      int
	Neighbors router.NeighborMap
	AdminAddr string // empty disables the admin HTTP surface
}

// yamlConfig mirrors the on-disk -config file shape:
//
//	port: 5000
//	admin_addr: ":9100"
//	neighbors:
//	  localhost:5001: 1
//	  localhost:5002: 2.5
type yamlConfig struct {
	Port      int                `yaml:"port"`
	AdminAddr string             `yaml:"admin_addr"`
	Neighbors map[string]float64 `yaml:"neighbors"`
}

// ParseConfig builds a Config from command-line flags. -config and
// -neighbor are mutually exclusive: a YAML file supplies the full
// topology, or repeated -neighbor flags do, but not both.
func ParseConfig(args []string) (*Config, error) {
	fs := flag.NewFlagSet("dvrouter", flag.ContinueOnError)
	port := fs.Int("port", 0, "local UDP port to bind")
	configFile := fs.String("config", "", "path to a YAML config file (mutually exclusive with -neighbor)")
	adminAddr := fs.String("admin", "", "optional address for the read-only admin HTTP surface, e.g. :9100")
	var neighborFlags stringSliceFlag
	fs.Var(&neighborFlags, "neighbor", "neighbor in host:port=cost form; may be repeated")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *configFile != "" {
		if len(neighborFlags) > 0 {
			return nil, fmt.Errorf("-config and -neighbor are mutually exclusive")
		}
		return loadYAMLConfig(*configFile)
	}

	if *port == 0 {
		return nil, fmt.Errorf("-port is required")
	}
	if _, err := router.ParsePort(strconv.Itoa(*port)); err != nil {
		return nil, err
	}

	neighbors, err := parseNeighborFlags(neighborFlags)
	if err != nil {
		return nil, err
	}

	return &Config{Port: *port, Neighbors: neighbors, AdminAddr: *adminAddr}, nil
}

func loadYAMLConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := router.ParsePort(strconv.Itoa(yc.Port)); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	links := make(map[router.Endpoint]float64, len(yc.Neighbors))
	for ep, cost := range yc.Neighbors {
		parsed, err := router.ParseEndpoint(ep)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		links[parsed] = cost
	}
	neighbors, err := router.NewNeighborMap(links)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &Config{Port: yc.Port, Neighbors: neighbors, AdminAddr: yc.AdminAddr}, nil
}

func parseNeighborFlags(flags stringSliceFlag) (router.NeighborMap, error) {
	links := make(map[router.Endpoint]float64, len(flags))
	for _, raw := range flags {
		ep, cost, err := splitNeighborFlag(raw)
		if err != nil {
			return nil, err
		}
		links[ep] = cost
	}
	return router.NewNeighborMap(links)
}

func splitNeighborFlag(raw string) (router.Endpoint, float64, error) {
	parts := strings.SplitN(raw, "=", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("invalid -neighbor %q: want host:port=cost", raw)
	}
	ep, err := router.ParseEndpoint(parts[0])
	if err != nil {
		return "", 0, err
	}
	cost, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid -neighbor %q: cost must be numeric", raw)
	}
	return ep, cost, nil
}

// stringSliceFlag implements flag.Value to accept a flag multiple times.
type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringSliceFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}
