package config

import (
	"flag"

	"github.com/pkg/errors"
)

// Default values for configuration
const (
	DefaultPort = 5555
)

// Config holds the application configuration
type Config struct {
	IsServer   bool
	ServerAddr string
	Port       int
	HTTPAddr   string // Websocket spectator listener, empty to disable
	PlayerName string
	TuningPath string
	LogPath    string
	Seed       int64 // 0 picks a time-based seed

	// WriteTuningPath, when set, asks for the effective tuning to be written
	// there as TOML instead of starting a session.
	WriteTuningPath string
}

// ParseArgs parses command line arguments and returns a Config
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("pixbowl", flag.ContinueOnError)

	server := fs.Bool("server", false, "host a bowling session")
	join := fs.String("join", "", "server address to join as spectator")
	port := fs.Int("port", DefaultPort, "port number (1-65535)")
	httpAddr := fs.String("http", "", "websocket spectator address, e.g. :8080 (server only)")
	name := fs.String("name", "", "player name")
	tuning := fs.String("tuning", "", "TOML file with physics tuning (server only)")
	logPath := fs.String("log", "", "write logs to this file")
	seed := fs.Int64("seed", 0, "random seed for swing jitter (server only)")
	writeTuning := fs.String("write-tuning", "", "write the effective tuning to this TOML file and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *writeTuning != "" {
		if *server || *join != "" {
			return nil, errors.New("--write-tuning cannot be combined with --server or --join")
		}
		return &Config{TuningPath: *tuning, WriteTuningPath: *writeTuning, Port: *port}, nil
	}

	if *server && *join != "" {
		return nil, errors.New("cannot specify both --server and --join")
	}

	if !*server && *join == "" {
		return nil, errors.New("must specify either --server or --join")
	}

	if *port < 1 || *port > 65535 {
		return nil, errors.Errorf("port must be between 1 and 65535, got %d", *port)
	}

	// Host-side options make no sense for a spectator
	if !*server && (*httpAddr != "" || *tuning != "" || *seed != 0) {
		return nil, errors.New("--http, --tuning and --seed require --server")
	}

	cfg := &Config{
		IsServer:   *server,
		ServerAddr: *join,
		Port:       *port,
		HTTPAddr:   *httpAddr,
		PlayerName: *name,
		TuningPath: *tuning,
		LogPath:    *logPath,
		Seed:       *seed,
	}

	return cfg, nil
}
