package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/goserg/spreadrating/internal/rating"
	"github.com/goserg/spreadrating/internal/results"

	"github.com/BurntSushi/toml"
)

const DefaultPath = "configs/server.toml"

type Storage struct {
	SqliteFile string `toml:"sqlite_file"`
}

type Server struct {
	Host  string `toml:"host"`
	Port  int    `toml:"port"`
	Debug bool   `toml:"debug_mode"`
}

type Registry struct {
	ByeNames []string `toml:"bye_names"`
	// ActiveDays is how long after its last game a player stays on the
	// active list.
	ActiveDays int `toml:"active_days"`
	// RemovedPlayers are left off the active list.
	RemovedPlayers []string `toml:"removed_players"`
}

type Config struct {
	Rating   rating.Config
	Storage  Storage
	Server   Server
	Registry Registry
}

func Default() Config {
	return Config{
		Rating:  rating.DefaultConfig(),
		Storage: Storage{SqliteFile: "rating.sqlite"},
		Server: Server{
			Host: "localhost",
			Port: 3000,
		},
		Registry: Registry{
			ByeNames:   append([]string(nil), results.DefaultByeNames...),
			ActiveDays: 731,
		},
	}
}

// New reads the config file at path on top of the defaults. A missing file
// is not an error. SPREADRATING_DB and SPREADRATING_PORT override the file.
func New(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	if db := os.Getenv("SPREADRATING_DB"); db != "" {
		cfg.Storage.SqliteFile = db
	}
	if port := os.Getenv("SPREADRATING_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return Config{}, err
		}
		cfg.Server.Port = p
	}

	if err := cfg.Rating.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
