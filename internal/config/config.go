// Package config defines the fex command line. Values come from, in order
// of precedence, flags, FEX_* environment variables, a JSON config file and
// the defaults below.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/kk-code-lab/fex/internal/history"
	"github.com/kk-code-lab/fex/internal/listing"
)

// DefaultConfigFile returns ~/.config/fex/config.json, which is read when
// present. JSON keys are flag names with dashes replaced by underscores,
// e.g. {"sort": "size", "history_limit": 50}.
func DefaultConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "fex", "config.json")
}

// Config is the kong grammar for the fex command.
type Config struct {
	Path string `arg:"" optional:"" default:"." type:"path" help:"Directory to open."`

	Sort         string `enum:"name,size,date,type" default:"name" env:"FEX_SORT" help:"Initial sort key (${enum})."`
	Desc         bool   `env:"FEX_DESC" help:"Sort in descending order."`
	Home         string `type:"path" env:"FEX_HOME" help:"Directory used for ~ and the home key. Defaults to the user's home."`
	HistoryLimit int    `default:"${history_limit}" env:"FEX_HISTORY_LIMIT" help:"Maximum number of back/forward entries (0 = unlimited)."`

	Debug   bool   `short:"d" env:"FEX_DEBUG" help:"Enable debug logging to a file."`
	LogFile string `type:"path" env:"FEX_LOG_FILE" help:"Debug log path. Defaults to the platform log directory."`

	Setup bool   `help:"Print a shell function that follows fex to the directory chosen with x, then exit."`
	Shell string `help:"Shell for --setup (bash, zsh, fish, pwsh, cmd, tcsh). Detected when empty."`

	Config kong.ConfigFlag `help:"Load defaults from a JSON file."`
}

// SortKey returns the parsed --sort value.
func (c *Config) SortKey() listing.SortKey {
	key, err := listing.ParseSortKey(c.Sort)
	if err != nil {
		return listing.SortByName
	}
	return key
}

// Validate is called by kong after parsing.
func (c *Config) Validate() error {
	if _, err := listing.ParseSortKey(c.Sort); err != nil {
		return err
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("--history-limit must not be negative, got %d", c.HistoryLimit)
	}
	return nil
}

// Parse parses args (without the program name). Extra options are applied
// after the defaults; tests use them to redirect output and exit.
func Parse(args []string, options ...kong.Option) (*Config, error) {
	cfg := &Config{}
	opts := []kong.Option{
		kong.Name("fex"),
		kong.Description("A terminal directory browser."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, configPaths()...),
		kong.Vars{
			"history_limit": fmt.Sprint(history.DefaultLimit),
		},
	}
	opts = append(opts, options...)

	parser, err := kong.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configPaths() []string {
	if path := DefaultConfigFile(); path != "" {
		return []string{path}
	}
	return nil
}
