package cli

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/mchmarny/mlboard/pkg/config"
)

var (
	configPathFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "Path to the board configuration file (YAML)",
		Required: true,
	}

	initCmd = &cli.Command{
		Name:  "init",
		Usage: "Bootstrap teams, players and competitions from a configuration file",
		UsageText: `mlboard init --config options.yaml
   mlboard --db ./board.db init --config options.yaml`,
		HideHelpCommand: true,
		Action:          cmdInit,
		Flags: []cli.Flag{
			configPathFlag,
		},
	}
)

// cmdInit seeds the store from configuration. Safe to re-run: tables
// that already hold rows are left alone.
func cmdInit(c *cli.Context) error {
	cfg := getConfig(c)

	opts, err := config.Read(c.String(configPathFlag.Name))
	if err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}

	if err := cfg.Store.InitFromOptions(opts); err != nil {
		return fmt.Errorf("bootstrapping store: %w", err)
	}

	slog.Info("store bootstrapped",
		"db", cfg.DBPath,
		"competitions", len(opts.Competitions),
	)
	return nil
}
