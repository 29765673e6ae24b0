package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

var (
	subCompetitionFlag = &cli.Int64Flag{
		Name:     "competition",
		Aliases:  []string{"c"},
		Usage:    "Competition id",
		Required: true,
	}

	subPlayerFlag = &cli.Int64Flag{
		Name:     "player",
		Aliases:  []string{"p"},
		Usage:    "Player id",
		Required: true,
	}

	subFileFlag = &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Path to the prediction file to score",
		Required: true,
	}

	submitCmd = &cli.Command{
		Name:  "submit",
		Usage: "Score a prediction file and record the submission",
		UsageText: `mlboard submit --competition 0 --player 0 --file predictions.csv
   mlboard submit -c 0 -p 2 -f preds.csv --format yaml`,
		HideHelpCommand: true,
		Action:          cmdSubmit,
		Flags: []cli.Flag{
			subCompetitionFlag,
			subPlayerFlag,
			subFileFlag,
		},
	}
)

func cmdSubmit(c *cli.Context) error {
	cfg := getConfig(c)
	cptID := c.Int64(subCompetitionFlag.Name)
	playerID := c.Int64(subPlayerFlag.Name)

	b, err := os.ReadFile(c.String(subFileFlag.Name))
	if err != nil {
		return fmt.Errorf("reading prediction file: %w", err)
	}

	if err := cfg.Store.Submit(cptID, playerID, string(b), time.Now()); err != nil {
		return fmt.Errorf("recording submission: %w", err)
	}

	results, err := cfg.Store.GetResults(cptID)
	if err != nil {
		return fmt.Errorf("reading back results: %w", err)
	}
	return encode(results)
}
