package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

var (
	resultsCompetitionFlag = &cli.Int64Flag{
		Name:     "competition",
		Aliases:  []string{"c"},
		Usage:    "Competition id",
		Required: true,
	}

	snapshotTableFlag = &cli.StringFlag{
		Name:     "table",
		Usage:    "Table to dump [competitions, players, submissions, teams]",
		Required: true,
	}

	competitionsCmd = &cli.Command{
		Name:            "competitions",
		Aliases:         []string{"ls"},
		Usage:           "List the stored competitions",
		HideHelpCommand: true,
		Action:          cmdCompetitions,
	}

	resultsCmd = &cli.Command{
		Name:            "results",
		Usage:           "Print the scored submissions of one competition",
		UsageText:       `mlboard results --competition 0`,
		HideHelpCommand: true,
		Action:          cmdResults,
		Flags: []cli.Flag{
			resultsCompetitionFlag,
		},
	}

	snapshotCmd = &cli.Command{
		Name:            "snapshot",
		Usage:           "Dump the full content of one table",
		UsageText:       `mlboard snapshot --table submissions`,
		HideHelpCommand: true,
		Action:          cmdSnapshot,
		Flags: []cli.Flag{
			snapshotTableFlag,
		},
	}
)

func cmdCompetitions(c *cli.Context) error {
	cfg := getConfig(c)
	list, err := cfg.Store.GetCompetitions()
	if err != nil {
		return fmt.Errorf("listing competitions: %w", err)
	}
	return encode(list)
}

func cmdResults(c *cli.Context) error {
	cfg := getConfig(c)
	results, err := cfg.Store.GetResults(c.Int64(resultsCompetitionFlag.Name))
	if err != nil {
		return fmt.Errorf("reading results: %w", err)
	}
	return encode(results)
}

func cmdSnapshot(c *cli.Context) error {
	cfg := getConfig(c)
	table := strings.TrimSpace(c.String(snapshotTableFlag.Name))
	snap, err := cfg.Store.GetSnapshot(table)
	if err != nil {
		return fmt.Errorf("dumping table %s: %w", table, err)
	}
	return encode(snap)
}
