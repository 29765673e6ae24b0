// Package config loads the board configuration: the competition
// declarations and the user roster the store is bootstrapped from. The
// configuration is an explicit struct read once at startup and handed to
// whoever needs it; there is no process-wide options singleton.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/mchmarny/mlboard/pkg/competition"
)

// Options is the root configuration object.
type Options struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Lang     string `yaml:"lang"`

	// AllowedUsers points at the roster CSV file.
	AllowedUsers string `yaml:"allowed_users"`

	Competitions []competition.Config `yaml:"competitions"`
}

// Read loads options from a YAML file. Relative roster and data file
// paths resolve against the config file's directory.
func Read(path string) (*Options, error) {
	if path == "" {
		return nil, errors.New("config path required")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	var o Options
	if err := yaml.Unmarshal(b, &o); err != nil {
		return nil, fmt.Errorf("unmarshalling config file %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	o.AllowedUsers = resolve(dir, o.AllowedUsers)
	for i := range o.Competitions {
		o.Competitions[i].DataFile = resolve(dir, o.Competitions[i].DataFile)
	}
	return &o, nil
}

// Load builds the configured competitions, reading any ground-truth data
// files concurrently. Order follows the configuration.
func (o *Options) Load() ([]*competition.Competition, error) {
	comps := make([]*competition.Competition, len(o.Competitions))
	g := new(errgroup.Group)
	for i, cfg := range o.Competitions {
		i, cfg := i, cfg
		g.Go(func() error {
			c, err := competition.New(cfg)
			if err != nil {
				return fmt.Errorf("competition %q: %w", cfg.Name, err)
			}
			comps[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return comps, nil
}

// Users reads the roster referenced by AllowedUsers.
func (o *Options) Users() ([]User, error) {
	if o.AllowedUsers == "" {
		return nil, errors.New("allowed_users not set")
	}
	return ReadUsers(o.AllowedUsers)
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
