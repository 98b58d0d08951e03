/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Seednode/geoquiz/catalog"
	"github.com/Seednode/geoquiz/session"
)

type Config struct {
	answerDelay    time.Duration
	bind           string
	catalogDir     string
	metrics        bool
	photosDir      string
	port           int
	prefix         string
	profile        bool
	seed           uint64
	sessionTimeout time.Duration
	tick           time.Duration
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.tick <= 0 {
		return fmt.Errorf("invalid tick interval (must be positive): %s", c.tick)
	}
	if c.answerDelay < 0 {
		return fmt.Errorf("invalid answer delay (must not be negative): %s", c.answerDelay)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// loadCatalog returns the embedded datasets unless --catalog points elsewhere.
func (c *Config) loadCatalog() (*catalog.Catalog, error) {
	if c.catalogDir == "" {
		return catalog.Default()
	}

	cat, err := catalog.LoadDir(c.catalogDir)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", c.catalogDir, err)
	}

	return cat, nil
}

// sessionOptions are the session settings shared by every game.
func (c *Config) sessionOptions() session.Options {
	return session.Options{
		TickInterval: c.tick,
		AdvanceDelay: c.answerDelay,
		Seed:         c.seed,
	}
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GEOQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "geoquiz",
		Short:         "A timed quiz: guess the birth province of Turkish celebrities on a map.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.DurationVar(&cfg.answerDelay, "answer-delay", session.DefaultAdvanceDelay, "time an answered question stays on screen (env: GEOQUIZ_ANSWER_DELAY)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: GEOQUIZ_BIND)")
	fs.StringVar(&cfg.catalogDir, "catalog", "", "directory containing provinces.yaml and celebrities.yaml, instead of the built-in data (env: GEOQUIZ_CATALOG)")
	fs.BoolVar(&cfg.metrics, "metrics", false, "expose prometheus metrics at /metrics (env: GEOQUIZ_METRICS)")
	fs.StringVar(&cfg.photosDir, "photos", "", "directory to serve celebrity photos from, at /photos/ (env: GEOQUIZ_PHOTOS)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: GEOQUIZ_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: GEOQUIZ_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: GEOQUIZ_PROFILE)")
	fs.Uint64Var(&cfg.seed, "seed", 0, "fixed seed for question order, 0 for random (env: GEOQUIZ_SEED)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle games are ended (env: GEOQUIZ_SESSION_TIMEOUT)")
	fs.DurationVar(&cfg.tick, "tick", session.DefaultTickInterval, "length of one game second (env: GEOQUIZ_TICK)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: GEOQUIZ_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: GEOQUIZ_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: GEOQUIZ_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: GEOQUIZ_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("geoquiz v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
