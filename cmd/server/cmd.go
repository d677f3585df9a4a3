package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/evgenius1424/spielenium/internal/config"
	"github.com/evgenius1424/spielenium/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type options struct {
	bind    string
	port    int
	envFile string
	verbose bool
}

func (o *options) validate() error {
	if o.port < 1 || o.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", o.port)
	}
	return nil
}

func newCmd(opts *options) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SPIELENIUM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "spielenium",
		Short:         "Price-guessing party game server: one host display, many phones.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			return serve(opts)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&opts.bind, "bind", "b", "0.0.0.0", "address to bind to (env: SPIELENIUM_BIND)")
	fs.IntVarP(&opts.port, "port", "p", 8080, "port to listen on (env: SPIELENIUM_PORT)")
	fs.StringVar(&opts.envFile, "env-file", ".env", "path to a .env file with game settings (env: SPIELENIUM_ENV_FILE)")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "display additional output (env: SPIELENIUM_VERBOSE)")

	fs.VisitAll(func(flag *pflag.Flag) {
		if v.IsSet(flag.Name) && !flag.Changed {
			_ = fs.Set(flag.Name, v.GetString(flag.Name))
		}
	})

	return cmd
}

func serve(opts *options) error {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return err
	}
	cfg := config.Load()

	srv := server.New(cfg)
	addr := fmt.Sprintf("%s:%d", opts.bind, opts.port)
	if opts.verbose {
		log.Printf("settings guess_seconds=%d max_players=%d", cfg.GuessDurationSeconds, cfg.MaxPlayers)
	}
	log.Printf("spielenium server listening on %s", addr)
	err := http.ListenAndServe(addr, srv.Handler())
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
