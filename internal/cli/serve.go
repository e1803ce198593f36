package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridaxis/pkg/cache"
	"github.com/matzehuels/gridaxis/pkg/pipeline"
	"github.com/matzehuels/gridaxis/pkg/server"
)

type serveOpts struct {
	addr          string
	redisAddr     string
	redisPassword string
	redisDB       int
	noCache       bool
	timeout       time.Duration
}

func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes POST /v1/solve and POST /v1/bounds.

Solutions are cached in Redis when --redis is set, otherwise in the local
cache directory.`,
		Example: `  gridaxis serve --addr :8080
  gridaxis serve --redis localhost:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.serverRunner(cmd, opts)
			if err != nil {
				return err
			}
			defer runner.Close()
			return server.New(runner, c.Logger, server.WithTimeout(opts.timeout)).ListenAndServe(cmd.Context(), opts.addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the shared solution cache")
	cmd.Flags().StringVar(&opts.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", server.DefaultTimeout, "per-request deadline")
	return cmd
}

func (c *CLI) serverRunner(cmd *cobra.Command, opts serveOpts) (*pipeline.Runner, error) {
	if opts.redisAddr == "" || opts.noCache {
		return c.newRunner(opts.noCache)
	}
	rc := cache.NewRedisCache(cache.RedisOptions{
		Addr:     opts.redisAddr,
		Password: opts.redisPassword,
		DB:       opts.redisDB,
	})
	if err := rc.Ping(cmd.Context()); err != nil {
		rc.Close()
		return nil, err
	}
	c.Logger.Info("using redis cache", "addr", opts.redisAddr)
	return pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, "api:"), c.Logger), nil
}
