package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ringgauge/internal/server"
	"github.com/matzehuels/ringgauge/pkg/cache"
	"github.com/matzehuels/ringgauge/pkg/pipeline"
	"github.com/matzehuels/ringgauge/pkg/store"
)

// shutdownTimeout bounds graceful shutdown after the context is cancelled.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Serve the render API over HTTP.

Artifacts are cached in Redis when cache.redis_addr (or REDIS_ADDR) is set,
otherwise in the local cache directory. Snapshots go to MongoDB when
store.mongo_uri (or MONGO_URI) is set, otherwise they are kept in memory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.Config.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	backend, err := c.serverCache(ctx, noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(backend, cache.NewScopedKeyer(nil, "ringgauge:"), c.Logger)
	runner.TTL = c.Config.Cache.TTL.Duration
	defer runner.Close()

	st, err := c.snapshotStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	srv := server.New(server.Config{
		Addr:        c.Config.Server.Addr,
		CORSOrigins: c.Config.Server.CORSOrigins,
		ReadTimeout: c.Config.Server.ReadTimeout.Duration,
		Runner:      runner,
		Store:       st,
		Logger:      c.Logger,
		Defaults:    c.Config.Defaults,
		Width:       c.Config.Render.Width,
		Height:      c.Config.Render.Height,
		PNGScale:    c.Config.Render.PNGScale,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()
	printSuccess("Listening on %s", StyleLink.Render(c.Config.Server.Addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	printInfo("Server stopped")
	return nil
}

// serverCache prefers Redis, then the file cache.
func (c *CLI) serverCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled || c.Config.Cache.RedisAddr == "" {
		return c.newCache(noCache)
	}
	return connect(ctx, nil, "Redis at "+c.Config.Cache.RedisAddr, func(ctx context.Context) (cache.Cache, error) {
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr)
	})
}

// snapshotStore prefers MongoDB, then memory.
func (c *CLI) snapshotStore(ctx context.Context) (store.Store, error) {
	if c.Config.Store.MongoURI == "" {
		printWarning("Snapshots are kept in memory (set store.mongo_uri to persist)")
		return store.NewMemoryStore(), nil
	}
	return connect(ctx, nil, "MongoDB", func(ctx context.Context) (store.Store, error) {
		return store.NewMongoStore(ctx, store.MongoOptions{
			URI:        c.Config.Store.MongoURI,
			Database:   c.Config.Store.Database,
			Collection: c.Config.Store.Collection,
		})
	})
}
