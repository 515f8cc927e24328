package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/plotforge/plotforge/internal/server"
	"github.com/plotforge/plotforge/pkg/cache"
	"github.com/plotforge/plotforge/pkg/gallery"
	"github.com/plotforge/plotforge/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	redis    string // redis address for the shared cache; empty uses a file cache
	redisDB  int    // redis database number
	mongoURI string // mongodb connection string for the gallery; empty uses files
	mongoDB  string // mongodb database name
	noCache  bool   // disable caching entirely
}

// newServeCmd creates the serve command that runs the HTTP API.
//
// Backends are chosen by flags:
//   - cache: Redis when --redis is set, otherwise a local file cache
//   - gallery: MongoDB when --mongo-uri is set, otherwise local files
func newServeCmd() *cobra.Command {
	opts := serveOpts{
		addr:    ":8080",
		mongoDB: "plotforge",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the plotforge HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address for a shared cache (e.g. localhost:6379)")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "redis database number")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "mongodb connection string for the gallery")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "mongodb database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// newServeCache builds the cache backend for the server.
func newServeCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redis != "" {
		// Redis may still be starting when the server comes up; connection
		// failures are marked retryable by NewRedisCache.
		var rc cache.Cache
		err := cache.RetryWithBackoff(ctx, func() error {
			var err error
			rc, err = cache.NewRedisCache(ctx, opts.redis, "", opts.redisDB)
			return err
		})
		return rc, err
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	return cache.NewFileCache(dir)
}

// newServeStore builds the gallery backend for the server.
func newServeStore(ctx context.Context, opts *serveOpts) (gallery.Store, error) {
	if opts.mongoURI != "" {
		return gallery.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
	}
	return gallery.NewFileStore("")
}

// runServe wires the backends together and serves until the context is
// cancelled, then shuts down gracefully.
func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	c, err := newServeCache(ctx, opts)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	store, err := newServeStore(ctx, opts)
	if err != nil {
		_ = c.Close()
		return fmt.Errorf("init gallery: %w", err)
	}
	defer store.Close()

	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           server.New(runner, store, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
