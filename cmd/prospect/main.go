// Command prospect finds social media profiles for a business name.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/codeGROOVE-dev/prospect"
	"github.com/codeGROOVE-dev/prospect/pkg/cache"
	"github.com/codeGROOVE-dev/prospect/pkg/probe"
	"github.com/codeGROOVE-dev/prospect/pkg/profile"
	"github.com/codeGROOVE-dev/prospect/pkg/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "prospect",
		Usage: "discover social media profiles for a business",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "environment file to load",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "bypass the result cache",
			},
			&cli.StringFlag{
				Name:  "cache-dir",
				Usage: "result cache directory (default: user cache dir)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "search for profiles matching a business name",
				ArgsUsage: "<business name> [platform ...]",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "overall search deadline",
						Value: 2 * time.Minute,
					},
					&cli.IntFlag{
						Name:  "max-usernames",
						Usage: "username candidates to probe",
						Value: 10,
					},
					&cli.BoolFlag{
						Name:  "verify",
						Usage: "verify discovered URLs with HTTP requests",
					},
				},
				Action: searchAction,
			},
			{
				Name:  "serve",
				Usage: "run the HTTP search API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "listen address",
						Value: ":8080",
					},
				},
				Action: serveAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setup(cmd *cli.Command) (*slog.Logger, *cache.Results, error) {
	if envFile := cmd.String("env"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, nil, fmt.Errorf("load env file: %w", err)
		}
	}

	level := slog.LevelInfo
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var results *cache.Results
	if !cmd.Bool("no-cache") {
		store, err := openStore(cmd.String("cache-dir"))
		if err != nil {
			// A dead cache should not block searching.
			logger.Warn("cache unavailable, continuing without", "error", err)
		} else {
			results = cache.NewResults(store, logger)
		}
	}
	return logger, results, nil
}

func openStore(dir string) (cache.Store, error) {
	if dir != "" {
		return cache.OpenPath(cache.DefaultTTL, dir)
	}
	return cache.Open(cache.DefaultTTL)
}

func baseOptions(logger *slog.Logger, results *cache.Results) []prospect.Option {
	opts := []prospect.Option{prospect.WithLogger(logger)}
	if results != nil {
		opts = append(opts, prospect.WithResultCache(results))
	}
	if binary := os.Getenv("PROSPECT_SHERLOCK"); binary != "" {
		opts = append(opts, prospect.WithProber(probe.NewRunner(
			probe.WithBinary(binary), probe.WithLogger(logger))))
	}
	return opts
}

func searchAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("usage: prospect search <business name> [platform ...]")
	}
	query := args[0]
	platforms := args[1:]

	logger, results, err := setup(cmd)
	if err != nil {
		return err
	}
	if results != nil {
		defer results.Close() //nolint:errcheck // best effort on exit
	}

	opts := baseOptions(logger, results)
	opts = append(opts,
		prospect.WithTimeout(cmd.Duration("timeout")),
		prospect.WithMaxUsernames(cmd.Int("max-usernames")))
	if cmd.Bool("verify") {
		opts = append(opts, prospect.WithVerifier(profile.NewHTTPVerifier(logger)))
	}
	if len(platforms) > 0 {
		opts = append(opts, prospect.WithPlatforms(platforms))
	}

	result, err := prospect.Search(ctx, query, opts...)
	if err != nil {
		return err
	}
	return outputJSON(result)
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	logger, results, err := setup(cmd)
	if err != nil {
		return err
	}
	if results != nil {
		defer results.Close() //nolint:errcheck // best effort on exit
	}

	baseOpts := baseOptions(logger, results)
	search := func(ctx context.Context, query string, platforms []string) (*profile.SearchResult, error) {
		opts := baseOpts
		if len(platforms) > 0 {
			opts = append(opts[:len(opts):len(opts)], prospect.WithPlatforms(platforms))
		}
		return prospect.Search(ctx, query, opts...)
	}

	srv := server.New(search, logger)
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe(cmd.String("addr")) }()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return nil
	case err := <-errc:
		return err
	}
}

func outputJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
