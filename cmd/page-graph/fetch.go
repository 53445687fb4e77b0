package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/barafael/page-graph/internal/config"
	"github.com/barafael/page-graph/internal/fetch"
	"github.com/barafael/page-graph/internal/log"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <page>...",
		Short: "Download pages into a local corpus directory",
		Long: `Fetch downloads the named pages from a site into a local directory,
one file per page, so they can be audited offline.

Each page identifier is appended to the base URL to form the request URL,
and the response body is written to <directory>/<page>.

Examples:
  # Download three pages from a site
  page-graph fetch --base-url https://example.com --dir ./pages index about contact

  # Use the base URL from the config file
  page-graph fetch --site example.com index about contact

  # Slow down between requests
  page-graph fetch --base-url https://example.com --delay 2s index about`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFetchCmd,
	}

	cmd.Flags().StringP("base-url", "u", "",
		"Base URL pages are downloaded under")
	cmd.Flags().StringP("dir", "d", "",
		"Directory downloaded pages are written to")
	cmd.Flags().StringP("site", "s", "",
		"Site name (selects base URL and directory from the config file)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pagegraph in current or home directory)")
	cmd.Flags().Duration("delay", config.DefaultFetchDelay,
		"Delay between requests")
	cmd.Flags().String("user-agent", config.DefaultUserAgent,
		"User-Agent header to send")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body size in bytes")
	cmd.Flags().Duration("timeout", config.DefaultTimeout,
		"Connection timeout for each request")

	return cmd
}

// runFetchCmd executes the fetch command.
func runFetchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildFetchConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.FetchBaseURL == "" {
		return errors.New("no base URL: use --base-url or configure baseUrl for the site")
	}
	if cfg.Directory == "" {
		return errors.New("no directory: use --dir or configure directory for the site")
	}
	if cfg.FetchDelay < 0 {
		return config.ErrInvalidFetchDelay
	}

	logger := log.NewLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	f := fetch.New(cfg.FetchBaseURL, cfg.Directory,
		fetch.WithClient(&http.Client{Timeout: cfg.Timeout}),
		fetch.WithDelay(cfg.FetchDelay),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	)

	return runFetch(cmd.Context(), cmd, f, args, logger)
}

// buildFetchConfig creates a Config for the fetch command.
func buildFetchConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.Site, err = cmd.Flags().GetString("site")
	if err != nil {
		return nil, err
	}
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Site settings come from the config file when available
	if configPath := config.FindConfigFile(cfg.ConfigFilePath); configPath != "" {
		siteConfigs, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.Apply(siteConfigs.GetSiteConfig(cfg.Site))
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("base-url") {
		cfg.FetchBaseURL, err = cmd.Flags().GetString("base-url")
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("dir") {
		cfg.Directory, err = cmd.Flags().GetString("dir")
		if err != nil {
			return nil, err
		}
	}

	cfg.FetchDelay, err = cmd.Flags().GetDuration("delay")
	if err != nil {
		return nil, err
	}
	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}
	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size")
	if err != nil {
		return nil, err
	}
	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// runFetch downloads the pages and prints a per-page summary.
func runFetch(ctx context.Context, cmd *cobra.Command, f *fetch.Fetcher, pages []string, logger *slog.Logger) error {
	logger.Info("starting fetch", "pages", len(pages))

	results, err := f.FetchAll(ctx, pages)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	var failed int
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(cmd.OutOrStdout(), "  [!] %s: %v\n", result.ID, result.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  [+] %s (%d bytes)\n", result.ID, result.Size)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nFetched %d/%d pages\n", len(results)-failed, len(pages))
	if failed > 0 {
		return fmt.Errorf("%d page(s) failed to download", failed)
	}
	return nil
}
