package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/giantswarm/mcp-flights/internal/airports"
	"github.com/giantswarm/mcp-flights/internal/logging"
)

// newAirportsCmd creates the command group for airport directory maintenance.
func newAirportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "airports",
		Short: "Manage the airport directory cache",
	}
	cmd.AddCommand(newAirportsRefreshCmd())
	return cmd
}

func newAirportsRefreshCmd() *cobra.Command {
	var (
		debugMode    bool
		configPath   string
		envFiles     []string
		airportFlags AirportFlags
	)

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Download the airport feed and rewrite the cache",
		Long: `Downloads the OurAirports CSV feed, rebuilds the airport directory and
saves it to the configured cache backend. Running servers pick up the new
cache on their next start or when update_airports_database is called.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServerConfig(configPath, envFiles, airportFlags, cmd.Flags().Changed)
			if err != nil {
				return err
			}

			logger := logging.NewLogger(cmd.ErrOrStderr(), cfg.LogFormat, debugMode)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			dir, closeStore, err := newAirportDirectory(ctx, cfg, logger, nil)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeStore(); err != nil {
					logger.Warn("Failed to close airport cache", logging.Err(err))
				}
			}()

			count, err := dir.Refresh(ctx)
			var persistErr *airports.PersistError
			switch {
			case errors.As(err, &persistErr):
				return fmt.Errorf("downloaded %d airports but the cache could not be saved: %w", count, persistErr.Err)
			case err != nil:
				return fmt.Errorf("failed to refresh airport directory: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Airport cache %s updated with %d airports.\n",
				logging.SanitizeURL(dir.StoreDescription()), count)
			return nil
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging (default: false)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "Env files loaded before reading the configuration (default: .env when present)")
	addAirportFlags(cmd, &airportFlags)

	return cmd
}
