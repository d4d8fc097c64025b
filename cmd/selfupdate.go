package cmd

import (
	"errors"
	"fmt"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// githubRepoSlug is the repository releases are downloaded from.
const githubRepoSlug = "giantswarm/mcp-flights"

// newSelfUpdateCmd creates the Cobra command that replaces the running binary
// with the latest GitHub release.
func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update mcp-flights to the latest version",
		Long: `Checks the GitHub releases of mcp-flights for a newer version and,
if one is found, replaces the current binary with it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			currentVersion := rootCmd.Version
			if currentVersion == "" || currentVersion == "dev" {
				return errors.New("cannot self-update a development version, please install a release build")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = cmd.Root().Context()
			}

			latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(githubRepoSlug))
			if err != nil {
				return fmt.Errorf("error detecting latest version: %w", err)
			}
			if !found {
				return fmt.Errorf("no release found for %s", githubRepoSlug)
			}

			out := cmd.OutOrStdout()
			if latest.LessOrEqual(currentVersion) {
				_, _ = fmt.Fprintf(out, "Current version %s is the latest.\n", currentVersion)
				return nil
			}

			exe, err := selfupdate.ExecutablePath()
			if err != nil {
				return fmt.Errorf("could not locate executable path: %w", err)
			}

			_, _ = fmt.Fprintf(out, "Updating mcp-flights from %s to %s...\n", currentVersion, latest.Version())
			if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
				return fmt.Errorf("error updating binary: %w", err)
			}

			_, _ = fmt.Fprintf(out, "Successfully updated to version %s\n", latest.Version())
			return nil
		},
	}
}
