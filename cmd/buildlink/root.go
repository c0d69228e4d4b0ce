package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/dsymtools/buildlink/internal/version"
	"github.com/dsymtools/buildlink/pkg/buildid"
	"github.com/dsymtools/buildlink/pkg/config"
	"github.com/dsymtools/buildlink/pkg/core"
	"github.com/dsymtools/buildlink/pkg/filesystem"
	"github.com/dsymtools/buildlink/pkg/logging"
)

var (
	verbosity  int
	dryRun     bool
	debugDir   string
	configFile string

	rootCmd = &cobra.Command{
		Use:   "buildlink",
		Short: "Index debug-symbol files by build ID",
		Long: `buildlink scans a tree of installed debug-symbol files, extracts each
file's embedded build ID, and hard-links the file under
<debug-dir>/.build-id/<2-hex>/<rest-hex>.debug so debuggers can locate
symbols from a build ID alone.

The introspection command defaults to readelf; set READELF to substitute
a cross-toolchain variant.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("debug-dir") {
				cfg.DebugDir = debugDir
			}

			logger := logging.GetLogger("cmd")
			logger.Info().
				Str("debugDir", cfg.DebugDir).
				Str("tool", cfg.Readelf).
				Bool("dryRun", dryRun).
				Msg("Starting scan")

			stats, err := core.Run(cmd.Context(), filesystem.NewOS(),
				buildid.NewReadelfSource(cfg.Readelf), core.Options{
					DebugDir:     cfg.DebugDir,
					DryRun:       dryRun,
					SkipSuffixes: cfg.SkipSuffixes,
				})
			if err != nil {
				return err
			}

			logger.Info().
				Int("scanned", stats.Scanned).
				Int("linked", stats.Linked).
				Msg("Scan finished")
			return nil
		},
	}
)

// Execute runs the root command under the given context. It is called
// by main.main().
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v DEBUG, -vv TRACE)")

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report would-be links without touching the filesystem")
	rootCmd.Flags().StringVar(&debugDir, "debug-dir", config.DefaultDebugDir, "Root of the debug-symbol tree to scan")
	rootCmd.Flags().StringVar(&configFile, "config", "", "Path to a TOML config file")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(manCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print version information for buildlink`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("buildlink version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `To load completions:

Bash:
  $ source <(buildlink completion bash)

Zsh:
  $ buildlink completion zsh > "${fpath[1]}/_buildlink"

Fish:
  $ buildlink completion fish | source

PowerShell:
  PS> buildlink completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate bash completion")
			}
		case "zsh":
			if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate zsh completion")
			}
		case "fish":
			if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
				log.Error().Err(err).Msg("Failed to generate fish completion")
			}
		case "powershell":
			if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate powershell completion")
			}
		}
	},
}

var manCmd = &cobra.Command{
	Use:   "man",
	Short: "Generate man page",
	Long:  `Generate man page for buildlink`,
	RunE: func(cmd *cobra.Command, args []string) error {
		header := &doc.GenManHeader{
			Title:   "BUILDLINK",
			Section: "1",
		}
		return doc.GenManTree(rootCmd, header, "/tmp")
	},
}
