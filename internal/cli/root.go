package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	cellspacer "github.com/baditaflorin/go_cell_spacer"
	"github.com/baditaflorin/go_cell_spacer/internal/config"
)

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"pattern":      "pattern",
	"dry-run":      "dry_run",
	"skip-invalid": "skip_invalid",
	"engine":       "engine",
	"verbose":      "verbose",
	"json-logs":    "json_logs",
}

// RootCmd builds the cellspacer command tree.
func RootCmd() *cobra.Command {
	defaults := config.Default()

	root := &cobra.Command{
		Use:   "cellspacer [dir]",
		Short: "Insert a blank line after every #%% cell marker",
		Long: "cellspacer rewrites the files in dir whose names match --pattern so that\n" +
			"every line containing the #%% cell marker is followed by a blank line.\n" +
			"Files that already comply are left untouched.\n\n" +
			"Settings can also come from CELLSPACER_DIR, CELLSPACER_PATTERN,\n" +
			"CELLSPACER_DRY_RUN, CELLSPACER_SKIP_INVALID and CELLSPACER_ENGINE.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRewrite,
	}

	flags := root.Flags()
	flags.StringP("pattern", "p", defaults.Pattern, "File name glob to match inside dir")
	flags.BoolP("dry-run", "n", false, "Report what would change without writing")
	flags.Bool("skip-invalid", false, "Skip files that are not valid UTF-8 instead of failing")
	flags.String("engine", defaults.Engine, "Matching engine: 'scan' or 'regex'")
	flags.BoolP("verbose", "v", false, "Write diagnostic logs to stderr")
	flags.Bool("json-logs", false, "Format diagnostic logs as JSON")

	root.AddCommand(FmtCmd())
	return root
}

// loadConfig merges explicitly set flags and the optional dir argument over
// defaults and environment.
func loadConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	overrides := map[string]any{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			overrides[key] = f.Value.String()
		}
	})
	if len(args) == 1 {
		overrides["dir"] = args[0]
	}
	return config.Load(overrides)
}

func runRewrite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	opts := []cellspacer.Option{
		cellspacer.WithPattern(cfg.Pattern),
		cellspacer.WithDryRun(cfg.DryRun),
		cellspacer.WithSkipInvalid(cfg.SkipInvalid),
		cellspacer.WithEngine(cfg.EngineType()),
		cellspacer.WithOutput(cmd.OutOrStdout()),
	}
	if cfg.Verbose {
		opts = append(opts, cellspacer.WithDiagnostics(cmd.ErrOrStderr(), cfg.JSONLogs))
	}

	cs, err := cellspacer.New(cfg.Dir, opts...)
	if err != nil {
		return err
	}
	defer cs.Close()

	_, err = cs.Run(cmd.Context())
	return err
}

// FmtCmd filters stdin to stdout.
func FmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt",
		Short: "Apply the marker spacing rule to stdin and write the result to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cellspacer.NormalizeStream(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
			return err
		},
	}
}
