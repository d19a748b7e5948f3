package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/walteh/rebrand/cmd/rebrand/commands"
	"github.com/walteh/rebrand/cmd/rebrand/opts"
)

// log file rotation
const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// newRootCmd builds the command tree. Structured logs go to stderr and,
// with --log-file, to a rotated file.
func newRootCmd(o *opts.RootOpts, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rebrand",
		Short: "Rename a project brand across a file tree",
		Long: `rebrand derives every casing variant of --from and --to (Title Case,
PascalCase, camelCase, kebab-case, snake_case, UPPER_SNAKE, UPPERFLAT and
flatlower), rewrites every text file under --root, and reports any legacy
variant that remains.

Every flag can also be set from the environment, for example REBRAND_FROM
or REBRAND_NO_SUPABASE_CHECK=true.`,
		Example: `  rebrand --from "Beaker Stack" --to "Acme App" --dry-run --verbose
  rebrand plan --from "Beaker Stack" --to "Acme App"
  rebrand scan --from "Beaker Stack" --strict`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := opts.NewEnv(cmd.Root().PersistentFlags(), cmd.Root().Flags())
			if err != nil {
				return err
			}
			o.LoadEnv(v)

			logger := setupLogging(o, stderr)
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
		RunE: commands.RunRename(o),
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewPlanCmd(o),
		commands.NewScanCmd(o),
		commands.NewVersionCmd(o),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&o.ConfigFile, "config", "c", "", "config file path (default: .rebrand.{yaml,yml,hcl,json} in --root)")
	pf.BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	pf.StringVar(&o.LogFile, "log-file", "", "also write structured logs to this file, rotated")
	pf.StringVar(&o.From, "from", "", "current project name")
	pf.StringVar(&o.To, "to", "", "new project name")
	pf.StringVar(&o.Root, "root", "", "directory to rewrite (default \".\")")
	pf.StringVar(&o.Mode, "mode", "", "replacement mode: single-pass or sequential")
	pf.BoolVar(&o.Strict, "strict", false, "fail when a legacy variant remains")
	pf.BoolVarP(&o.Verbose, "verbose", "v", false, "print every file")

	f := cmd.Flags()
	f.BoolVar(&o.DryRun, "dry-run", false, "compute and report without writing")
	f.BoolVar(&o.NoSupabaseCheck, "no-supabase-check", false, "skip the running local Supabase check")
}

// setupLogging configures zerolog based on flags
func setupLogging(o *opts.RootOpts, stderr io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: stderr}
	if o.LogFile != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   o.LogFile,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
			Compress:   true,
		})
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func defaultOpts() *opts.RootOpts {
	return &opts.RootOpts{Stdout: os.Stdout}
}
