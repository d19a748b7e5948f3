package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/rebrand/cmd/rebrand/opts"
	"github.com/walteh/rebrand/pkg/log"
	"github.com/walteh/rebrand/pkg/plan"
	"github.com/walteh/rebrand/pkg/rename"
)

// RunRename returns the RunE of the root command: rewrite the tree.
func RunRename(o *opts.RootOpts) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := o.Resolve(ctx, true)
		if err != nil {
			return err
		}

		p, err := plan.Build(cfg.From, cfg.To)
		if err != nil {
			return errors.Errorf("building plan: %w", err)
		}

		replacer, err := opts.Replacer(cfg)
		if err != nil {
			return err
		}

		console := log.New(o.Stdout, *zerolog.Ctx(ctx))
		console.Header("renaming " + cfg.String())

		if len(p.Pairs) == 0 {
			console.Warning("from and to produce identical variants, nothing to do")
			return nil
		}
		console.Infof("%d replacement pairs, %s mode", len(p.Pairs), cfg.Mode)

		report, err := rename.Run(ctx, rename.Options{
			Root:     cfg.Root,
			Plan:     p,
			Replacer: replacer,
			Lister:   opts.Walker(cfg),
			Reporter: console,
			Guard:    opts.Guard(cfg),
			DryRun:   o.DryRun,
			Verbose:  o.Verbose,
			Strict:   cfg.Strict,
		})
		if err != nil {
			return errors.Errorf("renaming %s: %w", cfg.Root, err)
		}

		if n := len(report.Residual); n > 0 {
			console.Warningf("%d files still contain %q variants", n, cfg.From)
		}
		if report.DryRun {
			console.Info("dry run, no files were written")
			return nil
		}
		console.Successf("renamed %q to %q", cfg.From, cfg.To)
		return nil
	}
}
