package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/rebrand/cmd/rebrand/opts"
	"github.com/walteh/rebrand/pkg/log"
	"github.com/walteh/rebrand/pkg/naming"
	"github.com/walteh/rebrand/pkg/plan"
	"github.com/walteh/rebrand/pkg/rename"
)

// NewScanCmd creates a new scan command
func NewScanCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Report files that still contain a variant of --from",
		Long: `Scan walks the tree with the same ignore policy as a rename and
reports every file containing a casing variant of --from. With --strict
any match is an error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := o.Resolve(ctx, false)
			if err != nil {
				return err
			}

			from, err := naming.BuildVariants(cfg.From)
			if err != nil {
				return errors.Errorf("building variants: %w", err)
			}

			console := log.New(o.Stdout, *zerolog.Ctx(ctx))
			console.Header("scanning for " + cfg.From)

			report, err := rename.Scan(ctx, rename.Options{
				Root:     cfg.Root,
				Plan:     &plan.Result{From: from},
				Lister:   opts.Walker(cfg),
				Reporter: console,
				Verbose:  o.Verbose,
				Strict:   cfg.Strict,
			})
			if err != nil {
				return errors.Errorf("scanning %s: %w", cfg.Root, err)
			}

			if len(report.Residual) == 0 {
				console.Successf("no variants of %q found", cfg.From)
				return nil
			}
			console.Warningf("%d occurrences in %d files", report.TotalOccurrences, len(report.Residual))
			return nil
		},
	}

	return cmd
}
