package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/rebrand/cmd/rebrand/opts"
	"github.com/walteh/rebrand/pkg/log"
	"github.com/walteh/rebrand/pkg/plan"
)

// NewPlanCmd creates a new plan command
func NewPlanCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the replacement plan without touching any file",
		Long: `Plan derives every casing variant of --from and --to and prints the
pairs in the order they are applied, longest first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.Resolve(cmd.Context(), true)
			if err != nil {
				return err
			}

			p, err := plan.Build(cfg.From, cfg.To)
			if err != nil {
				return errors.Errorf("building plan: %w", err)
			}

			fmt.Fprint(o.Stdout, log.RenderPlan(p.Pairs))
			return nil
		},
	}

	return cmd
}
