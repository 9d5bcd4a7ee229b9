package importsteps

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/importsteps/pkg/ui/display"
)

func newSuffixCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "suffix",
		Short:   MsgSuffixShort,
		Long:    MsgSuffixLong,
		GroupID: "maintenance",
	}
	cmd.AddCommand(newUnifyCmd(g), newSeparatorCmd(g), newRestoreDefaultsCmd(g))
	return cmd
}

func newUnifyCmd(g *globalOptions) *cobra.Command {
	var caseSensitive bool

	cmd := &cobra.Command{
		Use:   "unify <name>...",
		Short: MsgUnifyShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			table := s.engine.Suffixes()
			ignoreCase := !caseSensitive
			view := display.NewSuffixView(table.Separator, ignoreCase, args, func(name string) string {
				return table.Resolve(name, ignoreCase)
			})
			return s.renderer.RenderResult(view)
		},
	}

	cmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, MsgFlagCaseSens)
	return cmd
}

func newSeparatorCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "separator <sep>",
		Short: MsgSeparatorShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			if err := s.engine.SetSuffixSeparator(args[0]); err != nil {
				return err
			}
			return s.renderer.RenderMessage(fmt.Sprintf(MsgSeparatorSet, args[0]))
		},
	}
}

func newRestoreDefaultsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore-defaults",
		Short: MsgRestoreShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			if err := s.engine.RestoreDefaultSuffixes(); err != nil {
				return err
			}
			return s.renderer.RenderMessage(MsgSuffixesRestored)
		},
	}
}
