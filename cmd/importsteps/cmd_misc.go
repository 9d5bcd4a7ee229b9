package importsteps

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/importsteps/internal/version"
	"github.com/arthur-debert/importsteps/pkg/config"
	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/logging"
	"github.com/arthur-debert/importsteps/pkg/ui/display"
)

func newKindsCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "kinds",
		Short:   MsgKindsShort,
		GroupID: "steps",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := g.newRenderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderResult(display.NewKindList())
		},
	}
}

func newNukeCmd(g *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "nuke",
		Short:   MsgNukeShort,
		Long:    MsgNukeLong,
		GroupID: "maintenance",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New(errors.ErrInvalidInput, MsgErrNukeConfirm)
			}
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			if err := s.engine.Nuke(); err != nil {
				return err
			}
			return s.renderer.RenderMessage(MsgNuked)
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, MsgFlagYes)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat+"\n", version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newConfigCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "defaults",
		Short: MsgDefaultsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultContent())
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "paths",
		Short: MsgPathsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user := g.configFile
			if user == "" {
				user = config.UserConfigPath()
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "user:    %s\n", user)
			_, _ = fmt.Fprintf(out, "project: %s\n", strings.Join(config.ProjectFiles, ", "))
			_, err := fmt.Fprintf(out, "log:     %s\n", logging.DefaultLogFile())
			return err
		},
	})

	return cmd
}
