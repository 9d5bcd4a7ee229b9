package importsteps

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/logging"
	"github.com/arthur-debert/importsteps/pkg/steps"
	"github.com/arthur-debert/importsteps/pkg/types"
	"github.com/arthur-debert/importsteps/pkg/ui/display"
)

func kindCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, k := range steps.Kinds() {
		names = append(names, string(k))
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// renderStep shows one step under title
func (s *session) renderStep(title string, step *steps.Step) error {
	universe := s.engine.Hierarchy().Tags()
	return s.renderer.RenderResult(display.NewStepList(title, []*steps.Step{step}, universe))
}

// finishEdit turns the disabled-on-edit error into a notice; the step was
// still stored
func (s *session) finishEdit(step *steps.Step, err error) error {
	if err == nil {
		return nil
	}
	if errors.IsErrorCode(err, errors.ErrConfigValid) && !step.Enabled {
		return s.renderer.RenderMessage(fmt.Sprintf(MsgStepDisabled, step.ID))
	}
	return err
}

func newAddCmd(g *globalOptions) *cobra.Command {
	var (
		target   targetFlags
		priority int
		params   []string
		disabled bool
	)

	cmd := &cobra.Command{
		Use:               "add <kind>",
		Short:             MsgAddShort,
		Long:              MsgAddLong,
		Example:           MsgAddExample,
		GroupID:           "steps",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: kindCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}

			fields, err := parseParams(params)
			if err != nil {
				return err
			}
			kind := steps.Kind(args[0])
			p, err := steps.DecodeParams(kind, fields)
			if err != nil {
				return err
			}
			t, err := target.build(s.engine.Hierarchy())
			if err != nil {
				return err
			}

			step := steps.New(t, p)
			step.Priority = priority
			step.Enabled = !disabled

			if err := s.finishEdit(step, s.engine.AddStep(step)); err != nil {
				return err
			}
			logger := logging.GetLogger("cmd.add")
			logger.Info().Str("step", step.ID).Str("kind", string(kind)).Msg("Step added")
			return s.renderStep(fmt.Sprintf(MsgStepAdded, step.ID), step)
		},
	}

	target.register(cmd)
	cmd.Flags().IntVar(&priority, "priority", 0, MsgFlagPriority)
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, MsgFlagParam)
	cmd.Flags().BoolVar(&disabled, "disabled", false, MsgFlagDisabled)
	return cmd
}

func newRemoveCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <step-id>",
		Aliases: []string{"rm"},
		Short:   MsgRemoveShort,
		GroupID: "steps",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			step, err := s.engine.FindStep(args[0])
			if err != nil {
				return err
			}
			if err := s.engine.RemoveStep(step); err != nil {
				return err
			}
			return s.renderer.RenderMessage(fmt.Sprintf(MsgStepRemoved, step.ID))
		},
	}
}

func newEditCmd(g *globalOptions) *cobra.Command {
	var (
		target   targetFlags
		priority int
		params   []string
		enable   bool
		disable  bool
	)

	cmd := &cobra.Command{
		Use:     "edit <step-id>",
		Short:   MsgEditShort,
		Long:    MsgEditLong,
		GroupID: "steps",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if enable && disable {
				return errors.New(errors.ErrInvalidInput, MsgErrEnableBoth)
			}
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			step, err := s.engine.FindStep(args[0])
			if err != nil {
				return err
			}
			h := s.engine.Hierarchy()
			flags := cmd.Flags()

			switch {
			case flags.Changed("id") || flags.Changed("path"):
				t, err := target.build(h)
				if err != nil {
					return err
				}
				if !flags.Changed("types") {
					t.Types = step.Target.Types
				}
				if !flags.Changed("sub-asset") {
					t.SubAssetMatch = step.Target.SubAssetMatch
				}
				step.Target = t
			default:
				if flags.Changed("types") {
					tags, err := parseTypes(h, target.types)
					if err != nil {
						return err
					}
					step.Target.SetAllTypes(tags)
				}
				if flags.Changed("sub-asset") {
					step.Target.SubAssetMatch = target.subAsset
				}
			}

			if len(params) > 0 {
				fields, err := steps.EncodeParams(step.Params)
				if err != nil {
					return err
				}
				updates, err := parseParams(params)
				if err != nil {
					return err
				}
				for k, v := range updates {
					fields[k] = v
				}
				p, err := steps.DecodeParams(step.Kind(), fields)
				if err != nil {
					return err
				}
				step.Params = p
			}
			if flags.Changed("priority") {
				step.Priority = priority
			}
			if enable {
				step.Enabled = true
			}
			if disable {
				step.Enabled = false
			}

			if err := s.finishEdit(step, s.engine.UpdateStep(step)); err != nil {
				return err
			}
			return s.renderStep(fmt.Sprintf(MsgStepUpdated, step.ID), step)
		},
	}

	target.register(cmd)
	cmd.Flags().IntVar(&priority, "priority", 0, MsgFlagPriority)
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, MsgFlagParam)
	cmd.Flags().BoolVar(&enable, "enable", false, MsgFlagEnable)
	cmd.Flags().BoolVar(&disable, "disable", false, MsgFlagDisable)
	return cmd
}

func newListCmd(g *globalOptions) *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "steps",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			universe := s.engine.Hierarchy().Tags()
			if folder != "" {
				list := s.engine.StepsForFolder(folder)
				return s.renderer.RenderResult(display.NewStepList("Steps from "+folder, list, universe))
			}
			return s.renderer.RenderResult(display.NewStepList("Steps", s.engine.AllSteps(), universe))
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", MsgFlagFolder)
	return cmd
}

func newResolveCmd(g *globalOptions) *cobra.Command {
	var (
		id       string
		path     string
		rawTypes []string
	)

	cmd := &cobra.Command{
		Use:     "resolve [path]",
		Short:   MsgResolveShort,
		Long:    MsgResolveLong,
		GroupID: "steps",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				path = args[0]
			}
			if id == "" && path == "" {
				return errors.New(errors.ErrInvalidInput, MsgErrNoTarget)
			}

			s, err := g.open(cmd)
			if err != nil {
				return err
			}
			h := s.engine.Hierarchy()
			tags, err := parseTypes(h, rawTypes)
			if err != nil {
				return err
			}
			if len(tags) == 0 {
				tags = h.Tags()
			}

			list := s.engine.Resolve(id, path, tags)

			title := "Steps for " + describeAsset(id, path, tags)
			return s.renderer.RenderResult(display.NewStepList(title, list, h.Tags()))
		},
	}

	cmd.Flags().StringVar(&id, "id", "", MsgFlagID)
	cmd.Flags().StringVar(&path, "path", "", MsgFlagPath)
	cmd.Flags().StringSliceVarP(&rawTypes, "types", "t", nil, MsgFlagResolveAs)
	return cmd
}

func describeAsset(id, path string, tags []types.TypeTag) string {
	t := types.Target{StableID: id, PathPattern: path, Types: tags}
	switch {
	case id != "" && path != "":
		return fmt.Sprintf("%s (id %s)", path, id)
	case id != "":
		return t.String()
	default:
		return path
	}
}
