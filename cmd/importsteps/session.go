package importsteps

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/importsteps/pkg/config"
	"github.com/arthur-debert/importsteps/pkg/core"
	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/logging"
	"github.com/arthur-debert/importsteps/pkg/paths"
	"github.com/arthur-debert/importsteps/pkg/types"
	"github.com/arthur-debert/importsteps/pkg/ui"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	project    string
	format     string
	configFile string
	sets       []string
}

// session is one command invocation against a project
type session struct {
	engine   *core.Engine
	renderer ui.Renderer
}

func (g *globalOptions) overrides() (map[string]interface{}, error) {
	if len(g.sets) == 0 {
		return nil, nil
	}
	out := make(map[string]interface{}, len(g.sets))
	for _, kv := range g.sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrBadParam, kv)
		}
		out[key] = value
	}
	return out, nil
}

func (g *globalOptions) newRenderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(g.format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// open loads the configuration and the project state
func (g *globalOptions) open(cmd *cobra.Command) (*session, error) {
	renderer, err := g.newRenderer(cmd)
	if err != nil {
		return nil, err
	}

	overrides, err := g.overrides()
	if err != nil {
		return nil, err
	}
	project, err := paths.ExpandHome(g.project)
	if err != nil {
		return nil, err
	}
	userFile, err := paths.ExpandHome(g.configFile)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(config.Options{
		ProjectRoot: project,
		UserFile:    userFile,
		Overrides:   overrides,
	})
	if err != nil {
		return nil, err
	}

	engine, err := core.Initialize(core.Options{Config: cfg})
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("cmd")
	for _, problem := range engine.LoadProblems() {
		logger.Warn().Err(problem).Msg("Stored step not loaded")
		if err := renderer.RenderMessage(fmt.Sprintf(MsgLoadProblem, problem)); err != nil {
			return nil, err
		}
	}

	return &session{engine: engine, renderer: renderer}, nil
}

// parseTypes reads type tags from flag values, rejecting unknown ones
func parseTypes(h *types.Hierarchy, raw []string) ([]types.TypeTag, error) {
	var values []string
	for _, r := range raw {
		for _, v := range strings.Split(r, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	tags, unknown := h.ParseTypeTags(values)
	if len(unknown) > 0 {
		return nil, errors.Newf(errors.ErrInvalidInput, MsgErrUnknownTypes, strings.Join(unknown, ", ")).
			WithDetail("known", types.Strings(h.Tags()))
	}
	return tags, nil
}

// parseParams reads name=value pairs
func parseParams(raw []string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrBadParam, kv)
		}
		out[strings.TrimSpace(key)] = value
	}
	return out, nil
}

// targetFlags are the flags that build a step target
type targetFlags struct {
	id       string
	path     string
	types    []string
	subAsset string
}

func (t *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&t.id, "id", "", MsgFlagID)
	cmd.Flags().StringVar(&t.path, "path", "", MsgFlagPath)
	cmd.Flags().StringSliceVarP(&t.types, "types", "t", nil, MsgFlagTypes)
	cmd.Flags().StringVar(&t.subAsset, "sub-asset", "", MsgFlagSubAsset)
	cmd.MarkFlagsMutuallyExclusive("id", "path")
}

func (t *targetFlags) build(h *types.Hierarchy) (types.Target, error) {
	tags, err := parseTypes(h, t.types)
	if err != nil {
		return types.Target{}, err
	}

	var target types.Target
	switch {
	case t.id != "" && t.path != "":
		return target, errors.New(errors.ErrInvalidInput, MsgErrBothTargets)
	case t.id != "":
		target = types.NewIDTarget(t.id, tags...)
	case t.path != "":
		target = types.NewPatternTarget(t.path, tags...)
	default:
		return target, errors.New(errors.ErrInvalidInput, MsgErrNoTarget)
	}
	target.SubAssetMatch = t.subAsset
	return target, nil
}
