package executor

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/importsteps/pkg/assetdb"
	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/logging"
	"github.com/arthur-debert/importsteps/pkg/matcher"
	"github.com/arthur-debert/importsteps/pkg/steps"
	"github.com/arthur-debert/importsteps/pkg/suffix"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// StepResolver returns the ordered steps for an asset
type StepResolver interface {
	Resolve(id, path string, tags []types.TypeTag) []*steps.Step
}

// Options contains configuration for the controller
type Options struct {
	Resolver StepResolver
	DB       assetdb.Database
	Matcher  *matcher.Matcher
	Suffixes *suffix.Table
	Analysis suffix.AnalysisOptions
	Root     string
	// DebugHooks logs every lifecycle call at info level instead of debug
	DebugHooks bool
	Logger     zerolog.Logger
}

// Controller runs steps for the objects of one import batch at a time
type Controller struct {
	opts      Options
	phase     Phase
	queue     []DeferredItem
	logger    zerolog.Logger
	hookLevel zerolog.Level
}

// New creates an idle controller
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}

	hookLevel := zerolog.DebugLevel
	if opts.DebugHooks {
		hookLevel = zerolog.InfoLevel
	}

	return &Controller{
		opts:      opts,
		phase:     PhaseIdle,
		logger:    logger,
		hookLevel: hookLevel,
	}
}

// Phase returns the current lifecycle state
func (c *Controller) Phase() Phase { return c.phase }

// Pending returns a copy of the deferred queue
func (c *Controller) Pending() []DeferredItem {
	return append([]DeferredItem(nil), c.queue...)
}

// Defer queues step to complete on assetPath when the batch ends. Work
// deferred while EndBatch drains the queue is dropped, so the controller
// is always idle with an empty queue.
func (c *Controller) Defer(step *steps.Step, assetPath string) {
	if c.phase == PhaseBatchFinalizing {
		c.logger.Warn().
			Str("step", step.ID).
			Str("kind", string(step.Kind())).
			Str("asset", assetPath).
			Msg("Cannot defer while the batch is finalizing, dropping")
		return
	}
	c.queue = append(c.queue, DeferredItem{Step: step, AssetPath: assetPath})
	c.logger.Debug().
		Str("step", step.ID).
		Str("kind", string(step.Kind())).
		Str("asset", assetPath).
		Int("queued", len(c.queue)).
		Msg("Deferred step")
}

// BeginBatch starts a batch. Calling it during a batch keeps the queue.
func (c *Controller) BeginBatch() {
	c.hook("begin_batch").Str("phase", c.phase.String()).Msg("Lifecycle hook")
	if c.phase != PhaseIdle {
		c.logger.Warn().Str("phase", c.phase.String()).Int("queued", len(c.queue)).Msg("Batch already running")
	}
	c.phase = PhasePreprocessing
}

// OnPreprocess is called before the host imports assetPath
func (c *Controller) OnPreprocess(assetPath string) {
	if c.phase == PhaseIdle {
		c.BeginBatch()
	}
	c.hook("preprocess").Str("asset", assetPath).Msg("Lifecycle hook")
	c.phase = PhasePreprocessing
}

// OnObjectImported applies every resolved step to obj, in priority order.
// Disabled steps are skipped. A step failure is recorded in its result and
// the remaining steps still run.
func (c *Controller) OnObjectImported(obj *types.ImportedObject, ictx steps.ImportContext) []StepResult {
	if c.phase == PhaseIdle {
		c.BeginBatch()
	}
	c.phase = PhasePostprocessing

	ctx := c.newContext(ictx)
	assetPath := ctx.AssetPath(obj)
	c.hook("postprocess").
		Str("asset", assetPath).
		Str("id", obj.StableID).
		Strs("types", types.Strings(obj.Types)).
		Msg("Lifecycle hook")

	list := c.opts.Resolver.Resolve(obj.StableID, assetPath, obj.Types)
	results := make([]StepResult, 0, len(list))
	for _, step := range list {
		results = append(results, c.apply(ctx, step, obj, assetPath))
	}
	return results
}

// EndBatch completes every deferred step once, in queue order, and returns
// the controller to idle. The queue is always empty afterwards.
func (c *Controller) EndBatch() []StepResult {
	c.phase = PhaseBatchFinalizing
	items := c.queue
	c.queue = nil
	defer func() { c.phase = PhaseIdle }()
	defer logging.Timed(c.logger, "end_batch")()

	c.hook("end_batch").Int("deferred", len(items)).Msg("Lifecycle hook")

	results := make([]StepResult, 0, len(items))
	for _, item := range items {
		ctx := c.newContext(steps.ImportContext{AssetPath: item.AssetPath})
		results = append(results, c.complete(ctx, item))
	}

	if failed := Failed(results); failed > 0 {
		c.logger.Warn().Int("failed", failed).Int("total", len(results)).Msg("Batch finished with failures")
	} else if len(results) > 0 {
		c.logger.Info().Int("total", len(results)).Msg("Batch finished")
	}
	return results
}

func (c *Controller) apply(ctx *steps.Context, step *steps.Step, obj *types.ImportedObject, assetPath string) StepResult {
	start := time.Now()
	result := StepResult{Step: step, AssetPath: assetPath, Phase: PhasePostprocessing}

	if !step.Enabled {
		c.logger.Debug().Str("step", step.ID).Str("asset", assetPath).Msg("Step disabled, skipping")
		result.Skipped = true
		result.Success = true
		return result
	}

	queued := len(c.queue)
	err := guard(step, func() error { return step.Params.Apply(ctx, step, obj) })
	result.Duration = time.Since(start)
	result.Deferred = len(c.queue) > queued

	if err != nil {
		c.logger.Error().
			Err(err).
			Str("step", step.ID).
			Str("kind", string(step.Kind())).
			Str("asset", assetPath).
			Msg("Step failed")
		result.Error = err
		return result
	}

	c.logger.Info().
		Str("step", step.ID).
		Str("kind", string(step.Kind())).
		Str("asset", assetPath).
		Dur("duration", result.Duration).
		Msg("Step applied")
	result.Success = true
	return result
}

func (c *Controller) complete(ctx *steps.Context, item DeferredItem) StepResult {
	start := time.Now()
	result := StepResult{Step: item.Step, AssetPath: item.AssetPath, Phase: PhaseBatchFinalizing}

	err := guard(item.Step, func() error {
		completer, ok := item.Step.Params.(steps.Completer)
		if !ok {
			return errors.Newf(errors.ErrInternal, "step kind %s cannot complete deferred work", item.Step.Kind())
		}
		return completer.Complete(ctx, item.Step, item.AssetPath)
	})
	result.Duration = time.Since(start)

	if err != nil {
		c.logger.Error().
			Err(err).
			Str("step", item.Step.ID).
			Str("asset", item.AssetPath).
			Msg("Deferred step failed")
		result.Error = err
		return result
	}
	result.Success = true
	return result
}

func (c *Controller) newContext(ictx steps.ImportContext) *steps.Context {
	return &steps.Context{
		DB:       c.opts.DB,
		Matcher:  c.opts.Matcher,
		Suffixes: c.opts.Suffixes,
		Analysis: c.opts.Analysis,
		Root:     c.opts.Root,
		Import:   ictx,
		Deferrer: c,
		Logger:   c.logger,
	}
}

func (c *Controller) hook(name string) *zerolog.Event {
	return c.logger.WithLevel(c.hookLevel).Str("hook", name)
}

// guard runs fn and turns a panic into an APPLY error
func guard(step *steps.Step, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf(errors.ErrApply, "step %s panicked: %v", step.ID, r).
				WithDetail("kind", string(step.Kind()))
		}
	}()
	if step.Params == nil {
		return errors.Newf(errors.ErrApply, "step %s has no parameters", step.ID)
	}
	if err := fn(); err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			return errors.Wrap(err, errors.ErrApply, fmt.Sprintf("step %s failed", step.ID))
		}
		return err
	}
	return nil
}
