package menu

import (
	"sync"

	"github.com/rs/zerolog"

	"snnd/internal/algoconfig"
)

// ConfigWriter is the part of the configuration store the coordinator commits into.
type ConfigWriter interface {
	SetDenoiserAlgorithm(algoconfig.DenoiserAlgorithm)
	SetClassifierAlgorithm(algoconfig.ClassifierAlgorithm)
	SetDetectionAlgorithm(algoconfig.DetectionAlgorithm)
	SetStyleTransfer(algoconfig.StyleTransfer)
	SetShaderType(algoconfig.Category, algoconfig.ShaderType) error
	SetPrecision(algoconfig.Precision)
}

// Config tunes a Coordinator.
type Config struct {
	// HideShaderChoice removes the shader options, as on backends with a
	// single shader pathway.
	HideShaderChoice bool
	Logger           zerolog.Logger
	// OnCommit runs after every commit, outside the coordinator lock.
	OnCommit func()
}

// Result describes how a selection was handled.
type Result struct {
	Handled bool `json:"handled"`
	// Ran is set when the run action committed the ballot.
	Ran bool `json:"ran"`
	// KeepOpen asks the UI to leave the menu open for further adjustments.
	KeepOpen bool `json:"keep_open"`
	View     View `json:"view"`
}

// Coordinator turns menu selections into a ballot and commits the ballot
// into the configuration store on run. Selections are serialized.
type Coordinator struct {
	mu           sync.Mutex
	store        ConfigWriter
	shaderChoice bool
	log          zerolog.Logger
	onCommit     func()

	ballot Ballot
	view   View
}

// New returns a coordinator with FP32 checked and nothing else selected.
func New(store ConfigWriter, cfg Config) *Coordinator {
	c := &Coordinator{
		store:        store,
		shaderChoice: !cfg.HideShaderChoice,
		log:          cfg.Logger,
		onCommit:     cfg.OnCommit,
		ballot:       Ballot{Precision: OptFP32},
	}
	c.ballot, c.view = recompute(c.ballot, c.shaderChoice)
	return c
}

// View returns the current derived menu state.
func (c *Coordinator) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Select applies one menu event. Every event recomputes the view before the
// run action is allowed to commit.
func (c *Coordinator) Select(o Option) (Result, error) {
	c.mu.Lock()
	res, err := c.selectLocked(o)
	c.mu.Unlock()
	if err != nil {
		c.log.Debug().Str("option", string(o)).Err(err).Msg("menu select rejected")
		return res, err
	}
	c.log.Debug().Str("option", string(o)).Bool("run_enabled", res.View.RunEnabled).Msg("menu select")
	if res.Ran && c.onCommit != nil {
		c.onCommit()
	}
	return res, nil
}

func (c *Coordinator) selectLocked(o Option) (Result, error) {
	if _, ok := optionTable[o]; !ok {
		return Result{View: c.view}, unknownOption(string(o))
	}
	if !c.view.Visible(o) {
		return Result{View: c.view}, ErrOptionHidden
	}
	if o != OptRun && !c.view.Enabled(o) {
		return Result{View: c.view}, ErrOptionDisabled
	}
	if o != OptRun {
		c.ballot.check(o)
	}
	c.ballot, c.view = recompute(c.ballot, c.shaderChoice)
	if o != OptRun {
		return Result{Handled: true, KeepOpen: true, View: c.view}, nil
	}
	if !c.view.RunEnabled {
		return Result{View: c.view}, ErrRunDisabled
	}
	c.commitLocked()
	return Result{Handled: true, Ran: true, View: c.view}, nil
}

// commitLocked writes the ballot into the store. Models are tested in
// priority order (spatial denoiser, classifiers, detection, styles) and the
// first selected one is committed; the other categories are reset so that
// at most one category is active. Only the variant under the selected model
// item is written: a variant left checked in a hidden submenu is ignored.
func (c *Coordinator) commitLocked() {
	b := c.ballot
	shader, ok := shaderOptions[b.Shader]
	if !ok {
		shader = algoconfig.ShaderFragment
	}

	var (
		active     algoconfig.Category
		denoiser   = algoconfig.DenoiserNone
		classifier = algoconfig.ClassifierNone
		detection  = algoconfig.DetectionNone
		style      = algoconfig.StyleNone
	)
	switch {
	case b.selected(OptSpatialDenoiser):
		active, denoiser = algoconfig.CategoryDenoiser, algoconfig.DenoiserSpatial
	case b.selected(OptResNet18), b.selected(OptMobileNetV2):
		active, classifier = algoconfig.CategoryClassifier, classifierOptions[b.Classifier]
	case b.selected(OptYOLOv3):
		active, detection = algoconfig.CategoryDetector, algoconfig.DetectionYOLOv3
	case b.Model == OptStyleTransfer && b.Style != "":
		active, style = algoconfig.CategoryStyleTransfer, styleOptions[b.Style]
	}

	c.store.SetDenoiserAlgorithm(denoiser)
	c.store.SetClassifierAlgorithm(classifier)
	c.store.SetDetectionAlgorithm(detection)
	c.store.SetStyleTransfer(style)
	if active.HasShaderChoice() {
		if err := c.store.SetShaderType(active, shader); err != nil {
			c.log.Error().Err(err).Str("category", string(active)).Msg("set shader")
		}
	}
	precision, ok := precisionOptions[b.Precision]
	if !ok || precision != algoconfig.FP32 {
		precision = algoconfig.FP16
	}
	c.store.SetPrecision(precision)

	ev := c.log.Info().Str("category", string(active)).Str("precision", string(precision))
	if active.HasShaderChoice() {
		ev = ev.Str("shader", string(shader))
	}
	ev.Msg("menu commit")
}
