package menu

// Ballot is the transient selection: at most one checked option per group.
// An empty value means nothing in that group is checked.
type Ballot struct {
	Model      Option `json:"model,omitempty"`
	Classifier Option `json:"classifier,omitempty"`
	Style      Option `json:"style,omitempty"`
	Shader     Option `json:"shader,omitempty"`
	Precision  Option `json:"precision,omitempty"`
}

// check marks o and, through the group slot, unchecks its siblings.
func (b *Ballot) check(o Option) {
	switch o.Group() {
	case GroupModel:
		b.Model = o
	case GroupClassifier:
		b.Classifier = o
	case GroupStyle:
		b.Style = o
	case GroupShader:
		b.Shader = o
	case GroupPrecision:
		b.Precision = o
	}
}

// IsChecked reports whether o is checked in its group. Submenu entries keep
// their checked state while the submenu is hidden.
func (b Ballot) IsChecked(o Option) bool {
	switch o.Group() {
	case GroupModel:
		return b.Model == o
	case GroupClassifier:
		return b.Classifier == o
	case GroupStyle:
		return b.Style == o
	case GroupShader:
		return b.Shader == o
	case GroupPrecision:
		return b.Precision == o
	}
	return false
}

// selected reports whether a submenu variant is checked and its parent is the active model.
func (b Ballot) selected(o Option) bool {
	switch o.Group() {
	case GroupClassifier:
		return b.Model == OptClassifier && b.Classifier == o
	case GroupStyle:
		return b.Model == OptStyleTransfer && b.Style == o
	}
	return b.IsChecked(o)
}

func (b Ballot) concreteModelSelected() bool {
	switch b.Model {
	case OptSpatialDenoiser, OptYOLOv3:
		return true
	case OptClassifier:
		return b.Classifier != ""
	case OptStyleTransfer:
		return b.Style != ""
	}
	return false
}

// View is the state derived from a Ballot that a UI renders.
type View struct {
	Ballot                   Ballot `json:"ballot"`
	ClassifierChoicesVisible bool   `json:"classifier_choices_visible"`
	StyleChoicesVisible      bool   `json:"style_choices_visible"`
	ShaderChoiceVisible      bool   `json:"shader_choice_visible"`
	FragmentShaderEnabled    bool   `json:"fragment_shader_enabled"`
	ConcreteModelSelected    bool   `json:"concrete_model_selected"`
	RunEnabled               bool   `json:"run_enabled"`
}

func (v View) IsChecked(o Option) bool { return v.Ballot.IsChecked(o) }

func (v View) Visible(o Option) bool {
	switch o.Group() {
	case GroupClassifier:
		return v.ClassifierChoicesVisible
	case GroupStyle:
		return v.StyleChoicesVisible
	case GroupShader:
		return v.ShaderChoiceVisible
	}
	return true
}

func (v View) Enabled(o Option) bool {
	switch o {
	case OptFragmentShader:
		return v.FragmentShaderEnabled
	case OptRun:
		return v.RunEnabled
	}
	return true
}

// Checked lists the checked options in display order.
func (v View) Checked() []Option {
	var out []Option
	for _, o := range menuOrder {
		if v.Ballot.IsChecked(o) {
			out = append(out, o)
		}
	}
	return out
}

// recompute derives visibility and enablement from b. It also applies the
// shader rules, which may check an option, so it returns the adjusted ballot.
func recompute(b Ballot, shaderChoice bool) (Ballot, View) {
	v := View{
		ClassifierChoicesVisible: b.Model == OptClassifier,
		StyleChoicesVisible:      b.Model == OptStyleTransfer,
		ShaderChoiceVisible:      shaderChoice,
		ConcreteModelSelected:    b.concreteModelSelected(),
	}
	if shaderChoice {
		// Fragment shaders for MobileNetV2 take too long to compile.
		if b.selected(OptMobileNetV2) {
			v.FragmentShaderEnabled = false
			b.Shader = OptComputeShader
		} else {
			v.FragmentShaderEnabled = true
		}
		if v.ConcreteModelSelected && b.Shader == "" {
			if b.Model == OptSpatialDenoiser {
				b.Shader = OptFragmentShader
			} else {
				b.Shader = OptComputeShader
			}
		}
	}
	v.RunEnabled = v.ConcreteModelSelected
	v.Ballot = b
	return b, v
}
