package algoconfig

// Category is one of the task families the native library can run.
type Category string

const (
	CategoryDenoiser      Category = "denoiser"
	CategoryClassifier    Category = "classifier"
	CategoryDetector      Category = "detector"
	CategoryStyleTransfer Category = "style_transfer"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{CategoryDenoiser, CategoryClassifier, CategoryDetector, CategoryStyleTransfer}
}

// HasShaderChoice reports whether the category runs on a selectable shader backend.
func (c Category) HasShaderChoice() bool {
	switch c {
	case CategoryDenoiser, CategoryClassifier, CategoryDetector:
		return true
	default:
		return false
	}
}

type DenoiserAlgorithm string

const (
	DenoiserNone    DenoiserAlgorithm = "none"
	DenoiserAI      DenoiserAlgorithm = "ai_denoiser"
	DenoiserSpatial DenoiserAlgorithm = "spatial_denoiser"
)

type ClassifierAlgorithm string

const (
	ClassifierNone        ClassifierAlgorithm = "none"
	ClassifierResNet18    ClassifierAlgorithm = "resnet18"
	ClassifierMobileNetV2 ClassifierAlgorithm = "mobilenetv2"
)

type DetectionAlgorithm string

const (
	DetectionNone   DetectionAlgorithm = "none"
	DetectionYOLOv3 DetectionAlgorithm = "yolov3"
)

type StyleTransfer string

const (
	StyleNone         StyleTransfer = "none"
	StyleCandy        StyleTransfer = "candy"
	StyleMosaic       StyleTransfer = "mosaic"
	StylePointilism   StyleTransfer = "pointilism"
	StyleRainPrincess StyleTransfer = "rain_princess"
	StyleUdnie        StyleTransfer = "udnie"
)

// StyleTransfers lists the concrete style variants in menu order.
func StyleTransfers() []StyleTransfer {
	return []StyleTransfer{StyleCandy, StyleMosaic, StylePointilism, StyleRainPrincess, StyleUdnie}
}

// ShaderType selects the GPU pathway a model executes on. The empty value
// means no shader has been picked yet.
type ShaderType string

const (
	ShaderCompute  ShaderType = "compute_shader"
	ShaderFragment ShaderType = "fragment_shader"
)

// Precision is the global numeric precision for inference.
type Precision string

const (
	FP32 Precision = "fp32"
	FP16 Precision = "fp16"
)

// ChangeState tracks whether the backend still has to pick up a configuration change.
//
//	unchanged --set (value differs)--> pending_apply --MarkApplied--> applied --ClearChangeFlag--> unchanged
type ChangeState string

const (
	Unchanged    ChangeState = "unchanged"
	PendingApply ChangeState = "pending_apply"
	Applied      ChangeState = "applied"
)

// Snapshot is a read-only copy of the store content handed to the backend.
type Snapshot struct {
	Denoiser         DenoiserAlgorithm
	DenoiserShader   ShaderType
	Classifier       ClassifierAlgorithm
	ClassifierShader ShaderType
	Detection        DetectionAlgorithm
	DetectionShader  ShaderType
	StyleTransfer    StyleTransfer
	Precision        Precision
	ClassifierIndex  int
	Change           ChangeState
	// Revision increases every time a setter changes a value.
	Revision uint64
}

// ActiveCategory returns the first category holding a concrete algorithm.
func (s Snapshot) ActiveCategory() (Category, bool) {
	switch {
	case s.Denoiser != DenoiserNone:
		return CategoryDenoiser, true
	case s.Classifier != ClassifierNone:
		return CategoryClassifier, true
	case s.Detection != DetectionNone:
		return CategoryDetector, true
	case s.StyleTransfer != StyleNone:
		return CategoryStyleTransfer, true
	}
	return "", false
}

// ShaderFor returns the configured shader of a category; style transfer has none.
func (s Snapshot) ShaderFor(c Category) (ShaderType, bool) {
	switch c {
	case CategoryDenoiser:
		return s.DenoiserShader, true
	case CategoryClassifier:
		return s.ClassifierShader, true
	case CategoryDetector:
		return s.DetectionShader, true
	}
	return "", false
}
