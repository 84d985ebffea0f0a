package menu

import "snnd/internal/algoconfig"

// Option identifies one selectable menu entry.
type Option string

const (
	// Model group: one task at a time.
	OptSpatialDenoiser Option = "spatial_denoiser"
	OptClassifier      Option = "classifier"
	OptYOLOv3          Option = "yolov3"
	OptStyleTransfer   Option = "style_transfer"

	// Classifier submenu.
	OptResNet18    Option = "resnet18"
	OptMobileNetV2 Option = "mobilenetv2"

	// Style transfer submenu.
	OptCandy        Option = "style_candy"
	OptMosaic       Option = "style_mosaic"
	OptPointilism   Option = "style_pointilism"
	OptRainPrincess Option = "style_rain_princess"
	OptUdnie        Option = "style_udnie"

	OptComputeShader  Option = "compute_shader"
	OptFragmentShader Option = "fragment_shader"

	OptFP32 Option = "fp32"
	OptFP16 Option = "fp16"

	// OptRun commits the selection.
	OptRun Option = "run"
)

// Group is an exclusivity group of options.
type Group string

const (
	GroupModel      Group = "model"
	GroupClassifier Group = "classifier_choices"
	GroupStyle      Group = "style_transfer_choices"
	GroupShader     Group = "shader"
	GroupPrecision  Group = "precision"
	GroupAction     Group = "action"
)

type optionInfo struct {
	group Group
	label string
}

var optionTable = map[Option]optionInfo{
	OptSpatialDenoiser: {GroupModel, "Spatial denoiser"},
	OptClassifier:      {GroupModel, "Classifier"},
	OptYOLOv3:          {GroupModel, "YOLOv3 detection"},
	OptStyleTransfer:   {GroupModel, "Style transfer"},
	OptResNet18:        {GroupClassifier, "ResNet18"},
	OptMobileNetV2:     {GroupClassifier, "MobileNetV2"},
	OptCandy:           {GroupStyle, "Candy"},
	OptMosaic:          {GroupStyle, "Mosaic"},
	OptPointilism:      {GroupStyle, "Pointilism"},
	OptRainPrincess:    {GroupStyle, "Rain princess"},
	OptUdnie:           {GroupStyle, "Udnie"},
	OptComputeShader:   {GroupShader, "Compute shader"},
	OptFragmentShader:  {GroupShader, "Fragment shader"},
	OptFP32:            {GroupPrecision, "FP32"},
	OptFP16:            {GroupPrecision, "FP16"},
	OptRun:             {GroupAction, "Run model"},
}

// menuOrder is the display order of all options.
var menuOrder = []Option{
	OptSpatialDenoiser, OptClassifier, OptResNet18, OptMobileNetV2, OptYOLOv3,
	OptStyleTransfer, OptCandy, OptMosaic, OptPointilism, OptRainPrincess, OptUdnie,
	OptComputeShader, OptFragmentShader, OptFP32, OptFP16, OptRun,
}

// Options returns every option in display order.
func Options() []Option { return append([]Option(nil), menuOrder...) }

// ParseOption validates a raw option name.
func ParseOption(s string) (Option, error) {
	o := Option(s)
	if _, ok := optionTable[o]; !ok {
		return "", unknownOption(s)
	}
	return o, nil
}

func (o Option) Group() Group { return optionTable[o].group }

func (o Option) Label() string { return optionTable[o].label }

var styleOptions = map[Option]algoconfig.StyleTransfer{
	OptCandy:        algoconfig.StyleCandy,
	OptMosaic:       algoconfig.StyleMosaic,
	OptPointilism:   algoconfig.StylePointilism,
	OptRainPrincess: algoconfig.StyleRainPrincess,
	OptUdnie:        algoconfig.StyleUdnie,
}

var classifierOptions = map[Option]algoconfig.ClassifierAlgorithm{
	OptResNet18:    algoconfig.ClassifierResNet18,
	OptMobileNetV2: algoconfig.ClassifierMobileNetV2,
}

var shaderOptions = map[Option]algoconfig.ShaderType{
	OptComputeShader:  algoconfig.ShaderCompute,
	OptFragmentShader: algoconfig.ShaderFragment,
}

var precisionOptions = map[Option]algoconfig.Precision{
	OptFP32: algoconfig.FP32,
	OptFP16: algoconfig.FP16,
}
