package algoconfig

// LabelTables maps classifier output indices to display strings, one table
// per classifier variant. Index 0 is the "nothing recognised" entry.
type LabelTables struct {
	ResNet18    []string `json:"resnet18" yaml:"resnet18" toml:"resnet18"`
	MobileNetV2 []string `json:"mobilenetv2" yaml:"mobilenetv2" toml:"mobilenetv2"`
}

const (
	labelNotApplicable = "N/A"
	labelOutOfRange    = "None"
)

// DefaultLabelTables returns the CIFAR-10 table for ResNet18 and the demo
// table shipped with the MobileNetV2 model.
func DefaultLabelTables() LabelTables {
	return LabelTables{
		ResNet18: []string{
			"None", "airplane", "automobile", "bird", "cat", "deer",
			"dog", "frog", "horse", "ship", "truck",
		},
		MobileNetV2: []string{"None", "Class 1", "Class 2"},
	}
}

// WithDefaults fills empty tables from DefaultLabelTables.
func (t LabelTables) WithDefaults() LabelTables {
	d := DefaultLabelTables()
	if len(t.ResNet18) == 0 {
		t.ResNet18 = d.ResNet18
	}
	if len(t.MobileNetV2) == 0 {
		t.MobileNetV2 = d.MobileNetV2
	}
	return t
}

func lookupLabel(table []string, idx int) string {
	if idx < 0 || idx >= len(table) {
		return labelOutOfRange
	}
	return table[idx]
}
