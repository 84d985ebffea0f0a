package registry

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"snnd/internal/algoconfig"
	"snnd/internal/common/fsutil"
	"snnd/pkg/types"
)

// DirError reports an unusable assets directory. Code is the HTTP status
// the API answers with.
type DirError struct {
	Path string
	Code int
	Err  error
}

func (e *DirError) Error() string   { return fmt.Sprintf("assets dir %s: %v", e.Path, e.Err) }
func (e *DirError) Unwrap() error   { return e.Err }
func (e *DirError) StatusCode() int { return e.Code }

// Entry ties a concrete variant to the asset file the native library loads.
type Entry struct {
	ID       string
	Name     string
	Category algoconfig.Category
	Asset    string
}

var catalog = []Entry{
	{string(algoconfig.DenoiserSpatial), "Spatial denoiser", algoconfig.CategoryDenoiser, "spatialDenoise.json"},
	{string(algoconfig.ClassifierResNet18), "ResNet18 (CIFAR-10)", algoconfig.CategoryClassifier, "resnet18_cifar10.json"},
	{string(algoconfig.ClassifierMobileNetV2), "MobileNetV2", algoconfig.CategoryClassifier, "mobilenetV2.json"},
	{string(algoconfig.DetectionYOLOv3), "YOLOv3 tiny", algoconfig.CategoryDetector, "yolov3-tiny_layers.json"},
	{string(algoconfig.StyleCandy), "Candy", algoconfig.CategoryStyleTransfer, "candy-9_simplified.json"},
	{string(algoconfig.StyleMosaic), "Mosaic", algoconfig.CategoryStyleTransfer, "mosaic-9_simplified.json"},
	{string(algoconfig.StylePointilism), "Pointilism", algoconfig.CategoryStyleTransfer, "pointilism-9_simplified.json"},
	{string(algoconfig.StyleRainPrincess), "Rain princess", algoconfig.CategoryStyleTransfer, "rain-princess-9_simplified.json"},
	{string(algoconfig.StyleUdnie), "Udnie", algoconfig.CategoryStyleTransfer, "udnie-9_simplified.json"},
}

// Catalog returns the known variants in menu order.
func Catalog() []Entry { return append([]Entry(nil), catalog...) }

// LoadDir checks which catalog assets exist in dir. An empty dir reports
// every model as unavailable; a dir that does not exist is an error.
func LoadDir(dir string) ([]types.Model, error) {
	models := make([]types.Model, 0, len(catalog))
	if dir == "" {
		for _, e := range catalog {
			models = append(models, toModel(e, "", false))
		}
		return models, nil
	}
	abs, err := fsutil.Resolve(dir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, &DirError{Path: abs, Code: http.StatusNotFound, Err: err}
	}
	if !fsutil.IsDir(abs) {
		return nil, &DirError{Path: abs, Code: http.StatusUnprocessableEntity, Err: errors.New("not a directory")}
	}
	for _, e := range catalog {
		p := filepath.Join(abs, e.Asset)
		if size, ok := fsutil.FileSize(p); ok {
			m := toModel(e, p, true)
			m.SizeBytes = size
			models = append(models, m)
		} else {
			models = append(models, toModel(e, "", false))
		}
	}
	return models, nil
}

func toModel(e Entry, path string, ok bool) types.Model {
	return types.Model{
		ID:        e.ID,
		Name:      e.Name,
		Category:  string(e.Category),
		Asset:     e.Asset,
		Path:      path,
		Available: ok,
	}
}
