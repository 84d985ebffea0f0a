package types

// Model describes one selectable model and whether its assets are installed.
type Model struct {
	// Variant identifier, as used by the menu.
	// example: resnet18
	ID string `json:"id" example:"resnet18"`
	// Human-friendly name.
	// example: ResNet18 (CIFAR-10)
	Name string `json:"name" example:"ResNet18 (CIFAR-10)"`
	// Task category.
	// example: classifier
	Category string `json:"category" example:"classifier"`
	// Asset file the native library loads.
	// example: resnet18_cifar10.json
	Asset string `json:"asset" example:"resnet18_cifar10.json"`
	// Absolute path of the asset when found.
	Path string `json:"path,omitempty"`
	// Asset size in bytes when found.
	SizeBytes int64 `json:"size_bytes,omitempty"`
	// Whether the asset exists in the assets directory.
	// example: true
	Available bool `json:"available" example:"true"`
}
