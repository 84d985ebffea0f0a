package algoconfig

import "errors"

// ErrNoShaderChoice is returned when a shader is set for a category that has none.
var ErrNoShaderChoice = errors.New("category has no shader choice")
