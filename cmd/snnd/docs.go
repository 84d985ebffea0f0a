package main

// General API documentation for swaggo. Run `swag init -g cmd/snnd/docs.go` to regenerate docs.
//
// @title           snnd API
// @version         1.0
// @description     HTTP API for selecting and applying on-device neural network models.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
