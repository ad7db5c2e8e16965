//go:build tools

// Package tools keeps mockgen tracked in go.mod for `go generate`.
package chatlive

import (
	_ "go.uber.org/mock/mockgen"
)
