// Created by interfacer; DO NOT EDIT

package interfaces

import (
	"context"

	"github.com/black-desk/fsnotifier/pkg/boundary"
)

// Function is an interface generated for "github.com/black-desk/fsnotifier/pkg/boundary.Function".
type Function interface {
	Call(context.Context, boundary.Call, boundary.CallMode) error
	Done() <-chan struct{}
	Release()
	Run(context.Context) error
}
