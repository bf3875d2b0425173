// Created by interfacer; DO NOT EDIT

package interfaces

import (
	"io"

	"github.com/black-desk/fsnotifier/pkg/types"
)

// Registry is an interface generated for "github.com/black-desk/fsnotifier/pkg/registry.Registry".
type Registry interface {
	Close() error
	Forget(types.WatchDescriptor)
	Len() int
	Path(types.WatchDescriptor) (string, bool)
	Reader() io.Reader
	Unwatch(types.WatchDescriptor) error
	Watch(string, types.Mask) (types.WatchDescriptor, error)
}
