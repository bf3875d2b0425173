// Created by interfacer; DO NOT EDIT

package interfaces

import (
	"iter"

	"github.com/black-desk/fsnotifier/pkg/types"
)

// EventSource is an interface generated for "github.com/black-desk/fsnotifier/pkg/decoder.Decoder".
type EventSource interface {
	All() iter.Seq2[*types.Event, error]
	Next() (*types.Event, error)
}
