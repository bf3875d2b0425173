package config

import (
	"fmt"
)

func (w *Watch) String() string {
	return fmt.Sprintf("watch [ path: %s | %s ]", w.Path, w.Mask)
}
