package boundary

import (
	"github.com/sourcegraph/conc/panics"
)

func (f *Function) invoke(call Call) {
	var catcher panics.Catcher
	catcher.Try(func() {
		f.callee(call)
	})

	recovered := catcher.Recovered()
	if recovered == nil {
		return
	}

	f.metrics.HandlerPanics.Inc()

	f.log.Errorw("Callee panicked.",
		"panic", recovered.Value,
		"stack", string(recovered.Stack),
	)
}
