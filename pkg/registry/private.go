package registry

import (
	"syscall"

	"github.com/black-desk/fsnotifier/pkg/types"
)

func (r *Registry) control(fn func(fd int) error) (err error) {
	var conn syscall.RawConn

	conn, err = r.file.SyscallConn()
	if err != nil {
		return
	}

	var fnErr error
	err = conn.Control(func(fd uintptr) {
		fnErr = fn(int(fd))
	})
	if err != nil {
		return
	}

	err = fnErr
	return
}

func (r *Registry) forget(wd types.WatchDescriptor) {
	if _, ok := r.paths[wd]; !ok {
		return
	}

	delete(r.paths, wd)
	r.metrics.Watches.Dec()
}
