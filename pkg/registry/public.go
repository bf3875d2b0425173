package registry

import (
	"io"

	"github.com/black-desk/fsnotifier/pkg/types"
	. "github.com/black-desk/lib/go/errwrap"
	"golang.org/x/sys/unix"
)

// Watch adds a watch for path.
// Bits of mask not known to inotify are dropped.
func (r *Registry) Watch(path string, mask types.Mask) (wd types.WatchDescriptor, err error) {
	mask = mask.Truncate()

	r.lock.Lock()
	defer r.lock.Unlock()

	defer func() {
		if err == nil {
			return
		}
		err = &ErrWatch{Path: path, Cause: err}
	}()

	if r.closed {
		err = ErrChannelClosed
		return
	}

	var raw int
	err = r.control(func(fd int) (err error) {
		raw, err = unix.InotifyAddWatch(fd, path, uint32(mask))
		return
	})
	if err != nil {
		return
	}

	wd = types.WatchDescriptor(raw)

	if _, exists := r.paths[wd]; !exists {
		r.metrics.Watches.Inc()
	}
	r.paths[wd] = path

	r.log.Debugw("Watch added.",
		"path", path,
		"mask", mask,
		"wd", wd,
	)

	return
}

// Unwatch removes a watch.
// Removing the same descriptor twice fails the second time.
func (r *Registry) Unwatch(wd types.WatchDescriptor) (err error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	defer func() {
		if err == nil {
			return
		}
		err = &ErrUnwatch{WD: wd, Cause: err}
	}()

	if r.closed {
		err = ErrChannelClosed
		return
	}

	err = r.control(func(fd int) (err error) {
		_, err = unix.InotifyRmWatch(fd, uint32(wd))
		return
	})
	if err != nil {
		return
	}

	r.forget(wd)

	r.log.Debugw("Watch removed.",
		"wd", wd,
	)

	return
}

// Path returns the path wd was registered for.
func (r *Registry) Path(wd types.WatchDescriptor) (path string, ok bool) {
	r.lock.Lock()
	defer r.lock.Unlock()

	path, ok = r.paths[wd]
	return
}

// Forget drops the bookkeeping of a watch the kernel removed by itself,
// which it reports with IN_IGNORED.
func (r *Registry) Forget(wd types.WatchDescriptor) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.forget(wd)
}

func (r *Registry) Len() int {
	r.lock.Lock()
	defer r.lock.Unlock()

	return len(r.paths)
}

// Reader returns the byte stream of the notification channel.
// Only one reader may consume it.
func (r *Registry) Reader() io.Reader {
	return r.file
}

// Close closes the notification channel.
// A pending read on Reader returns os.ErrClosed.
func (r *Registry) Close() (err error) {
	defer Wrap(&err, "close notification channel")

	r.lock.Lock()
	defer r.lock.Unlock()

	if r.closed {
		return
	}

	r.closed = true
	r.metrics.Watches.Sub(float64(len(r.paths)))
	clear(r.paths)

	err = r.file.Close()
	if err != nil {
		return
	}

	r.log.Debugw("Notification channel closed.")

	return
}
