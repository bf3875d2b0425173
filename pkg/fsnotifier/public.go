package fsnotifier

import (
	"github.com/black-desk/fsnotifier/pkg/registry"
	"github.com/black-desk/fsnotifier/pkg/types"
	. "github.com/black-desk/lib/go/errwrap"
)

// Watch adds a watch for path and returns its descriptor.
// Unknown bits of mask are ignored.
// Errors are *registry.ErrWatch.
func (w *Watcher) Watch(path string, mask types.Mask) (wd types.WatchDescriptor, err error) {
	if w.isClosed() {
		err = &registry.ErrWatch{Path: path, Cause: ErrClosed}
		return
	}

	return w.registry.Watch(path, mask)
}

// Unwatch removes a watch.
// Events of the watch already queued in the kernel are still delivered,
// followed by an IN_IGNORED event.
// Errors are *registry.ErrUnwatch.
func (w *Watcher) Unwatch(wd types.WatchDescriptor) (err error) {
	if w.isClosed() {
		err = &registry.ErrUnwatch{WD: wd, Cause: ErrClosed}
		return
	}

	return w.registry.Unwatch(wd)
}

// Path returns the path wd was registered for.
func (w *Watcher) Path(wd types.WatchDescriptor) (string, bool) {
	return w.registry.Path(wd)
}

// Len returns the number of watches the watcher holds.
func (w *Watcher) Len() int {
	return w.registry.Len()
}

// On starts delivering events to handler.
// Only one handler can be registered on a watcher.
// Errors are *ErrRegistration.
func (w *Watcher) On(handler Handler) (err error) {
	defer w.wrapRegistration(&err)

	if handler == nil {
		err = ErrHandlerMissing
		return
	}

	err = w.start(handler.callee())
	return
}

// OnEvent is like On,
// but the handler also receives the watch descriptor of each event.
func (w *Watcher) OnEvent(handler EventHandler) (err error) {
	defer w.wrapRegistration(&err)

	if handler == nil {
		err = ErrHandlerMissing
		return
	}

	err = w.start(handler.callee())
	return
}

// Close closes the notification channel.
// A registered handler receives one last failure shaped call.
// Events not yet handed to it are dropped.
// Close does not wait for it, so the handler may call Close itself.
func (w *Watcher) Close() (err error) {
	defer Wrap(&err, "close watcher")

	w.lock.Lock()
	if w.closed {
		w.lock.Unlock()
		return
	}
	w.closed = true
	if w.pool == nil {
		close(w.done)
	}
	w.lock.Unlock()

	w.stop()

	err = w.registry.Close()
	if err != nil {
		return
	}

	w.log.Debugw("Watcher closed.")

	return
}

// Wait waits until the dispatch loop and the handler finished,
// and returns the failure that ended the loop.
// After Close that failure wraps os.ErrClosed.
// It returns nil if no handler was ever registered.
// Wait must not be called from the handler.
func (w *Watcher) Wait() error {
	<-w.done
	return w.loopErr
}

// Done is closed when Wait would return.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}
