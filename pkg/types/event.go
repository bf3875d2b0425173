package types

// WatchDescriptor identifies a watch inside one notification channel.
// Descriptors are compared by value; watching the same path again
// might produce a different descriptor.
type WatchDescriptor int32

// Event is a decoded inotify record.
type Event struct {
	WD   WatchDescriptor
	Mask Mask
	// Cookie links the IN_MOVED_FROM and IN_MOVED_TO halves of a rename.
	// It is zero for every other event.
	Cookie uint32
	// Name is the entry inside a watched directory the event is about.
	// It is nil when the event is about the watched path itself,
	// or when the name is not valid UTF-8 and NamePolicyLenient is in use.
	Name *string
}

type NamePolicy uint8

const (
	// NamePolicyLenient delivers events with undecodable names
	// with a nil Name.
	NamePolicyLenient NamePolicy = iota // lenient
	// NamePolicyStrict fails the event sequence
	// on the first undecodable name.
	NamePolicyStrict // strict
)
