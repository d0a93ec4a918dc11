// events.go defines the event types for extension notifications.
//
// Separated from extension.go to isolate the event system. Events let
// extensions react to object changes without modifying core logic.
//
// Events are fire-and-forget notifications, not approval requests.
// Extensions observe after the fact and cannot veto an operation.

package extension

// EventType identifies the kind of event.
type EventType string

const (
	EventObjectWrite   EventType = "object:write"
	EventObjectDelete  EventType = "object:delete"
	EventObjectRestore EventType = "object:restore"
	EventPublish       EventType = "publish:publish"
	EventUnpublish     EventType = "publish:unpublish"
	EventTagAdd        EventType = "tag:add"
	EventTagRemove     EventType = "tag:remove"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	EventPath() string
}

// ObjectWriteEvent is fired after an object is created or its content saved.
type ObjectWriteEvent struct {
	Path     string
	Key      string
	Revision int
	Author   string
	Created  bool
}

func (e ObjectWriteEvent) EventType() EventType { return EventObjectWrite }
func (e ObjectWriteEvent) EventPath() string    { return e.Path }

// ObjectDeleteEvent is fired after an object is soft-deleted.
type ObjectDeleteEvent struct {
	Path string
}

func (e ObjectDeleteEvent) EventType() EventType { return EventObjectDelete }
func (e ObjectDeleteEvent) EventPath() string    { return e.Path }

// ObjectRestoreEvent is fired after an object is restored.
type ObjectRestoreEvent struct {
	Path string
}

func (e ObjectRestoreEvent) EventType() EventType { return EventObjectRestore }
func (e ObjectRestoreEvent) EventPath() string    { return e.Path }

// PublishEvent is fired after a successful publish or unpublish. Conflicts
// and failed saves do not fire.
type PublishEvent struct {
	Path      string
	Key       string
	Revision  int
	Author    string
	Published bool // true=published, false=unpublished
}

func (e PublishEvent) EventType() EventType {
	if e.Published {
		return EventPublish
	}
	return EventUnpublish
}
func (e PublishEvent) EventPath() string { return e.Path }

// TagEvent is fired after a raw tag-value is added or removed.
type TagEvent struct {
	Path  string
	Tag   []string
	Added bool // true=added, false=removed
}

func (e TagEvent) EventType() EventType {
	if e.Added {
		return EventTagAdd
	}
	return EventTagRemove
}
func (e TagEvent) EventPath() string { return e.Path }

// EventHandler is implemented by extensions that want to receive events.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}
