package limn

// WidgetID identifies a widget for its whole lifetime. IDs are issued by
// NextWidgetID and are never reused, so a stale ID held after removal can
// never alias a newer widget.
type WidgetID uint64

// NoWidget is the null widget ID. It is never issued.
const NoWidget WidgetID = 0

// widgetIDCounter is a plain counter (no atomic — the whole toolkit is
// single-threaded).
var widgetIDCounter WidgetID

// NextWidgetID returns a fresh, monotonically increasing widget ID. It is
// usable before any graph or UI exists, e.g. to pre-allocate a root ID.
func NextWidgetID() WidgetID {
	widgetIDCounter++
	return widgetIDCounter
}
