package driver

// EventStatus describes where a file is in its formatting lifecycle.
type EventStatus uint8

const (
	StatusFormatting EventStatus = iota
	StatusDone
	StatusUnchanged
	StatusError
)

// Event is one progress notification from a formatting run.
type Event struct {
	Path   string
	Status EventStatus
}

func (o FormatOptions) notify(path string, status EventStatus) {
	if o.Events != nil {
		o.Events <- Event{Path: path, Status: status}
	}
}
