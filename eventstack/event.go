package eventstack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Event is a ready-made payload type for the stack: a sequence number and
// a name, tagged with a unique ID at creation.
type Event struct {
	ID   uuid.UUID
	Seq  int
	Name string
}

// NewEvent creates an Event with a fresh random ID.
func NewEvent(seq int, name string) Event {
	return Event{ID: uuid.New(), Seq: seq, Name: name}
}

func (e Event) String() string {
	return fmt.Sprintf("%d:%s", e.Seq, e.Name)
}

// Less orders events by sequence number, then name.
func (e Event) Less(other Event) bool {
	if e.Seq != other.Seq {
		return e.Seq < other.Seq
	}
	return e.Name < other.Name
}

// EventCodec renders an Event as "id:seq:name". The name may itself
// contain ':' but, like every payload, must not contain the stack
// delimiter ';'.
type EventCodec struct{}

func (EventCodec) Encode(e Event) (string, error) {
	return e.ID.String() + ":" + strconv.Itoa(e.Seq) + ":" + e.Name, nil
}

func (EventCodec) Decode(s string) (Event, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return Event{}, fmt.Errorf("event: want id:seq:name, got %q", s)
	}
	id, err := uuid.Parse(parts[0])
	if err != nil {
		return Event{}, fmt.Errorf("event: bad id: %w", err)
	}
	seq, err := strconv.Atoi(parts[1])
	if err != nil {
		return Event{}, fmt.Errorf("event: bad seq: %w", err)
	}
	return Event{ID: id, Seq: seq, Name: parts[2]}, nil
}
