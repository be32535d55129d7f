package phys2d

// ContactEventKind classifies a contact transition between consecutive
// Step calls.
type ContactEventKind int

const (
	EventEnter ContactEventKind = iota // contact did not exist last Step, exists now
	EventStay                         // contact existed last Step and still exists
	EventExit                         // contact existed last Step, no longer exists
)

// ContactEvent reports one contact transition for a ContactId, computed
// once per Step call (not per substep) by diffing the active contact set
// against the previous Step's set.
type ContactEvent struct {
	ID   ContactId
	Kind ContactEventKind
}

// DrainContactEvents returns and clears the contact events accumulated
// since the last call.
func (w *World) DrainContactEvents() []ContactEvent {
	events := w.pendingEvents
	w.pendingEvents = nil
	return events
}

// diffContactEvents compares this Step's final active contact set against
// the previous Step's, emitting Enter/Stay/Exit events, and returns the
// new active set to be remembered for next time.
func diffContactEvents(contacts []RigidContact, prevActive map[ContactId]bool) ([]ContactEvent, map[ContactId]bool) {
	curActive := make(map[ContactId]bool, len(contacts))
	var events []ContactEvent

	for i := range contacts {
		id := contacts[i].ID
		curActive[id] = true
		if prevActive[id] {
			events = append(events, ContactEvent{ID: id, Kind: EventStay})
		} else {
			events = append(events, ContactEvent{ID: id, Kind: EventEnter})
		}
	}
	for id := range prevActive {
		if !curActive[id] {
			events = append(events, ContactEvent{ID: id, Kind: EventExit})
		}
	}
	return events, curActive
}
