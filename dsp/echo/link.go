package echo

// Link is a double-buffered mailbox between two neighbouring units.
//
// The producer writes with Send during a frame; the consumer reads with
// Receive and always sees what was sent during the previous frame. Flip
// runs once per frame, after every unit has been processed.
type Link[T any] struct {
	slots    [2]T
	producer int
}

// Send stores m in the producer slot.
func (l *Link[T]) Send(m T) {
	l.slots[l.producer] = m
}

// Receive returns the consumer slot. The caller must not modify it.
func (l *Link[T]) Receive() *T {
	return &l.slots[1-l.producer]
}

// Flip publishes the producer slot.
func (l *Link[T]) Flip() {
	l.producer = 1 - l.producer
}

// prime fills both slots with m, so the consumer reads m on the next
// frame whatever the producer index is.
func (l *Link[T]) prime(m T) {
	l.slots[0], l.slots[1] = m, m
}

// Reset empties both slots.
func (l *Link[T]) Reset() {
	var zero T
	l.slots[0], l.slots[1] = zero, zero
	l.producer = 0
}
