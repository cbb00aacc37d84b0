package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/status"
)

var (
	// ErrOrderIsNotConstructed is returned for orders not created via NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a host order record.
type Order struct {
	id     kernel.OrderID
	status status.Key
	notes  []Note
	events []StatusChanged

	now           func() time.Time
	isConstructed bool
}

// NewOrder creates an order in the given initial status.
func NewOrder(id kernel.OrderID, initial status.Key) (*Order, error) {
	return RestoreOrder(id, initial, nil)
}

// RestoreOrder rebuilds an order loaded from persistence. No events are raised.
func RestoreOrder(id kernel.OrderID, current status.Key, notes []Note) (*Order, error) {
	o := &Order{
		notes:         append([]Note(nil), notes...),
		now:           time.Now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setStatus(current),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the host order id.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// Status returns the current status key.
func (o *Order) Status() status.Key {
	return o.status
}

// Notes returns a copy of the note history, oldest first.
func (o *Order) Notes() []Note {
	return append([]Note(nil), o.notes...)
}

// UpdateStatus moves the order to the target status.
//
// known is the host's current status list; a target missing from it is replaced
// by status.Pending. When the status does not change only the note is recorded.
// Otherwise a single note combining note and the change summary is added and a
// StatusChanged event is raised.
func (o *Order) UpdateStatus(to status.Key, note string, known status.List) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}

	if !known.Has(to) {
		to = status.Pending
	}

	note = strings.TrimSpace(note)
	if to == o.status {
		if note != "" {
			o.notes = append(o.notes, newNote(note, o.now()))
		}
		return nil
	}

	from := o.status
	o.status = to

	summary := fmt.Sprintf("Order status changed from %s to %s.", labelOf(known, from), labelOf(known, to))
	o.notes = append(o.notes, newNote(strings.TrimSpace(note+" "+summary), o.now()))
	o.events = append(o.events, StatusChanged{
		ID:      kernel.NewUUID(),
		OrderID: o.id,
		From:    from,
		To:      to,
	})

	return nil
}

// PullEvents returns and clears the events raised since the last call.
func (o *Order) PullEvents() []StatusChanged {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setStatus(key status.Key) error {
	if err := key.Validate(); err != nil {
		return err
	}
	o.status = key
	return nil
}

func labelOf(known status.List, key status.Key) string {
	if label, ok := known.Label(key); ok {
		return label
	}
	return string(key.Slug())
}
