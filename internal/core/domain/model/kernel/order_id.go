package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"notpickedup/internal/pkg/errs"
	"notpickedup/internal/pkg/intval"
)

// OrderID is the host platform's reference to an order record. The extension
// never interprets it beyond passing it back to the host's order store.
type OrderID int64

// NewOrderID validates that id is positive.
func NewOrderID(id int64) (OrderID, error) {
	orderID := OrderID(id)
	if err := orderID.Validate(); err != nil {
		return 0, err
	}
	return orderID, nil
}

// OrderIDFromString parses a decimal order reference as submitted by the admin list form.
func OrderIDFromString(s string) (OrderID, error) {
	raw, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%q is not a number", s))
	}
	return NewOrderID(raw)
}

// OrderIDFromReference reads a submitted order reference without validating it.
// Non-numeric input reads as 0. The result may fail Validate, in which case
// it never resolves to an order.
func OrderIDFromReference(s string) OrderID {
	return OrderID(intval.Parse(s))
}

// OrderIDs converts raw identifiers, stopping at the first invalid one.
func OrderIDs(raw ...int64) ([]OrderID, error) {
	ids := make([]OrderID, 0, len(raw))
	for _, r := range raw {
		id, err := NewOrderID(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Validate reports whether the id can refer to a stored order.
func (id OrderID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not greater than 0", int64(id)))
	}
	return nil
}

// Int64 returns the raw identifier.
func (id OrderID) Int64() int64 {
	return int64(id)
}

func (id OrderID) String() string {
	return strconv.FormatInt(int64(id), 10)
}
