package order

import (
	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/status"
)

// StatusChanged is raised once per effective status transition.
type StatusChanged struct {
	ID      kernel.UUID
	OrderID kernel.OrderID
	From    status.Key
	To      status.Key
}
