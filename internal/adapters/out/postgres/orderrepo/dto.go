package orderrepo

import (
	"time"

	"notpickedup/internal/core/domain/model/kernel"
	"notpickedup/internal/core/domain/model/order"
	"notpickedup/internal/core/domain/model/status"

	"github.com/google/uuid"
)

// OrderDTO is the host order row. Only the status column is touched by
// status updates; the rest of the order record is out of scope.
type OrderDTO struct {
	ID     int64     `gorm:"primaryKey;autoIncrement:false"`
	Status string    `gorm:"type:varchar(64);index;not null"`
	Notes  []NoteDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// NoteDTO is one private order note.
type NoteDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   int64     `gorm:"index;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (NoteDTO) TableName() string {
	return "order_notes"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	notes := aggregate.Notes()
	dtoNotes := make([]NoteDTO, 0, len(notes))
	for _, n := range notes {
		dtoNotes = append(dtoNotes, NoteDTO{
			ID:        n.ID.Bytes(),
			OrderID:   aggregate.ID().Int64(),
			Content:   n.Content,
			CreatedAt: n.CreatedAt,
		})
	}

	return OrderDTO{
		ID:     aggregate.ID().Int64(),
		Status: aggregate.Status().String(),
		Notes:  dtoNotes,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	notes := make([]order.Note, 0, len(dto.Notes))
	for _, n := range dto.Notes {
		id, err := kernel.UUIDFromBytes(n.ID[:])
		if err != nil {
			return nil, err
		}
		notes = append(notes, order.Note{ID: id, Content: n.Content, CreatedAt: n.CreatedAt})
	}

	return order.RestoreOrder(kernel.OrderID(dto.ID), status.Key(dto.Status), notes)
}
