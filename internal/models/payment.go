package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusCreated   = "created"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusConsumed  = "consumed"
)

// Payment tracks a Stripe payment intent from creation to settlement. The
// membership upgrade only fires against a row the webhook has marked
// succeeded, never on the client's say-so.
type Payment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IntentID    string    `gorm:"size:255;not null;uniqueIndex" json:"intentId"`
	Email       string    `gorm:"size:255;not null;index" json:"email"`
	AmountCents int64     `gorm:"not null" json:"amountCents"`
	Currency    string    `gorm:"size:10;default:'usd'" json:"currency"`
	Status      string    `gorm:"size:20;not null;default:'created';index" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
