package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a storefront customer known to billing. Rows are created and
// updated from payment provider webhooks; the anonymous shop flow never
// writes here.
type Account struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email            string    `gorm:"column:email;uniqueIndex;not null"`
	StripeCustomerID *string   `gorm:"column:stripe_customer_id;uniqueIndex"`
	Pro              bool      `gorm:"column:pro;not null;default:false"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name regardless of gorm's pluralization rules.
func (Account) TableName() string { return "accounts" }
