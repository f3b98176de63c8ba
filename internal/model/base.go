package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDBase is embedded by records keyed by a generated string id.
type UUIDBase struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id" bson:"id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (b *UUIDBase) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = GenerateUUID()
	}
	return
}

func GenerateUUID() string {
	return uuid.New().String()
}
