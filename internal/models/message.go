package models

import "time"

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message is one turn of conversation history. Size is the UTF-8 byte
// length of Content at write time; it is what storage accounting sums, so
// it is persisted rather than recomputed.
type Message struct {
	ID        uint   `gorm:"primaryKey"`
	ClientID  string `gorm:"index;not null"`
	Role      string `gorm:"type:varchar(8);not null;check:role IN ('user','bot')"`
	Content   string `gorm:"type:text;not null"`
	Size      int64  `gorm:"not null"`
	CreatedAt time.Time
	ExpiresAt *time.Time `gorm:"index"`
}
