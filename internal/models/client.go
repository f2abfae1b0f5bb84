package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is one chatbot tenant. AdminInfo holds the free-text knowledge
// block that replies are matched against; StorageLimitMB caps how much
// conversation history plus profile text the tenant may persist.
type Client struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ClientID string    `gorm:"uniqueIndex;not null"`
	Name     string    `gorm:"default:'New Client'"`

	AdminInfo string `gorm:"type:text"`
	Fallback  string `gorm:"default:'Sorry, I don''t understand.'"`

	// APIKey is the prepared AI switch. The reply engine ignores it for now.
	APIKey string

	RetentionDays  int     `gorm:"default:365"`
	StorageLimitMB float64 `gorm:"default:1024"`

	BotName    string `gorm:"default:'Chatbot'"`
	Avatar     string
	Domain     string
	WidgetCode string `gorm:"type:text"`

	// Tokens is a reserved usage counter, not consumed by the reply engine.
	Tokens int64 `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
