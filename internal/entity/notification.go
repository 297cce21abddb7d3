package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type Notification struct {
	bun.BaseModel `bun:"table:notifications"`

	BasicEntity
	UserID *string    `json:"user_id" bun:"user_id"`
	Title  *string    `json:"title"   bun:"title"`
	Body   *string    `json:"body"    bun:"body"`
	Type   *string    `json:"type"    bun:"type"`
	Link   *string    `json:"link"    bun:"link"`
	IsRead bool       `json:"is_read" bun:"is_read"`
	ReadAt *time.Time `json:"read_at" bun:"read_at"`
}

// PushToken maps a user to a device push token. Delivery itself is
// handled by an external provider consuming the redis queue.
type PushToken struct {
	bun.BaseModel `bun:"table:push_tokens"`

	BasicEntity
	UserID   *string `json:"user_id"  bun:"user_id"`
	Token    *string `json:"token"    bun:"token"`
	Platform *string `json:"platform" bun:"platform"`
}
