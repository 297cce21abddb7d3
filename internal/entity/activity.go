package entity

import (
	"encoding/json"

	"github.com/uptrace/bun"
)

// ActivityLog is the best-effort audit record written next to primary
// mutations. Writing it never fails the main operation.
type ActivityLog struct {
	bun.BaseModel `bun:"table:activity_logs"`

	BasicEntity
	UserID      *string         `json:"user_id"      bun:"user_id"`
	ActionType  *string         `json:"action_type"  bun:"action_type"`
	EntityType  *string         `json:"entity_type"  bun:"entity_type"`
	EntityID    *string         `json:"entity_id"    bun:"entity_id"`
	EntityTitle *string         `json:"entity_title" bun:"entity_title"`
	Metadata    json.RawMessage `json:"metadata"     bun:"metadata,type:jsonb"`
}
