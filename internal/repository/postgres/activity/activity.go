// Package activity appends best-effort audit records. A failed write is
// logged and swallowed so it never fails the operation being audited.
package activity

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"erp/backend/internal/auth"
	"erp/backend/internal/entity"
	"erp/backend/internal/pkg/repository/postgresql"

	"github.com/google/uuid"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

type Entry struct {
	UserID      string
	ActionType  string
	EntityType  string
	EntityID    string
	EntityTitle string
	Metadata    map[string]interface{}
}

// Log appends one audit record.
func (r Repository) Log(ctx context.Context, entry Entry) {
	var metadata json.RawMessage
	if entry.Metadata != nil {
		raw, err := json.Marshal(entry.Metadata)
		if err != nil {
			log.Println("activity: marshaling metadata:", err)
		} else {
			metadata = raw
		}
	}

	detail := entity.ActivityLog{
		BasicEntity: entity.BasicEntity{
			ID:        uuid.NewString(),
			CreatedAt: time.Now(),
		},
		Metadata: metadata,
	}
	if entry.UserID != "" {
		detail.UserID = &entry.UserID
		detail.CreatedBy = &entry.UserID
	}
	if entry.ActionType != "" {
		detail.ActionType = &entry.ActionType
	}
	if entry.EntityType != "" {
		detail.EntityType = &entry.EntityType
	}
	if entry.EntityID != "" {
		detail.EntityID = &entry.EntityID
	}
	if entry.EntityTitle != "" {
		detail.EntityTitle = &entry.EntityTitle
	}

	if _, err := r.NewInsert().Model(&detail).Exec(ctx); err != nil {
		log.Println("activity: inserting log:", err)
	}
}

// GetList returns the newest audit records, admin only.
func (r Repository) GetList(ctx context.Context, limit int) ([]entity.ActivityLog, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var list []entity.ActivityLog

	err := r.NewSelect().Model(&list).
		Where("deleted_at IS NULL").
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return list, nil
}
