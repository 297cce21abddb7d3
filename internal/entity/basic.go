package entity

import "time"

// BasicEntity carries the id and audit columns shared by every table.
// Ids are UUID strings generated by the repositories on insert.
type BasicEntity struct {
	ID        string     `json:"id" bun:"id,pk"`
	CreatedAt time.Time  `json:"created_at" bun:"created_at,nullzero,default:now()"`
	CreatedBy *string    `json:"created_by,omitempty" bun:"created_by"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" bun:"updated_at"`
	UpdatedBy *string    `json:"updated_by,omitempty" bun:"updated_by"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" bun:"deleted_at"`
	DeletedBy *string    `json:"deleted_by,omitempty" bun:"deleted_by"`
}
