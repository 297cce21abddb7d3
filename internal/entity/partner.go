package entity

import "github.com/uptrace/bun"

type Partner struct {
	bun.BaseModel `bun:"table:partners"`

	BasicEntity
	Name        *string `json:"name"         bun:"name"`
	Category    *string `json:"category"     bun:"category"`
	ContactName *string `json:"contact_name" bun:"contact_name"`
	Phone       *string `json:"phone"        bun:"phone"`
	Email       *string `json:"email"        bun:"email"`
	Memo        *string `json:"memo"         bun:"memo"`
	IsActive    *bool   `json:"is_active"    bun:"is_active"`
}
