package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type AppUser struct {
	bun.BaseModel `bun:"table:app_users"`

	BasicEntity
	Email    *string    `json:"email"      bun:"email"`
	Password *string    `json:"-"          bun:"password"`
	Name     *string    `json:"name"       bun:"name"`
	Role     *string    `json:"role"       bun:"role"`
	BUCode   *string    `json:"bu_code"    bun:"bu_code"`
	HireDate *time.Time `json:"hire_date"  bun:"hire_date"`
	Phone    *string    `json:"phone"      bun:"phone"`
	IsActive *bool      `json:"is_active"  bun:"is_active"`
}
