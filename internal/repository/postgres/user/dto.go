package user

import "time"

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
	BUCode *string
	Role   *string
}

type SignInRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type RefreshTokenRequest struct {
	AccessToken  string `json:"access_token" form:"access_token"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type GetListResponse struct {
	ID       string     `json:"id"`
	Email    *string    `json:"email"`
	Name     *string    `json:"name"`
	Role     *string    `json:"role"`
	BUCode   *string    `json:"bu_code"`
	HireDate *time.Time `json:"hire_date"`
	Phone    *string    `json:"phone"`
	IsActive *bool      `json:"is_active"`
}

type GetDetailByIdResponse struct {
	ID       string     `json:"id"`
	Email    *string    `json:"email"`
	Name     *string    `json:"name"`
	Role     *string    `json:"role"`
	BUCode   *string    `json:"bu_code"`
	HireDate *time.Time `json:"hire_date"`
	Phone    *string    `json:"phone"`
	IsActive *bool      `json:"is_active"`
}

type CreateRequest struct {
	Email    *string `json:"email"     form:"email"`
	Password *string `json:"password"  form:"password"`
	Name     *string `json:"name"      form:"name"`
	Role     *string `json:"role"      form:"role"`
	BUCode   *string `json:"bu_code"   form:"bu_code"`
	HireDate *string `json:"hire_date" form:"hire_date"`
	Phone    *string `json:"phone"     form:"phone"`
}

type CreateResponse struct {
	ID     string  `json:"id"`
	Email  *string `json:"email"`
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	BUCode *string `json:"bu_code"`
}

type UpdateRequest struct {
	ID       string  `json:"id" form:"id"`
	Name     *string `json:"name"      form:"name"`
	Role     *string `json:"role"      form:"role"`
	BUCode   *string `json:"bu_code"   form:"bu_code"`
	HireDate *string `json:"hire_date" form:"hire_date"`
	Phone    *string `json:"phone"     form:"phone"`
	IsActive *bool   `json:"is_active" form:"is_active"`
	Password *string `json:"password"  form:"password"`
}
