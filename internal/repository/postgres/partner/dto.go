package partner

type Filter struct {
	Limit    *int
	Offset   *int
	Page     *int
	Search   *string
	Category *string
}

type GetListResponse struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	IsActive    *bool   `json:"is_active"`
}

type GetDetailByIdResponse struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Memo        *string `json:"memo"`
	IsActive    *bool   `json:"is_active"`
}

type CreateRequest struct {
	Name        *string `json:"name"         form:"name"`
	Category    *string `json:"category"     form:"category"`
	ContactName *string `json:"contact_name" form:"contact_name"`
	Phone       *string `json:"phone"        form:"phone"`
	Email       *string `json:"email"        form:"email"`
	Memo        *string `json:"memo"         form:"memo"`
}

type CreateResponse struct {
	ID       string  `json:"id"`
	Name     *string `json:"name"`
	Category *string `json:"category"`
}

type UpdateRequest struct {
	ID          string  `json:"id" form:"id"`
	Name        *string `json:"name"         form:"name"`
	Category    *string `json:"category"     form:"category"`
	ContactName *string `json:"contact_name" form:"contact_name"`
	Phone       *string `json:"phone"        form:"phone"`
	Email       *string `json:"email"        form:"email"`
	Memo        *string `json:"memo"         form:"memo"`
	IsActive    *bool   `json:"is_active"    form:"is_active"`
}
