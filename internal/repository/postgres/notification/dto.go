package notification

import "time"

type Filter struct {
	Limit      *int
	Offset     *int
	Page       *int
	UnreadOnly *bool
}

type GetListResponse struct {
	ID        string     `json:"id"`
	Title     *string    `json:"title"`
	Body      *string    `json:"body"`
	Type      *string    `json:"type"`
	Link      *string    `json:"link"`
	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt *time.Time `json:"created_at"`
}

type SendRequest struct {
	UserID *string `json:"user_id" form:"user_id"`
	Title  *string `json:"title"   form:"title"`
	Body   *string `json:"body"    form:"body"`
	Type   *string `json:"type"    form:"type"`
	Link   *string `json:"link"    form:"link"`
}

type RegisterTokenRequest struct {
	Token    *string `json:"token"    form:"token"`
	Platform *string `json:"platform" form:"platform"`
}

type UnregisterTokenRequest struct {
	Token *string `json:"token" form:"token"`
}

// pushJob is the payload enqueued for the external delivery worker.
type pushJob struct {
	Tokens []string `json:"tokens"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Link   string   `json:"link,omitempty"`
}
