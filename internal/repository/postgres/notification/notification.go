package notification

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"erp/backend/foundation/web"
	"erp/backend/internal/entity"
	"erp/backend/internal/pkg/permission"
	"erp/backend/internal/pkg/repository/postgresql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// PushQueueKey is the redis list the external delivery worker consumes.
const PushQueueKey = "push:queue"

type Repository struct {
	*postgresql.Database
	redis *redis.Client
}

func NewRepository(database *postgresql.Database, redisClient *redis.Client) *Repository {
	return &Repository{Database: database, redis: redisClient}
}

// GetList returns the caller's own notifications, newest first.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := fmt.Sprintf(`
			WHERE
				n.deleted_at IS NULL AND n.user_id = '%s'
			`, claims.UserID)

	if filter.UnreadOnly != nil && *filter.UnreadOnly {
		whereQuery += " AND n.is_read = false"
	}

	orderQuery := "ORDER BY n.created_at desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}

	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}

	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			n.id,
			n.title,
			n.body,
			n.type,
			n.link,
			n.is_read,
			n.read_at,
			n.created_at
		FROM notifications n
		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting notifications"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.Title,
			&detail.Body,
			&detail.Type,
			&detail.Link,
			&detail.IsRead,
			&detail.ReadAt,
			&detail.CreatedAt); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning notifications"), http.StatusInternalServerError)
		}
		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(n.id)
		FROM notifications n
		%s
	`, whereQuery)

	count := 0

	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning notification count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) UnreadCount(ctx context.Context) (int, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	query := fmt.Sprintf(`
		SELECT count(id) FROM notifications
		WHERE user_id = '%s' AND is_read = false AND deleted_at IS NULL
	`, claims.UserID)

	if err = r.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, web.NewRequestError(errors.Wrap(err, "scanning unread count"), http.StatusInternalServerError)
	}

	return count, nil
}

// MarkRead marks one of the caller's notifications read.
func (r Repository) MarkRead(ctx context.Context, id string) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	res, err := r.NewUpdate().Table("notifications").
		Where("id = ? AND user_id = ? AND deleted_at IS NULL", id, claims.UserID).
		Set("is_read = true").
		Set("read_at = now()").
		Set("updated_at = now()").
		Set("updated_by = ?", claims.UserID).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "marking notification read"), http.StatusBadRequest)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return web.NewRequestError(errors.New("notification not found"), http.StatusNotFound)
	}

	return nil
}

func (r Repository) MarkAllRead(ctx context.Context) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	_, err = r.NewUpdate().Table("notifications").
		Where("user_id = ? AND is_read = false AND deleted_at IS NULL", claims.UserID).
		Set("is_read = true").
		Set("read_at = now()").
		Set("updated_at = now()").
		Set("updated_by = ?", claims.UserID).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "marking notifications read"), http.StatusBadRequest)
	}

	return nil
}

// Send stores a notification row and enqueues a push job for the
// recipient's devices. The enqueue is best-effort: a dead redis or a
// user with no tokens never fails the send.
func (r Repository) Send(ctx context.Context, request SendRequest) (string, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return "", err
	}

	actor := permission.FromClaims(claims)
	if !permission.IsManager(actor) {
		return "", web.NewRequestError(errors.New("forbidden"), http.StatusForbidden)
	}

	if err := r.ValidateStruct(&request, "UserID", "Title"); err != nil {
		return "", err
	}

	return r.send(ctx, claims.UserID, request)
}

// Notify is the internal entry point used by other flows (request
// approval, auto-checkout). No role check; the caller already passed its
// own authorization. Errors are logged and swallowed.
func (r Repository) Notify(ctx context.Context, actorID string, request SendRequest) {
	if _, err := r.send(ctx, actorID, request); err != nil {
		log.Println("notification: sending:", err)
	}
}

func (r Repository) send(ctx context.Context, actorID string, request SendRequest) (string, error) {
	detail := entity.Notification{
		BasicEntity: entity.BasicEntity{
			ID:        uuid.NewString(),
			CreatedAt: time.Now(),
			CreatedBy: &actorID,
		},
		UserID: request.UserID,
		Title:  request.Title,
		Body:   request.Body,
		Type:   request.Type,
		Link:   request.Link,
	}

	if _, err := r.NewInsert().Model(&detail).Exec(ctx); err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "creating notification"), http.StatusBadRequest)
	}

	r.enqueuePush(ctx, detail)

	return detail.ID, nil
}

func (r Repository) enqueuePush(ctx context.Context, notification entity.Notification) {
	if r.redis == nil || notification.UserID == nil {
		return
	}

	query := fmt.Sprintf(`
		SELECT token FROM push_tokens
		WHERE user_id = '%s' AND deleted_at IS NULL
	`, strings.Replace(*notification.UserID, "'", "''", -1))

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		log.Println("notification: selecting push tokens:", err)
		return
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err = rows.Scan(&token); err != nil {
			log.Println("notification: scanning push tokens:", err)
			return
		}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return
	}

	job := pushJob{Tokens: tokens}
	if notification.Title != nil {
		job.Title = *notification.Title
	}
	if notification.Body != nil {
		job.Body = *notification.Body
	}
	if notification.Link != nil {
		job.Link = *notification.Link
	}

	payload, err := json.Marshal(job)
	if err != nil {
		log.Println("notification: marshaling push job:", err)
		return
	}

	if err = r.redis.LPush(ctx, PushQueueKey, payload).Err(); err != nil {
		log.Println("notification: enqueueing push job:", err)
	}
}

// RegisterToken upserts a device token for the caller.
func (r Repository) RegisterToken(ctx context.Context, request RegisterTokenRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "Token"); err != nil {
		return err
	}

	platform := ""
	if request.Platform != nil {
		platform = strings.Replace(*request.Platform, "'", "''", -1)
	}
	token := strings.Replace(*request.Token, "'", "''", -1)

	query := fmt.Sprintf(`
		INSERT INTO push_tokens (id, user_id, token, platform, created_at, created_by)
		VALUES ('%s', '%s', '%s', '%s', now(), '%s')
		ON CONFLICT (token)
		DO UPDATE SET user_id = EXCLUDED.user_id, platform = EXCLUDED.platform, deleted_at = null, updated_at = now()
	`, uuid.NewString(), claims.UserID, token, platform, claims.UserID)

	if _, err = r.ExecContext(ctx, query); err != nil {
		return web.NewRequestError(errors.Wrap(err, "registering push token"), http.StatusBadRequest)
	}

	return nil
}

// UnregisterToken soft-deletes the caller's device token.
func (r Repository) UnregisterToken(ctx context.Context, request UnregisterTokenRequest) error {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "Token"); err != nil {
		return err
	}

	res, err := r.NewUpdate().Table("push_tokens").
		Where("token = ? AND user_id = ? AND deleted_at IS NULL", *request.Token, claims.UserID).
		Set("deleted_at = now()").
		Set("deleted_by = ?", claims.UserID).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "unregistering push token"), http.StatusBadRequest)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return web.NewRequestError(sql.ErrNoRows, http.StatusNotFound)
	}

	return nil
}
