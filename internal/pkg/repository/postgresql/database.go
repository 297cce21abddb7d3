// Package postgresql owns the bun database handle shared by every
// repository, plus the claim and validation helpers they all use.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"erp/backend/foundation/web"
	"erp/backend/internal/auth"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

type Config struct {
	Username   string
	Password   string
	Host       string
	Port       string
	Name       string
	DisableTLS bool
	Debug      bool
}

type Database struct {
	*bun.DB

	validate *validator.Validate
}

func NewDB(cfg Config) *Database {
	sslMode := "require"
	if cfg.DisableTLS {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Name, sslMode,
	)

	sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqlDB, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	return &Database{
		DB:       db,
		validate: validator.New(),
	}
}

// CheckClaims returns the authenticated claims from ctx. When roles are
// given the caller must hold one of them.
func (d Database) CheckClaims(ctx context.Context, roles ...string) (auth.Claims, error) {
	claims, err := auth.GetClaims(ctx)
	if err != nil {
		return auth.Claims{}, web.NewRequestError(err, http.StatusUnauthorized)
	}

	if len(roles) > 0 && !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden)
	}

	return claims, nil
}

// ValidateStruct verifies the named fields of s are set and then runs
// tag validation over the whole struct.
func (d Database) ValidateStruct(s interface{}, requiredFields ...string) error {
	v := reflect.ValueOf(s).Elem()

	var missing []string
	for _, name := range requiredFields {
		f := v.FieldByName(name)
		if f.IsValid() && f.IsZero() {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return web.NewRequestError(errors.Errorf("required fields are missing: %s", strings.Join(missing, ", ")), http.StatusBadRequest)
	}

	if err := d.validate.Struct(s); err != nil {
		return web.NewRequestError(errors.Wrap(err, "validating request"), http.StatusBadRequest)
	}

	return nil
}

// DeleteRow soft deletes one row by id, stamping the acting user.
func (d Database) DeleteRow(ctx context.Context, table, id string) error {
	claims, err := d.CheckClaims(ctx)
	if err != nil {
		return err
	}

	q := d.NewUpdate().
		Table(table).
		Where("deleted_at IS NULL AND id = ?", id).
		Set("deleted_at = ?", time.Now()).
		Set("deleted_by = ?", claims.UserID)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrapf(err, "deleting from %s", table), http.StatusInternalServerError)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return web.NewRequestError(errors.New("row not found"), http.StatusNotFound)
	}

	return nil
}
