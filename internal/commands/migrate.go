package commands

import (
	"fmt"
	"log"

	"erp/backend/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "Create extension pgcrypto for UUID generation",
		Query:       `CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	},
	{
		Index:       2,
		Description: "Create type user_role",
		Query: `
        CREATE TYPE "user_role" AS ENUM ('admin', 'leader', 'manager', 'member', 'viewer', 'artist');`,
	},
	{
		Index:       3,
		Description: "Create table: app_users",
		Query: `
        CREATE TABLE IF NOT EXISTS app_users (
            id uuid primary key default gen_random_uuid(),
            email text not null unique,
            password text not null,
            name text,
            role user_role not null default 'member',
            bu_code text,
            hire_date date,
            phone text,
            is_active boolean default true,
            created_at timestamptz default now(),
            created_by uuid references app_users(id),
            updated_at timestamptz,
            updated_by uuid references app_users(id),
            deleted_at timestamptz,
            deleted_by uuid references app_users(id)
        );`,
	},
	{
		Index:       4,
		Description: "Create admin user with email: admin@company.local, password: 1",
		Query: `
        INSERT INTO app_users(email, role, bu_code, password)
        SELECT 'admin@company.local', 'admin', 'HEAD', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT email FROM app_users WHERE email = 'admin@company.local');
        `,
	},
	{
		Index:       5,
		Description: "Create table: attendance_logs",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance_logs (
            id uuid primary key default gen_random_uuid(),
            user_id uuid not null references app_users(id),
            work_date date not null,
            check_in_at timestamptz,
            check_out_at timestamptz,
            status text not null default 'present',
            is_modified boolean not null default false,
            is_verified_location boolean not null default false,
            is_overtime boolean not null default false,
            is_auto_checkout boolean not null default false,
            user_confirmed boolean not null default false,
            modification_reason text,
            created_at timestamptz default now(),
            created_by uuid references app_users(id),
            updated_at timestamptz,
            updated_by uuid references app_users(id),
            deleted_at timestamptz,
            deleted_by uuid references app_users(id)
        );`,
	},
	{
		Index:       6,
		Description: "Enforce single open session per user",
		Query: `
        CREATE UNIQUE INDEX IF NOT EXISTS attendance_logs_one_open_session
        ON attendance_logs (user_id)
        WHERE check_out_at IS NULL AND check_in_at IS NOT NULL AND deleted_at IS NULL;`,
	},
	{
		Index:       7,
		Description: "Create table: work_requests",
		Query: `
        CREATE TABLE IF NOT EXISTS work_requests (
            id uuid primary key default gen_random_uuid(),
            requester_id uuid not null references app_users(id),
            approver_id uuid references app_users(id),
            request_type text not null,
            status text not null default 'pending',
            start_date date not null,
            end_date date not null,
            days_used numeric(5,1) not null default 0,
            reason text,
            rejection_reason text,
            processed_at timestamptz,
            created_at timestamptz default now(),
            created_by uuid references app_users(id),
            updated_at timestamptz,
            updated_by uuid references app_users(id),
            deleted_at timestamptz,
            deleted_by uuid references app_users(id)
        );`,
	},
	{
		Index:       8,
		Description: "Create table: compensatory_requests",
		Query: `
        CREATE TABLE IF NOT EXISTS compensatory_requests (
            id uuid primary key default gen_random_uuid(),
            requester_id uuid not null references app_users(id),
            approver_id uuid references app_users(id),
            work_date date not null,
            days numeric(5,1) not null,
            reason text,
            status text not null default 'pending',
            approved_at timestamptz,
            created_at timestamptz default now(),
            created_by uuid references app_users(id),
            updated_at timestamptz,
            updated_by uuid references app_users(id),
            deleted_at timestamptz,
            deleted_by uuid references app_users(id)
        );`,
	},
	{
		Index:       9,
		Description: "Create table: leave_balances",
		Query: `
        CREATE TABLE IF NOT EXISTS leave_balances (
            id uuid primary key default gen_random_uuid(),
            user_id uuid not null references app_users(id),
            leave_type text not null,
            year int not null,
            total_days numeric(5,1) not null default 0,
            used_days numeric(5,1) not null default 0,
            created_at timestamptz default now(),
            created_by uuid references app_users(id),
            updated_at timestamptz,
            updated_by uuid references app_users(id),
            deleted_at timestamptz,
            deleted_by uuid references app_users(id),
            CONSTRAINT leave_balances_user_type_year UNIQUE (user_id, leave_type, year),
            CONSTRAINT leave_balances_used_within_total CHECK (used_days <= total_days)
        );`,
	},
	{
		Index:       10,
		Description: "Create table: leave_grants",
		Query: `
        CREATE TABLE IF NOT EXISTS leave_grants (
            id uuid primary key default gen_random_uuid(),
            user_id uuid not null references app_users(id),
            leave_type text not null,
            days numeric(5,1) not null,
            grant_type text not null,
            reason text,
            granted_by uuid references app_users(id),
            year int not null,
            created_at timestamptz default now(),
            created_by uuid references app_users(id),
            updated_at timestamptz,
            updated_by uuid references app_users(id),
            deleted_at timestamptz,
            deleted_by uuid references app_users(id)
        );`,
	},
	{
		Index:       11,
		Description: "Create table: activity_logs",
		Query: `
        CREATE TABLE IF NOT EXISTS activity_logs (
            id uuid primary key default gen_random_uuid(),
            user_id uuid references app_users(id),
            action_type text not null,
            entity_type text,
            entity_id text,
            entity_title text,
            metadata jsonb,
            created_at timestamptz default now(),
            created_by uuid references app_users(id),
            updated_at timestamptz,
            updated_by uuid references app_users(id),
            deleted_at timestamptz,
            deleted_by uuid references app_users(id)
        );`,
	},
	{
		Index:       12,
		Description: "Create table: notifications",
		Query: `
        CREATE TABLE IF NOT EXISTS notifications (
            id uuid primary key default gen_random_uuid(),
            user_id uuid not null references app_users(id),
            title text not null,
            body text,
            type text,
            link text,
            is_read boolean not null default false,
            read_at timestamptz,
            created_at timestamptz default now(),
            created_by uuid references app_users(id),
            updated_at timestamptz,
            updated_by uuid references app_users(id),
            deleted_at timestamptz,
            deleted_by uuid references app_users(id)
        );`,
	},
	{
		Index:       13,
		Description: "Create table: push_tokens",
		Query: `
        CREATE TABLE IF NOT EXISTS push_tokens (
            id uuid primary key default gen_random_uuid(),
            user_id uuid not null references app_users(id),
            token text not null unique,
            platform text,
            created_at timestamptz default now(),
            created_by uuid references app_users(id),
            updated_at timestamptz,
            updated_by uuid references app_users(id),
            deleted_at timestamptz,
            deleted_by uuid references app_users(id)
        );`,
	},
	{
		Index:       14,
		Description: "Create table: partners",
		Query: `
        CREATE TABLE IF NOT EXISTS partners (
            id uuid primary key default gen_random_uuid(),
            name text not null,
            category text,
            contact_name text,
            phone text,
            email text,
            memo text,
            is_active boolean default true,
            created_at timestamptz default now(),
            created_by uuid references app_users(id),
            updated_at timestamptz,
            updated_by uuid references app_users(id),
            deleted_at timestamptz,
            deleted_by uuid references app_users(id)
        );`,
	},
	{
		Index:       15,
		Description: "Index pending requests for approval queues",
		Query: `
        CREATE INDEX IF NOT EXISTS work_requests_pending_idx
        ON work_requests (requester_id, start_date, end_date)
        WHERE status = 'pending' AND deleted_at IS NULL;
        CREATE INDEX IF NOT EXISTS compensatory_requests_pending_idx
        ON compensatory_requests (requester_id)
        WHERE status = 'pending' AND deleted_at IS NULL;`,
	},
}

// Migrate creates the scheme in the database.
func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
