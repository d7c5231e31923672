//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestAdmin(t *testing.T, db DBLike, username, role string) uuid.UUID {
	t.Helper()

	adminID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO admins (id, username, password_hash, role) VALUES ($1, $2, $3, $4) ON CONFLICT (username) DO NOTHING",
		adminID, username, testPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM admins WHERE username = $1", username).Scan(&adminID)
	}

	return adminID
}

func CreateTestAccount(t *testing.T, db DBLike, externalID string, email *string) uuid.UUID {
	t.Helper()

	accountID := uuid.New()
	ctx := context.Background()

	state := "awaiting_email"
	if email != nil {
		state = "idle"
	}
	tag, err := db.Exec(ctx, "INSERT INTO accounts (id, external_id, email, conversation_state) VALUES ($1, $2, $3, $4) ON CONFLICT (external_id) DO NOTHING",
		accountID, externalID, email, state)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM accounts WHERE external_id = $1", externalID).Scan(&accountID)
	}

	return accountID
}

func CreateTestMerchant(t *testing.T, db DBLike, name, publicKey, secret string, webhookURL *string) uuid.UUID {
	t.Helper()

	merchantID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO merchants (id, name, public_key, secret, webhook_url) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (public_key) DO NOTHING",
		merchantID, name, publicKey, secret, webhookURL)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM merchants WHERE public_key = $1", publicKey).Scan(&merchantID)
	}

	return merchantID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO admins (id, username, password_hash, role) VALUES
		    (gen_random_uuid(), 'root', '`+testPasswordHash+`', 'admin')
		ON CONFLICT (username) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
