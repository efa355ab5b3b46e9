package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"petrescue/internal/adapters/storage"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PoolOptions: valores en cero usan los defaults.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(ctx context.Context, dsn string, opts PoolOptions) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(orInt(opts.MaxOpenConns, 10))
	db.SetMaxIdleConns(orInt(opts.MaxIdleConns, 5))
	db.SetConnMaxIdleTime(orDuration(opts.ConnMaxIdleTime, 5*time.Minute))
	db.SetConnMaxLifetime(orDuration(opts.ConnMaxLifetime, 30*time.Minute))

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	return db, nil
}

// NewStores arma el set de repos sobre el mismo pool.
func NewStores(db *sql.DB) *storage.Set {
	return &storage.Set{
		Users:         NewUsersRepo(db),
		Pets:          NewPetsRepo(db),
		Reports:       NewReportsRepo(db),
		Adoptions:     NewAdoptionsRepo(db),
		Reviews:       NewReviewsRepo(db),
		Notifications: NewNotificationsRepo(db),
		Matches:       NewMatchesRepo(db),
		Chat:          NewChatRepo(db),
	}
}

func orInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func orDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

// isUniqueViolation detecta unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// images se guarda como JSONB.
func encodeImages(images []string) ([]byte, error) {
	if images == nil {
		images = []string{}
	}
	return json.Marshal(images)
}

func decodeImages(raw []byte) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding images: %w", err)
	}
	return out, nil
}

// where acumula condiciones y args con placeholders $n.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", placeholder(len(w.args))))
}

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}
