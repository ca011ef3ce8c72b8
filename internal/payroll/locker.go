package payroll

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Locker guards a payroll run so two processes never pay the same company twice.
// ok is false when the lock is held elsewhere; unlock is only valid when ok is true.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock func(), ok bool, err error)
}

// releaseScript deletes the key only if it still holds our token.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

type RedisLocker struct {
	rdb      *redis.Client
	newToken func() string
	logger   *zap.Logger
}

func NewRedisLocker(rdb *redis.Client, logger ...*zap.Logger) *RedisLocker {
	l := zap.L().Named("payroll.locker")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.locker")
	}
	return &RedisLocker{
		rdb:      rdb,
		newToken: func() string { return uuid.NewString() },
		logger:   l,
	}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := l.newToken()
	ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil || !ok {
		return nil, false, err
	}

	unlock := func() {
		if err := l.rdb.Eval(context.WithoutCancel(ctx), releaseScript, []string{key}, token).Err(); err != nil {
			l.logger.Warn("payroll lock release failed", zap.String("key", key), zap.Error(err))
		}
	}
	return unlock, true, nil
}

const (
	advisoryLockSQL   = "SELECT pg_try_advisory_lock(hashtext($1))"
	advisoryUnlockSQL = "SELECT pg_advisory_unlock(hashtext($1))"
)

// PostgresLocker takes a session-level advisory lock on a dedicated connection.
// It is the cross-process fallback when Redis is not configured; the API and the
// scheduler share the database, so they contend on the same lock.
// The ttl is ignored; the lock dies with the session if the process does.
type PostgresLocker struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresLocker(db *sql.DB, logger ...*zap.Logger) *PostgresLocker {
	l := zap.L().Named("payroll.locker")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.locker")
	}
	return &PostgresLocker{db: db, logger: l}
}

func (l *PostgresLocker) TryLock(ctx context.Context, key string, _ time.Duration) (func(), bool, error) {
	conn, err := l.db.Conn(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock connection: %w", err)
	}

	var ok bool
	if err := conn.QueryRowContext(ctx, advisoryLockSQL, key).Scan(&ok); err != nil {
		conn.Close()
		return nil, false, fmt.Errorf("pg_try_advisory_lock: %w", err)
	}
	if !ok {
		conn.Close()
		return nil, false, nil
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			defer conn.Close()
			if _, err := conn.ExecContext(context.WithoutCancel(ctx), advisoryUnlockSQL, key); err != nil {
				l.logger.Warn("payroll lock release failed", zap.String("key", key), zap.Error(err))
			}
		})
	}, true, nil
}

// MemoryLocker serves tests and single-process tools that have no shared backend.
// The ttl is ignored; locks live until unlocked.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[string]struct{})}
}

func (l *MemoryLocker) TryLock(_ context.Context, key string, _ time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[key]; busy {
		return nil, false, nil
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, true, nil
}
