package leader

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// DefaultLockID is the advisory lock key all units of one provider
// application contend on. Deployments sharing a database between several
// applications must configure distinct keys.
const DefaultLockID int64 = 7720

type AdvisoryLockElectorOption func(*AdvisoryLockElector)

func AdvisoryLockElectorWithLockID(lockID int64) AdvisoryLockElectorOption {
	return func(e *AdvisoryLockElector) {
		e.lockID = lockID
	}
}

func AdvisoryLockElectorWithInterval(interval time.Duration) AdvisoryLockElectorOption {
	return func(e *AdvisoryLockElector) {
		e.interval = interval
	}
}

// AdvisoryLockElector holds leadership through a Postgres session advisory
// lock. The unit owning the lock is the leader. The lock is tied to one
// dedicated connection, so leadership is lost as soon as that session dies
// and another unit can take over.
type AdvisoryLockElector struct {
	stopChan chan struct{}
	wg       sync.WaitGroup

	dbPool   *pgxpool.Pool
	lockID   int64
	interval time.Duration

	mtx    sync.Mutex
	conn   *pgxpool.Conn
	leader bool
}

func NewAdvisoryLockElector(dbPool *pgxpool.Pool, options ...AdvisoryLockElectorOption) *AdvisoryLockElector {
	e := &AdvisoryLockElector{
		stopChan: make(chan struct{}),
		dbPool:   dbPool,
		lockID:   DefaultLockID,
		interval: 5 * time.Second,
	}
	for _, opt := range options {
		opt(e)
	}

	e.tick()
	e.wg.Add(1)
	go e.loop()
	return e
}

func (e *AdvisoryLockElector) IsLeader(ctx context.Context) bool {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.leader
}

func (e *AdvisoryLockElector) Close() error {
	close(e.stopChan)
	e.wg.Wait()
	return nil
}

func (e *AdvisoryLockElector) loop() {
	logrus.Info("Leader elector loop started")
	defer e.wg.Done()
	defer logrus.Info("Leader elector loop stopped")

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopChan:
			e.release()
			return
		case <-ticker.C:
			e.tick()
		}
	}
}

func (e *AdvisoryLockElector) tick() {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), e.interval)
	defer cancel()

	if e.conn == nil {
		conn, err := e.dbPool.Acquire(ctx)
		if err != nil {
			logrus.Warnf("Leader elector: failed to acquire database connection: %v", err)
			e.leader = false
			return
		}
		e.conn = conn
	}

	if e.leader {
		// The lock lives on the session. Losing the session loses the lock.
		if err := e.conn.Ping(ctx); err != nil {
			logrus.Warnf("Leader elector: lost leadership with database connection: %v", err)
			e.dropConn()
		}
		return
	}

	var locked bool
	if err := e.conn.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, e.lockID).Scan(&locked); err != nil {
		logrus.Warnf("Leader elector: failed to probe advisory lock: %v", err)
		e.dropConn()
		return
	}
	if locked {
		logrus.Infof("Leader elector: acquired leadership on lock %d", e.lockID)
	}
	e.leader = locked
}

func (e *AdvisoryLockElector) release() {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.conn == nil {
		return
	}
	if e.leader {
		ctx, cancel := context.WithTimeout(context.Background(), e.interval)
		defer cancel()
		if _, err := e.conn.Exec(ctx, `SELECT pg_advisory_unlock($1)`, e.lockID); err != nil {
			logrus.Warnf("Leader elector: failed to release advisory lock: %v", err)
		}
	}
	e.dropConn()
}

func (e *AdvisoryLockElector) dropConn() {
	e.conn.Release()
	e.conn = nil
	e.leader = false
}
