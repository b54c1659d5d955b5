package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Sweeper periodically reports tasks that slipped past their due date.
// Reporting only; task state is never mutated here.
type Sweeper struct {
	pool     *pgxpool.Pool
	logger   *zap.Logger
	interval time.Duration
	wg       sync.WaitGroup
	stop     chan struct{}
}

func NewSweeper(pool *pgxpool.Pool, logger *zap.Logger, interval time.Duration) *Sweeper {
	return &Sweeper{
		pool:     pool,
		logger:   logger,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Starting overdue sweeper", zap.Duration("interval", s.interval))

	s.wg.Add(1)
	go s.run(ctx)
}

func (s *Sweeper) Stop() {
	s.logger.Info("Stopping overdue sweeper...")
	close(s.stop)
	s.wg.Wait()
	s.logger.Info("Overdue sweeper stopped")
}

func (s *Sweeper) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error("sweep error", zap.Error(err))
			}
		}
	}
}

// Sweep logs a per-owner summary of overdue, unfinished tasks.
func (s *Sweeper) Sweep(ctx context.Context) error {
	rows, err := s.pool.Query(ctx, `
		SELECT owner_id, COUNT(*), MIN(due_date)
		FROM tasks
		WHERE is_deleted = FALSE
		  AND due_date < now()
		  AND status <> 'done'
		GROUP BY owner_id
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ownerID uuid.UUID
		var count int
		var oldest time.Time
		if err := rows.Scan(&ownerID, &count, &oldest); err != nil {
			return err
		}
		s.logger.Info("overdue tasks",
			zap.String("owner_id", ownerID.String()),
			zap.Int("count", count),
			zap.Time("oldest_due", oldest),
		)
	}
	return rows.Err()
}
