package tests

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	"github.com/Junaid083/SprintSync/internal/model"
	"github.com/Junaid083/SprintSync/internal/repo"
	"github.com/Junaid083/SprintSync/internal/service"
)

// TestPassword is the password every seeded account logs in with.
const TestPassword = "password123"

// SetupTestDB starts a disposable postgres container with the schema applied.
func SetupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()
	ctx := context.Background()

	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filename))
	migrationsPath := filepath.Join(projectRoot, "migrations")

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.WithInitScripts(filepath.Join(migrationsPath, "001_init.up.sql")),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	cleanup := func() {
		pool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Errorf("Failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// TruncateTables clears all tables between tests.
func TruncateTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx, "TRUNCATE tasks, accounts RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// SeedAccount creates an account that can log in with TestPassword.
// MinCost keeps the suite fast; production cost is configured separately.
func SeedAccount(t *testing.T, pool *pgxpool.Pool, email string, isAdmin bool) model.Account {
	t.Helper()
	ctx := context.Background()

	digest, err := service.HashSecret(TestPassword, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	account, err := repo.NewAccountRepo(pool).Create(ctx, model.Account{
		Email:        email,
		SecretDigest: digest,
		IsAdmin:      isAdmin,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("Failed to seed account %s: %v", email, err)
	}
	return account
}

// SeedTasks creates count tasks owned by the given account.
func SeedTasks(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, count int) []uuid.UUID {
	t.Helper()
	ctx := context.Background()

	taskRepo := repo.NewTaskRepo(pool)
	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		created, err := taskRepo.Create(ctx, model.Task{
			Title:       fmt.Sprintf("Task %d", i+1),
			Description: fmt.Sprintf("Seeded task number %d", i+1),
			Status:      model.StatusTodo,
			Priority:    model.PriorityMedium,
			OwnerID:     ownerID,
		})
		if err != nil {
			t.Fatalf("Failed to seed task: %v", err)
		}
		ids = append(ids, created.ID)
	}

	return ids
}

// WaitForCondition polls until the condition holds or the timeout elapses.
func WaitForCondition(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}
