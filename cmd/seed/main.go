package main

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/Junaid083/SprintSync/internal/config"
	"github.com/Junaid083/SprintSync/internal/model"
	"github.com/Junaid083/SprintSync/internal/repo"
	"github.com/Junaid083/SprintSync/internal/service"
)

// Seeds the demo accounts and tasks. Destructive: clears both tables first.
func main() {
	godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, "TRUNCATE tasks, accounts CASCADE"); err != nil {
		log.Fatalf("truncate: %v", err)
	}

	digest, err := service.HashSecret("admin123", cfg.BcryptCost)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	accounts := repo.NewAccountRepo(pool)
	tasks := repo.NewTaskRepo(pool)

	seedAccounts := []model.Account{
		{Email: "admin@sprintsync.com", SecretDigest: digest, IsAdmin: true, IsActive: true},
		{Email: "developer@sprintsync.com", SecretDigest: digest, IsActive: true},
		{Email: "designer@sprintsync.com", SecretDigest: digest, IsActive: true},
		{Email: "qa@sprintsync.com", SecretDigest: digest, IsActive: true},
	}

	created := make([]model.Account, 0, len(seedAccounts))
	for _, a := range seedAccounts {
		acc, err := accounts.Create(ctx, a)
		if err != nil {
			log.Fatalf("seed account %s: %v", a.Email, err)
		}
		created = append(created, acc)
		log.Printf("account created: %s", acc.Email)
	}

	dev, designer, qa := created[1], created[2], created[3]
	inTwoDays := time.Now().Add(48 * time.Hour)
	inFiveDays := time.Now().Add(5 * 24 * time.Hour)

	seedTasks := []model.Task{
		{
			Title:        "Set up CI/CD Pipeline",
			Description:  "Configure GitHub Actions for automated testing and deployment to production environment.",
			Status:       model.StatusInProgress,
			Priority:     model.PriorityHigh,
			TotalMinutes: 180,
			DueDate:      &inTwoDays,
			OwnerID:      dev.ID,
		},
		{
			Title:        "Design login screen",
			Description:  "Produce high-fidelity mockups for the login and session-expiry flows.",
			Status:       model.StatusTodo,
			Priority:     model.PriorityMedium,
			TotalMinutes: 60,
			DueDate:      &inFiveDays,
			OwnerID:      designer.ID,
		},
		{
			Title:        "Write regression suite for task filters",
			Description:  "Cover status, priority and search filters, including the admin-only owner filter.",
			Status:       model.StatusTodo,
			Priority:     model.PriorityHigh,
			OwnerID:      qa.ID,
		},
		{
			Title:        "Fix flaky pagination on the dashboard",
			Description:  "Tasks created within the same millisecond swap order between pages.",
			Status:       model.StatusDone,
			Priority:     model.PriorityLow,
			TotalMinutes: 45,
			OwnerID:      dev.ID,
		},
	}

	for _, t := range seedTasks {
		if _, err := tasks.Create(ctx, t); err != nil {
			log.Fatalf("seed task %q: %v", t.Title, err)
		}
		log.Printf("task created: %s", t.Title)
	}

	log.Println("seed complete")
}
