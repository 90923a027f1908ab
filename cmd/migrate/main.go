// cmd/migrate/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/onerilhan/guild-payout-api/internal/config"
	"github.com/onerilhan/guild-payout-api/internal/db"
	"github.com/onerilhan/guild-payout-api/internal/logger"
	"github.com/onerilhan/guild-payout-api/internal/migration"
)

func main() {
	// .env dosyasını yükle
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	// create veritabanına ihtiyaç duymaz
	if command == "create" {
		handleCreate(cfg.MigrationsPath, os.Args[2:])
		return
	}

	database, err := db.Connect(cfg.GetDSN(), 1)
	if err != nil {
		fmt.Printf("Database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	migrationConfig := migration.DefaultConfig(cfg.MigrationsPath)
	migrationConfig.Verbose = true

	runner, err := migration.NewRunner(database, migrationConfig)
	if err != nil {
		fmt.Printf("Runner error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	switch command {
	case "status":
		handleStatus(ctx, runner)
	case "up":
		handleUp(ctx, runner, os.Args[2:])
	case "down":
		handleDown(ctx, runner, os.Args[2:])
	case "init":
		handleInit(ctx, runner)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`
Migration CLI Tool

USAGE:
    go run ./cmd/migrate <command> [arguments]

COMMANDS:
    status              Show migration status
    up [version]        Apply pending migrations (up to optional version)
    down <version>      Rollback migrations above the specified version
    create <name>       Create new migration files
    init                Initialize migration tracking table

EXAMPLES:
    go run ./cmd/migrate status
    go run ./cmd/migrate up
    go run ./cmd/migrate down 1
    go run ./cmd/migrate create "add member note"
`)
}

func handleStatus(ctx context.Context, runner *migration.Runner) {
	if err := runner.Initialize(ctx); err != nil {
		fmt.Printf("Initialization failed: %v\n", err)
		os.Exit(1)
	}

	status, err := runner.GetStatus(ctx)
	if err != nil {
		fmt.Printf("Failed to get migration status: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Current Version: %d\n", status.CurrentVersion)
	fmt.Printf("  Applied: %d\n", status.AppliedCount)
	fmt.Printf("  Pending: %d\n", status.PendingCount)
	fmt.Printf("  Health: %s\n", status.Health)

	if len(status.Migrations) > 0 {
		fmt.Printf("\nMigrations:\n")
		fmt.Println("  VERSION          | STATUS   | NAME")
		fmt.Println("  -----------------|----------|--------------------")

		for _, m := range status.Migrations {
			state := "PENDING"
			suffix := ""
			if m.Applied {
				state = "APPLIED"
				if m.AppliedAt != nil {
					suffix = fmt.Sprintf(" (%s)", m.AppliedAt.Format("2006-01-02 15:04"))
				}
				if m.ChecksumDiff {
					state = "CHANGED"
				}
			}
			fmt.Printf("  %16d | %-8s | %s%s\n", m.Version, state, m.Name, suffix)
		}
	}

	if status.PendingCount > 0 {
		fmt.Printf("\nYou have %d pending migration(s). Run 'up' to apply them.\n", status.PendingCount)
	} else {
		fmt.Printf("\nAll migrations are up to date!\n")
	}
}

func handleUp(ctx context.Context, runner *migration.Runner, args []string) {
	target := int64(0)
	if len(args) > 0 {
		target = parseVersion(args[0])
	}

	results, err := runner.RunUp(ctx, target)
	printResults("Migration", results)
	if err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
}

func handleDown(ctx context.Context, runner *migration.Runner, args []string) {
	if len(args) == 0 {
		fmt.Println("Target version required for rollback")
		fmt.Println("Usage: down <version>")
		os.Exit(1)
	}
	target := parseVersion(args[0])

	fmt.Printf("WARNING: This will rollback every migration above version %d!\n", target)
	fmt.Printf("Are you sure you want to continue? (y/N): ")

	var response string
	fmt.Scanln(&response)
	if response = strings.ToLower(response); response != "y" && response != "yes" {
		fmt.Println("Rollback cancelled")
		return
	}

	results, err := runner.RunDown(ctx, target)
	printResults("Rollback", results)
	if err != nil {
		fmt.Printf("Rollback failed: %v\n", err)
		os.Exit(1)
	}
}

func handleCreate(dir string, args []string) {
	if len(args) == 0 {
		fmt.Println("Migration name required")
		fmt.Println("Usage: create <name>")
		os.Exit(1)
	}

	upPath, downPath, err := migration.CreateMigrationFiles(dir, strings.Join(args, " "), time.Now().UTC())
	if err != nil {
		fmt.Printf("Failed to create migration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  Created: %s\n", upPath)
	fmt.Printf("  Created: %s\n", downPath)
}

func handleInit(ctx context.Context, runner *migration.Runner) {
	if err := runner.Initialize(ctx); err != nil {
		fmt.Printf("Initialization failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Migration tracking table ready. Run 'status' to check current state")
}

func parseVersion(arg string) int64 {
	version, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || version < 0 {
		fmt.Printf("Invalid version number: %s\n", arg)
		os.Exit(1)
	}
	return version
}

func printResults(label string, results []migration.Result) {
	if len(results) == 0 {
		fmt.Printf("No %s to run\n", strings.ToLower(label))
		return
	}

	fmt.Printf("\n%s Results:\n", label)
	for _, result := range results {
		state := "FAILED"
		if result.Success {
			state = "SUCCESS"
		}
		fmt.Printf("  %s | Version %d | %s | %d statement(s) | %v\n",
			state, result.Version, result.Name, result.Statements, result.ExecutionTime)
		if result.Error != "" {
			fmt.Printf("    Error: %s\n", result.Error)
		}
	}
}
