// CLI tool to apply pending Postgres migrations embedded in internal/storage.
// Already-applied files are skipped via the migrations table.
// Usage: go run ./cmd/migrate (reads DB_URL from the environment or .env)
package main

import (
	"context"
	"fmt"
	"os"

	"lg/wellness-go-api/internal/config"
	"lg/wellness-go-api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.NewPostgres(ctx, cfg.Storage.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ran, err := db.Migrate(ctx)
	for _, name := range ran {
		fmt.Printf("  applied: %s\n", name)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(ran) == 0 {
		fmt.Println("No pending migrations.")
	} else {
		fmt.Printf("\n%d migration(s) applied.\n", len(ran))
	}
}
