// CLI tool to create an account in the configured storage backend. This is the
// only way to create an admin, since public sign-ups always get the user role.
// Usage: go run ./cmd/create-user
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"lg/wellness-go-api/internal/config"
	"lg/wellness-go-api/internal/identity"
	"lg/wellness-go-api/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage.Driver == "memory" {
		fmt.Fprintln(os.Stderr, "STORAGE_DRIVER is memory; the account would be lost on exit")
		os.Exit(1)
	}

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open storage: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	reader := bufio.NewReader(os.Stdin)
	prompt := func(label string) string {
		fmt.Print(label)
		s, _ := reader.ReadString('\n')
		return strings.TrimSpace(s)
	}

	in := identity.NewUser{
		Name:     prompt("Name: "),
		Email:    prompt("Email: "),
		Password: prompt("Password: "),
		Role:     prompt("Role (user/admin) [user]: "),
	}
	if in.Role == "" {
		in.Role = identity.RoleUser
	}

	u, token, err := identity.NewDirectory(backend, 0).Create(ctx, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:         %s\n", u.ID)
	fmt.Printf("  Email:      %s\n", u.Email)
	fmt.Printf("  Role:       %s\n", u.Role)
	fmt.Printf("  Auth Token: %s\n", token)
}
