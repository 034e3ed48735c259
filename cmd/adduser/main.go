// cmd/adduser/main.go
// Creates or updates an admin user allowed to read the result archive.
// The user must also be listed in ADMIN_USERS.
//
// Usage:
//
//	go run ./cmd/adduser -username admin -password testing
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/padraicbc/horserace/config"
	bundb "github.com/padraicbc/horserace/db"
	"github.com/padraicbc/horserace/handlers"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	hash, err := handlers.HashPasswordForUser(*username, *password)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	cfg := config.Load()
	if !cfg.ArchiveEnabled() {
		log.Fatal("DATABASE_URL or DB_PASS must be set")
	}
	db, err := bundb.Setup(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables:", err)
	}
	if err := bundb.NewUsers(db).Upsert(ctx, *username, hash); err != nil {
		log.Fatal(err)
	}

	if !cfg.IsAdmin(*username) {
		fmt.Printf("warning: %q is not listed in ADMIN_USERS\n", *username)
	}
	fmt.Printf("user %q saved\n", *username)
}
