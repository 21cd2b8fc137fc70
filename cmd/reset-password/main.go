package main

import (
	"flag"
	"log"

	"go-pos-api/internal/repository"
	"go-pos-api/pkg/config"
	"go-pos-api/pkg/database"

	"github.com/joho/godotenv"
)

// Operator tool: reset a user's password by username.
//
//	go run ./cmd/reset-password -username owner -password newsecret
func main() {
	username := flag.String("username", "", "username of the account to reset")
	password := flag.String("password", "", "new password")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("Usage: reset-password -username <username> -password <new password>")
	}
	if len(*password) < 6 {
		log.Fatal("Password must be at least 6 characters")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	db := database.ConnectDB(config.Load())
	userRepo := repository.NewUserRepo(db)

	user, err := userRepo.FindByUsername(*username)
	if err != nil {
		log.Fatalf("Lookup failed: %v", err)
	}
	if user == nil {
		log.Fatalf("User %q not found", *username)
	}

	if err := user.SetPassword(*password); err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	if err := userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		log.Fatalf("Failed to update password: %v", err)
	}

	log.Printf("Password updated for %s", user.Username)
}
