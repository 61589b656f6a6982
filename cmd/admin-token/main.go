package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/playmatatu/spinwheel/internal/admin"
)

// admin-token prints the bcrypt hash to put in ADMIN_TOKEN_HASH.
func main() {
	godotenv.Load()

	token := flag.String("token", os.Getenv("ADMIN_TOKEN"), "plain admin token (defaults to $ADMIN_TOKEN)")
	flag.Parse()

	if *token == "" {
		log.Fatal("Set ADMIN_TOKEN or pass -token")
	}

	hash, err := admin.HashToken(*token)
	if err != nil {
		log.Fatalf("Failed to hash admin token: %v", err)
	}

	if !admin.VerifyAdminToken(hash, *token) {
		log.Fatal("Generated hash does not verify")
	}

	fmt.Printf("ADMIN_TOKEN_HASH=%s\n", hash)
	log.Println("Send the plain token in the X-Admin-Token header of /api/v1/admin requests")
}
