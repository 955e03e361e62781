// Dev utility to mint bearer tokens for manual testing.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gatherhub/server/internal/auth"
	"github.com/gatherhub/server/internal/config"
)

func main() {
	userID := flag.Int64("id", 1, "user id to embed in the token")
	email := flag.String("email", "dev@example.com", "email to embed in the token")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	manager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.Issuer)
	token, err := manager.Generate(*userID, *email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Bearer token:")
	fmt.Println(token)
	fmt.Println("\nTest with:")
	fmt.Printf("curl -H 'Authorization: Bearer %s' http://localhost:%d/profile\n", token, cfg.Server.Port)
}
