// Command admin-token mints a signed admin JWT for local development and
// operational tooling. With -generate it also creates the RSA key pair when
// the private key does not exist yet.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/forgo/atrium/api/pkg/jwt"
)

type options struct {
	privateKeyPath string
	publicKeyPath  string
	generate       bool
	userID         string
	email          string
	issuer         string
	expMins        int
	asJSON         bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.privateKeyPath, "key", "./keys/private.pem", "Path to JWT private key")
	flag.StringVar(&o.publicKeyPath, "pub", "./keys/public.pem", "Path to JWT public key (used with -generate)")
	flag.BoolVar(&o.generate, "generate", false, "Generate a key pair at -key/-pub if the private key is missing")
	flag.StringVar(&o.userID, "user", "admin-dev-user", "User ID for the token")
	flag.StringVar(&o.email, "email", "admin@atrium.dev", "Email for the token")
	flag.StringVar(&o.issuer, "issuer", "atrium.forgo.software", "JWT issuer")
	flag.IntVar(&o.expMins, "exp", 60*24*7, "Token expiration in minutes (default: 7 days)")
	flag.BoolVar(&o.asJSON, "json", false, "Output as JSON")
	flag.Parse()
	return o
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(o options) error {
	if o.generate {
		if _, err := os.Stat(o.privateKeyPath); os.IsNotExist(err) {
			if err := jwt.GenerateKeyPair(o.privateKeyPath, o.publicKeyPath); err != nil {
				return fmt.Errorf("generating key pair: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Generated key pair at %s / %s\n", o.privateKeyPath, o.publicKeyPath)
		}
	}

	// Signing only needs the private key
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: o.privateKeyPath,
		Issuer:         o.issuer,
		ExpirationMins: o.expMins,
	})
	if err != nil {
		return fmt.Errorf("creating JWT service: %w (run with -generate to create a key pair first)", err)
	}

	token, err := jwtService.Sign(jwt.Claims{
		Subject: o.userID,
		UserID:  o.userID,
		Email:   o.email,
		Name:    "Admin",
		Role:    "admin",
	})
	if err != nil {
		return fmt.Errorf("signing token: %w", err)
	}

	if o.asJSON {
		return printJSON(o, token)
	}
	printText(o, token)
	return nil
}

func printJSON(o options, token string) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   o.expMins * 60,
		"user_id":      o.userID,
		"email":        o.email,
		"role":         "admin",
	})
}

func printText(o options, token string) {
	expTime := time.Now().Add(time.Duration(o.expMins) * time.Minute)
	fmt.Println("Admin Token Generated")
	fmt.Println("=====================")
	fmt.Printf("User ID:  %s\n", o.userID)
	fmt.Printf("Email:    %s\n", o.email)
	fmt.Printf("Role:     admin\n")
	fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
	fmt.Println()
	fmt.Println("Token:")
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  curl -H 'Authorization: Bearer %s' -X POST http://localhost:8080/v1/rooms\n", truncate(token, 50))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
