// Command authtoken walks the installed-app OAuth authorization flow once
// and writes the resulting grant to token.json.  The server and the export
// endpoints read that file at startup; run this command again whenever the
// grant is revoked or the requested scopes change.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"

	"github.com/idsynccam/registration-api/internal/gdrive"
)

func main() {
	_ = godotenv.Load()

	credentialsPath := envOr("CREDENTIALS_PATH", "credentials.json")
	tokenPath := envOr("TOKEN_PATH", "token.json")

	cfg, err := gdrive.LoadOAuthConfig(credentialsPath)
	if err != nil {
		log.Fatalf("authtoken: %v", err)
	}

	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Println("Open the following link in your browser, authorize the app,")
	fmt.Println("then paste the authorization code below:")
	fmt.Println()
	fmt.Println("  " + authURL)
	fmt.Println()
	fmt.Print("Authorization code: ")

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("authtoken: read code: %v", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		log.Fatal("authtoken: empty authorization code")
	}

	tok, err := cfg.Exchange(context.Background(), code)
	if err != nil {
		log.Fatalf("authtoken: exchange code: %v", err)
	}
	if err := gdrive.SaveToken(tokenPath, tok); err != nil {
		log.Fatalf("authtoken: save token: %v", err)
	}
	fmt.Printf("Token saved to %s\n", tokenPath)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
