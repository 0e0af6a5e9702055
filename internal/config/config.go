package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits comma-separated values
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations,
// costs and byte limits.
type Config struct {
	Env               string   // application environment (e.g. "dev", "prod")
	Port              string   // HTTP port to listen on
	DBUser            string   // database username
	DBPass            string   // database password (optional)
	DBHost            string   // database host address
	DBPort            string   // database port number
	DBName            string   // database name
	AccessSecret      string   // secret used to sign access tokens
	RefreshSecret     string   // secret used to sign refresh tokens
	AccessTTLMin      int      // access token time-to-live in minutes
	RefreshTTLDays    int      // refresh token time-to-live in days
	BcryptCost        int      // bcrypt cost for password hashing
	DriveRootFolderID string   // Google Drive folder that roots the photo archive
	CredentialsPath   string   // path to the OAuth client credentials.json
	TokenPath         string   // path to the stored OAuth grant token.json
	UploadDir         string   // local directory for temporary upload files
	MaxUploadBytes    int64    // maximum accepted upload size in bytes
	AllowedOrigins    []string // CORS origin whitelist for browser clients
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Paths and limits
// fall back to the defaults the deployment has always used.
func Load() Config {
	return Config{
		Env:               must("APP_ENV"),                   // environment (dev/test/prod)
		Port:              must("APP_PORT"),                  // port to bind the HTTP server
		DBUser:            must("DB_USER"),                   // database user
		DBPass:            os.Getenv("DB_PASS"),              // database password (empty allowed)
		DBHost:            must("DB_HOST"),                   // database host
		DBPort:            must("DB_PORT"),                   // database port
		DBName:            must("DB_NAME"),                   // database name
		AccessSecret:      must("ACCESS_TOKEN_SECRET"),       // signing secret for access tokens
		RefreshSecret:     must("REFRESH_TOKEN_SECRET"),      // signing secret for refresh tokens
		AccessTTLMin:      mustInt("ACCESS_TOKEN_TTL_MIN"),   // TTL for access tokens in minutes
		RefreshTTLDays:    mustInt("REFRESH_TOKEN_TTL_DAYS"), // TTL for refresh tokens in days
		BcryptCost:        mustInt("BCRYPT_COST"),            // bcrypt cost factor
		DriveRootFolderID: must("DRIVE_ROOT_FOLDER_ID"),      // root Drive folder for uploads
		CredentialsPath:   getenv("CREDENTIALS_PATH", "credentials.json"),
		TokenPath:         getenv("TOKEN_PATH", "token.json"),
		UploadDir:         getenv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes:    int64(envInt("MAX_UPLOAD_BYTES", 10*1024*1024)), // 10 MB cap
		AllowedOrigins:    splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// splitOrigins parses a comma-separated origin list.  An empty value means
// no browser origin is whitelisted and CORS falls back to same-origin only.
func splitOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
