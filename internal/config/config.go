package config

import (
	"os"
	"strings"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	BlobBasePath string // original PDFs live here

	AuthHMACSecret string
	AdminUser      string
	AdminPassHash  string // bcrypt

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	// Validation policy for imports (advisory number checks).
	ValidateUniqueNumbers    bool
	ValidateAscendingNumbers bool

	// MaxUploadBytes caps multipart PDF uploads.
	MaxUploadBytes int64

	// AllowLocalSources lets JSON import requests name server-local
	// file paths instead of http(s) URLs. Off by default.
	AllowLocalSources bool
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Mode:         mode,
		HTTPAddr:     addr,
		DBDriver:     envOr("DB_DRIVER", "sqlite"),
		DBDSN:        envOr("DB_DSN", ""),
		BlobBasePath: envOr("BLOB_BASE_PATH", "./data"),

		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AdminUser:      envOr("ADMIN_USER", "admin"),
		AdminPassHash:  envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://qbank.mindengage.ai"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:3010"),

		ValidateUniqueNumbers:    envBool("VALIDATE_UNIQUE_NUMBERS", false),
		ValidateAscendingNumbers: envBool("VALIDATE_ASCENDING_NUMBERS", false),

		MaxUploadBytes: 64 << 20,

		AllowLocalSources: envBool("ALLOW_LOCAL_SOURCES", false),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
