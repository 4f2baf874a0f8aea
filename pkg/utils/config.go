package utils

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	Environment string
	MaxUploadMB int64
	CORSOrigins []string
}

// LoadConfig reads configuration from the environment with dev defaults.
// A .env file is honored when present.
func LoadConfig() Config {
	// .env is optional
	_ = godotenv.Load()

	addr := os.Getenv("CONTACTHUB_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	env := os.Getenv("CONTACTHUB_ENV")
	if env == "" {
		env = "development"
	}

	maxUpload := int64(16)
	if v := os.Getenv("CONTACTHUB_MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxUpload = n
		}
	}

	origins := []string{"*"}
	if v := os.Getenv("CONTACTHUB_CORS_ORIGINS"); v != "" {
		origins = origins[:0]
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		Addr:        addr,
		Environment: env,
		MaxUploadMB: maxUpload,
		CORSOrigins: origins,
	}
}
