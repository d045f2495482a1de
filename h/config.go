package h

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

const DefaultEnvFile = ".env"

func IsProduction(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "production" || env == "prod"
}

// LoadEnv fills cfg from the process environment. Outside production the
// dotenv files (DefaultEnvFile when none is given) are read first; variables
// already set in the environment win over the files.
func LoadEnv(cfg any, files ...string) error {
	if !IsProduction(os.Getenv("ENV")) {
		if len(files) == 0 {
			files = []string{DefaultEnvFile}
		}
		for _, file := range files {
			if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
				log.Warnf("unable to load %s: %v", file, err)
			}
		}
	}
	return envconfig.Process("", cfg)
}
