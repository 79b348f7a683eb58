package artifact

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// BuildEnv assembles the build-time variables for an environment: tool
// defaults first, then the optional .env.<environment> file in the project
// root overriding them. The returned map is handed to the build command
// directly instead of mutating the process environment.
func BuildEnv(projectRoot, environment, region string) (map[string]string, error) {
	nodeEnv := "development"
	if environment == "prod" {
		nodeEnv = "production"
	}

	vars := map[string]string{
		"VITE_AWS_REGION": region,
		"NODE_ENV":        nodeEnv,
	}

	envFile := filepath.Join(projectRoot, ".env."+environment)
	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return vars, nil
		}
		return nil, fmt.Errorf("failed to check env file %s: %w", envFile, err)
	}

	slog.Info("Loading environment file", "path", envFile)
	fileVars, err := godotenv.Read(envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env file %s: %w", envFile, err)
	}
	for key, value := range fileVars {
		vars[key] = value
	}

	return vars, nil
}
