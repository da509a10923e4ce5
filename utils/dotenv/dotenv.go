package dotenv

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnvs loads environment files for the current deployment environment.
// FEATHER_ENV selects an additional .env.<env> overlay on top of .env.
// Missing files are skipped so that production can rely purely on real
// environment variables.
func LoadDotEnvs() error {
	candidates := []string{".env"}
	if env := os.Getenv("FEATHER_ENV"); env != "" {
		candidates = append([]string{".env." + env}, candidates...)
	}
	for _, file := range candidates {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return err
		}
	}
	return nil
}
