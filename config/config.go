package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// CandidateRuntime is the OCI runtime name passed to the platform to
	// select the sandboxed engine under test.
	CandidateRuntime string
	// BaseImage is the image compiled binaries are layered onto.
	BaseImage string
	// FixtureDir holds the C sources for compiled-binary cases.
	FixtureDir string
	// PreludeCmd builds the candidate runtime before any case runs.
	// Empty skips the prelude.
	PreludeCmd string
	// SuitePath points at a YAML suite definition. Empty selects the
	// built-in default suite.
	SuitePath string
	// JournalPath is the sqlite run-history database. Empty disables
	// the journal.
	JournalPath string
	// NatsURL enables verdict publication when set.
	NatsURL string

	Environment string
}

func LoadConfig() Config {
	err := godotenv.Load(".env")
	if err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	return Config{
		CandidateRuntime: getEnv("CANDIDATERUNTIME", "sentinel-debug"),
		BaseImage:        getEnv("BASEIMAGE", "ubuntu"),
		FixtureDir:       getEnv("FIXTUREDIR", "fixtures/c"),
		PreludeCmd:       getEnv("PRELUDECMD", "cargo +nightly build"),
		SuitePath:        getEnv("SUITEPATH", ""),
		JournalPath:      getEnv("JOURNALPATH", ""),
		NatsURL:          getEnv("NATSURL", ""),
		Environment:      getEnv("ENVIRONMENT", "production"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
