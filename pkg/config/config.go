package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds settings shared by the CLI and the web server
type Config struct {
	OutputDir string // Directory rendered images are written under
	ScenesDir string // Directory scanned for JSON scene files
	Port      int    // Web server port

	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional; empty uses the AWS endpoint for the region
	S3Region    string
	S3Bucket    string
}

// getEnv returns the environment variable or a fallback
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Load reads <rootDir>/.env if present and builds the configuration from the
// environment. Variables already set in the environment win over the file.
func Load(rootDir string) (*Config, error) {
	_ = godotenv.Load(filepath.Join(rootDir, ".env"))

	port, err := strconv.Atoi(getEnv("RAYTRACER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid RAYTRACER_PORT: %w", err)
	}

	return &Config{
		OutputDir:   getEnv("RAYTRACER_OUTPUT_DIR", "output"),
		ScenesDir:   getEnv("RAYTRACER_SCENES_DIR", "scenes"),
		Port:        port,
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    os.Getenv("S3_REGION"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
	}, nil
}

// UploadEnabled reports whether enough S3 settings are present to upload renders
func (c *Config) UploadEnabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}
