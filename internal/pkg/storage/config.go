package storage

import (
	"fmt"
	"strings"

	"github.com/campuscare-app/CampusCare/internal/pkg/env"
)

// Config holds the object storage settings for report photos.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	EndpointURL     string
	Bucket          string
	PublicBaseURL   string
}

// LoadConfig reads the storage configuration from the environment.
func LoadConfig() *Config {
	return &Config{
		Region:          env.GetEnv("STORAGE_REGION", "us-east-1"),
		AccessKeyID:     env.GetEnv("STORAGE_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("STORAGE_SECRET_ACCESS_KEY", ""),
		EndpointURL:     env.GetEnv("STORAGE_ENDPOINT_URL", ""),
		Bucket:          env.GetEnv("STORAGE_BUCKET", "report123"),
		PublicBaseURL:   env.GetEnv("STORAGE_PUBLIC_BASE_URL", ""),
	}
}

// IsEnabled reports whether credentials are present.
func (c *Config) IsEnabled() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// PublicURL builds the externally reachable URL for an object key.
func (c *Config) PublicURL(key string) string {
	if c.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(c.PublicBaseURL, "/"), key)
	}
	if c.EndpointURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.EndpointURL, "/"), c.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.Bucket, c.Region, key)
}
