package storage

import (
	"context"

	"github.com/gofiber/fiber/v2/log"
)

var defaultClient *Client

// Setup builds the global storage client from the environment. When no
// credentials are configured the application runs without photo uploads;
// a missing bucket is logged but keeps the client alive so the health
// endpoint can re-probe after the operator creates it.
func Setup(ctx context.Context) {
	cfg := LoadConfig()
	if !cfg.IsEnabled() {
		log.Info("[Storage] No credentials configured, photo uploads are disabled")
		return
	}

	client, err := NewClient(cfg)
	if err != nil {
		log.Warnf("[Storage] Client setup failed, photo uploads are disabled: %v", err)
		return
	}

	if err := client.ProbeBucket(ctx); err != nil {
		log.Warnf("[Storage] Bucket %s is not reachable: %v", cfg.Bucket, err)
	}

	defaultClient = client
}

// GetClient returns the global storage client, or nil when storage is
// disabled.
func GetClient() *Client {
	return defaultClient
}
