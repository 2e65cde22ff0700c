package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// BucketProber is the slice of the storage client the health endpoint needs.
type BucketProber interface {
	ProbeBucket(ctx context.Context) error
	Bucket() string
}

var storageProber BucketProber

// InitializeStorageController wires the storage health endpoint. A nil
// prober means object storage is not configured.
func InitializeStorageController(p BucketProber) {
	storageProber = p
}

// HandleStorageHealth re-probes the photo bucket on demand, so a user who
// just created the missing bucket can clear the warning without restarting
// anything.
func HandleStorageHealth(c *fiber.Ctx) error {
	if storageProber == nil {
		return c.JSON(fiber.Map{"enabled": false})
	}

	if err := storageProber.ProbeBucket(c.Context()); err != nil {
		return storeErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"enabled": true,
		"bucket":  storageProber.Bucket(),
	})
}
