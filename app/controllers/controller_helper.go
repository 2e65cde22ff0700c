package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campuscare-app/CampusCare/app/repository"
)

// remediation texts shown for ops-configuration failures. End users relay
// these to whoever runs the deployment; the client disables its form while
// one of them is active.
const (
	remediationSchema = "The reports schema is missing. Run the database migrations (cmd/migrate up) and reload."
	remediationPolicy = "The database rejected the write due to its security policy. Grant the service role access to the reports tables and reload."
	remediationBucket = "The storage bucket does not exist. Create it in your storage console, then use the refresh check."
)

func jsonError(c *fiber.Ctx, status int, code string, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": message,
	})
}

// storeErrorResponse maps a classified persistence/storage error onto the API
// error contract.
func storeErrorResponse(c *fiber.Ctx, err error) error {
	kind := repository.KindOf(err)
	switch kind {
	case repository.KindConfig:
		return jsonError(c, fiber.StatusServiceUnavailable, kind.String(),
			"Backend is not configured. Contact the operator and reload once fixed.")
	case repository.KindSchemaMissing:
		return jsonError(c, fiber.StatusServiceUnavailable, kind.String(), remediationSchema)
	case repository.KindPolicyDenied:
		return jsonError(c, fiber.StatusForbidden, kind.String(), remediationPolicy)
	case repository.KindBucketMissing:
		return jsonError(c, fiber.StatusServiceUnavailable, kind.String(), remediationBucket)
	case repository.KindNotFound:
		return jsonError(c, fiber.StatusNotFound, kind.String(), "The requested record was not found.")
	case repository.KindConflict:
		return jsonError(c, fiber.StatusConflict, kind.String(), "A record with these unique values already exists.")
	default:
		return jsonError(c, fiber.StatusInternalServerError, kind.String(), err.Error())
	}
}
