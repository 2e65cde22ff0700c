package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campuscare-app/CampusCare/app/models"
	"github.com/campuscare-app/CampusCare/internal/pkg/notify"
	"github.com/campuscare-app/CampusCare/internal/pkg/realtime"
	"github.com/campuscare-app/CampusCare/internal/pkg/usercontext"
)

// recipientFor resolves the caller's inbox: administrators share the "admin"
// inbox, everyone else has a personal one keyed by user id.
func recipientFor(uctx usercontext.UserContext) string {
	if uctx.IsAdmin {
		return models.RecipientAdmin
	}
	return notify.ReporterRecipient(uctx.UserID)
}

// HandleListNotifications returns the caller's inbox, newest first.
func HandleListNotifications(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	notifications, err := notificationRepo.ListByRecipient(c.Context(), recipientFor(uctx))
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return c.JSON(notifications)
}

// HandleMarkNotificationsRead marks every notification in the caller's inbox
// as read and reports how many rows changed.
func HandleMarkNotificationsRead(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	updated, err := notificationRepo.MarkAllRead(c.Context(), recipientFor(uctx))
	if err != nil {
		return storeErrorResponse(c, err)
	}

	if updated > 0 {
		realtime.Publish(realtime.TableNotifications, realtime.ActionUpdate, recipientFor(uctx))
	}

	return c.JSON(fiber.Map{"updated": updated})
}
