package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campuscare-app/CampusCare/app/models"
	"github.com/campuscare-app/CampusCare/internal/pkg/notify"
	"github.com/campuscare-app/CampusCare/internal/pkg/realtime"
	"github.com/campuscare-app/CampusCare/internal/pkg/usercontext"
)

type createCommentRequest struct {
	Content string `json:"content"`
}

// HandleCreateComment appends a comment to a report. Comments are immutable;
// there is no edit or single-delete endpoint, they only go away with their
// report. Admin comments additionally notify the reporter.
func HandleCreateComment(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}

	report, err := reportStore.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErrorResponse(c, err)
	}

	comment := &models.ReportComment{
		ReportID: report.ID,
		Content:  req.Content,
		UserID:   uctx.UserID,
		UserName: uctx.Username,
		IsAdmin:  uctx.IsAdmin,
	}
	if err := comment.Validate(); err != nil {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "content is required")
	}

	if err := commentRepo.Create(c.Context(), comment); err != nil {
		return storeErrorResponse(c, err)
	}

	if uctx.IsAdmin && report.ReportedBy != uctx.UserID && reportDispatcher != nil {
		reportDispatcher.Enqueue(notify.CommentNotification(report, uctx.Username))
	}
	realtime.Publish(realtime.TableComments, realtime.ActionInsert, comment.ID)

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// HandleListComments returns a report's comments, oldest first.
func HandleListComments(c *fiber.Ctx) error {
	if _, err := reportStore.GetByID(c.Context(), c.Params("id")); err != nil {
		return storeErrorResponse(c, err)
	}

	comments, err := commentRepo.ListByReport(c.Context(), c.Params("id"))
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return c.JSON(comments)
}
