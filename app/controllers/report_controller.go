package controllers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/campuscare-app/CampusCare/app/models"
	"github.com/campuscare-app/CampusCare/app/repository"
	"github.com/campuscare-app/CampusCare/internal/pkg/notify"
	"github.com/campuscare-app/CampusCare/internal/pkg/realtime"
	"github.com/campuscare-app/CampusCare/internal/pkg/reportfilter"
	"github.com/campuscare-app/CampusCare/internal/pkg/storage"
	"github.com/campuscare-app/CampusCare/internal/pkg/upload"
	"github.com/campuscare-app/CampusCare/internal/pkg/usercontext"
)

// Uploader is the slice of the storage client the report workflow needs.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

var (
	reportStore      repository.ReportStore
	reportUploader   Uploader
	reportDispatcher *notify.Dispatcher
	commentRepo      repository.CommentRepository
	notificationRepo repository.NotificationRepository
)

// InitializeReportController wires the report endpoints to their backends.
// The uploader may be nil when no object storage is configured.
func InitializeReportController(
	store repository.ReportStore,
	uploader Uploader,
	dispatcher *notify.Dispatcher,
	comments repository.CommentRepository,
	notifications repository.NotificationRepository,
) {
	reportStore = store
	reportUploader = uploader
	reportDispatcher = dispatcher
	commentRepo = comments
	notificationRepo = notifications
}

// createReportWorkflow carries one report submission through validation,
// photo upload, persistence and notification. Steps run strictly in that
// order so an invalid request never touches storage or the database.
type createReportWorkflow struct {
	c    *fiber.Ctx
	uctx usercontext.UserContext

	report        *models.Report
	fileHeader    *multipart.FileHeader
	uploadWarning string
}

func (w *createReportWorkflow) parseAndValidate() error {
	w.report = &models.Report{
		Title:         w.c.FormValue("title"),
		Description:   w.c.FormValue("description"),
		Category:      w.c.FormValue("category"),
		Location:      w.c.FormValue("location"),
		ReportedBy:    w.uctx.UserID,
		ReporterName:  w.uctx.Username,
		ReporterEmail: w.uctx.Email,
	}

	if err := w.report.Validate(); err != nil {
		return jsonError(w.c, fiber.StatusUnprocessableEntity, "validation_failed", "title, description, category and location are required")
	}

	// the photo is optional
	if fh, err := w.c.FormFile("photo"); err == nil {
		w.fileHeader = fh
	}

	return nil
}

// uploadPhoto pushes the attached photo to object storage. A missing bucket
// aborts the submission; any other upload failure files the report without
// an image.
func (w *createReportWorkflow) uploadPhoto() error {
	if w.fileHeader == nil || reportUploader == nil {
		return nil
	}

	file, err := w.fileHeader.Open()
	if err != nil {
		log.Warnf("[Report] cannot open uploaded photo %s: %v", w.fileHeader.Filename, err)
		return nil
	}
	defer file.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	contentType, err := upload.ValidateImageBySniff(w.fileHeader.Filename, head[:n])
	if err != nil {
		return jsonError(w.c, fiber.StatusUnprocessableEntity, "validation_failed", err.Error())
	}

	key := storage.ObjectKey(w.uctx.UserID, w.fileHeader.Filename, time.Now())
	body := io.MultiReader(bytes.NewReader(head[:n]), file)

	url, err := reportUploader.Upload(w.c.Context(), key, body, contentType)
	if err != nil {
		if repository.KindOf(err) == repository.KindBucketMissing {
			return storeErrorResponse(w.c, err)
		}
		log.Warnf("[Report] photo upload failed, filing report without image: %v", err)
		w.uploadWarning = "The photo could not be uploaded; the report was filed without it."
		return nil
	}

	w.report.ImageURL = url
	return nil
}

func (w *createReportWorkflow) persist() error {
	if err := reportStore.Create(w.c.Context(), w.report); err != nil {
		return storeErrorResponse(w.c, err)
	}
	return nil
}

func (w *createReportWorkflow) notifyAndPublish() {
	if reportDispatcher != nil {
		reportDispatcher.Enqueue(notify.NewReportNotification(w.report))
	}
	realtime.Publish(realtime.TableReports, realtime.ActionInsert, w.report.ID)
}

// HandleCreateReport files a new campus issue report for the logged-in user.
func HandleCreateReport(c *fiber.Ctx) error {
	workflow := &createReportWorkflow{c: c, uctx: usercontext.GetUserContext(c)}

	if err := workflow.parseAndValidate(); err != nil {
		return err
	}
	if err := workflow.uploadPhoto(); err != nil {
		return err
	}
	if err := workflow.persist(); err != nil {
		return err
	}
	workflow.notifyAndPublish()

	if workflow.uploadWarning != "" {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"report":  workflow.report,
			"warning": workflow.uploadWarning,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(workflow.report)
}

// HandleListReports returns reports, newest first, with optional in-memory
// search, status filtering and sort overrides. ?mine=true restricts the
// result to the caller's own reports.
func HandleListReports(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	var (
		reports []models.Report
		err     error
	)
	if c.Query("mine") == "true" {
		reports, err = reportStore.ListByReporter(c.Context(), uctx.UserID)
	} else {
		reports, err = reportStore.List(c.Context())
	}
	if err != nil {
		return storeErrorResponse(c, err)
	}

	reports = reportfilter.Apply(reports, reportfilter.Options{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Sort:   c.Query("sort"),
	})

	return c.JSON(reports)
}

func HandleGetReport(c *fiber.Ctx) error {
	report, err := reportStore.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErrorResponse(c, err)
	}

	return c.JSON(report)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateReportStatus moves a report through its lifecycle. Admin only;
// the route group enforces that. Transitions outside the lifecycle table are
// rejected, as is re-setting the current status.
func HandleUpdateReportStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "bad_request", "invalid request body")
	}
	if !models.IsValidStatus(req.Status) {
		return jsonError(c, fiber.StatusUnprocessableEntity, "validation_failed", "status must be one of: submitted, in-progress, resolved")
	}

	report, err := reportStore.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErrorResponse(c, err)
	}

	if report.Status == req.Status {
		return jsonError(c, fiber.StatusConflict, "invalid_transition", "report already has status "+req.Status)
	}
	if !models.CanTransition(report.Status, req.Status) {
		return jsonError(c, fiber.StatusConflict, "invalid_transition", "cannot move a report from "+report.Status+" to "+req.Status)
	}

	if err := reportStore.UpdateStatus(c.Context(), report.ID, req.Status); err != nil {
		return storeErrorResponse(c, err)
	}
	report.Status = req.Status

	// only forward progress is worth telling the reporter about; a
	// reversion to submitted stays silent
	if reportDispatcher != nil && (req.Status == models.StatusInProgress || req.Status == models.StatusResolved) {
		reportDispatcher.Enqueue(notify.StatusNotification(report, req.Status))
	}
	realtime.Publish(realtime.TableReports, realtime.ActionUpdate, report.ID)

	return c.JSON(report)
}

// HandleDeleteReport removes a report with its comments and notifications.
// Reporters may delete their own reports as long as they are not resolved;
// administrators may delete anything.
func HandleDeleteReport(c *fiber.Ctx) error {
	uctx := usercontext.GetUserContext(c)

	report, err := reportStore.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return storeErrorResponse(c, err)
	}

	if !uctx.IsAdmin {
		if report.ReportedBy != uctx.UserID {
			return jsonError(c, fiber.StatusForbidden, "forbidden", "you can only delete your own reports")
		}
		if report.Status == models.StatusResolved {
			return jsonError(c, fiber.StatusForbidden, "forbidden", "resolved reports cannot be deleted")
		}
	}

	// dependent rows go first so a failed report delete never orphans them
	if commentRepo != nil {
		if err := commentRepo.DeleteByReport(c.Context(), report.ID); err != nil {
			log.Warnf("[Report] deleting comments of %s failed: %v", report.ID, err)
		}
	}
	if notificationRepo != nil {
		if err := notificationRepo.DeleteByReport(c.Context(), report.ID); err != nil {
			log.Warnf("[Report] deleting notifications of %s failed: %v", report.ID, err)
		}
	}

	if err := reportStore.Delete(c.Context(), report.ID); err != nil {
		return storeErrorResponse(c, err)
	}

	realtime.Publish(realtime.TableReports, realtime.ActionDelete, report.ID)

	return c.SendStatus(fiber.StatusNoContent)
}
