package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscare-app/CampusCare/app/models"
	"github.com/campuscare-app/CampusCare/app/repository"
	"github.com/campuscare-app/CampusCare/internal/pkg/notify"
	"github.com/campuscare-app/CampusCare/internal/pkg/usercontext"
)

type stubStore struct {
	mu      sync.Mutex
	reports map[string]*models.Report

	createCalls   int
	listCalls     int
	listMineCalls int
	updateCalls   int
	deleteCalls   int

	createErr error
}

func newStubStore(seed ...*models.Report) *stubStore {
	s := &stubStore{reports: make(map[string]*models.Report)}
	for _, r := range seed {
		s.reports[r.ID] = r
	}
	return s
}

func (s *stubStore) Name() string { return "stub" }

func (s *stubStore) Create(ctx context.Context, report *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	if s.createErr != nil {
		return s.createErr
	}
	if report.ID == "" {
		report.ID = "r-stub"
	}
	if report.Status == "" {
		report.Status = models.StatusSubmitted
	}
	s.reports[report.ID] = report
	return nil
}

func (s *stubStore) GetByID(ctx context.Context, id string) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.reports[id]; ok {
		return r, nil
	}
	return nil, repository.NewStoreError(repository.KindNotFound, nil)
}

func (s *stubStore) List(ctx context.Context) ([]models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	out := make([]models.Report, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, *r)
	}
	return out, nil
}

func (s *stubStore) ListByReporter(ctx context.Context, userID uint) ([]models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listMineCalls++
	var out []models.Report
	for _, r := range s.reports {
		if r.ReportedBy == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *stubStore) UpdateStatus(ctx context.Context, id string, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls++
	r, ok := s.reports[id]
	if !ok {
		return repository.NewStoreError(repository.KindNotFound, nil)
	}
	r.Status = status
	return nil
}

func (s *stubStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls++
	if _, ok := s.reports[id]; !ok {
		return repository.NewStoreError(repository.KindNotFound, nil)
	}
	delete(s.reports, id)
	return nil
}

type stubUploader struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (u *stubUploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	if u.err != nil {
		return "", u.err
	}
	return "https://cdn.example.test/" + key, nil
}

type channelSink struct {
	ch chan *models.Notification
}

func (s *channelSink) Create(ctx context.Context, n *models.Notification) error {
	s.ch <- n
	return nil
}

type stubComments struct {
	mu        sync.Mutex
	deleted   []string
	deleteErr error
}

func (s *stubComments) Create(ctx context.Context, c *models.ReportComment) error { return nil }
func (s *stubComments) ListByReport(ctx context.Context, id string) ([]models.ReportComment, error) {
	return nil, nil
}
func (s *stubComments) DeleteByReport(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type stubNotifications struct {
	mu      sync.Mutex
	deleted []string
}

func (s *stubNotifications) Create(ctx context.Context, n *models.Notification) error { return nil }
func (s *stubNotifications) ListByRecipient(ctx context.Context, r string) ([]models.Notification, error) {
	return nil, nil
}
func (s *stubNotifications) MarkAllRead(ctx context.Context, r string) (int64, error) {
	return 0, nil
}
func (s *stubNotifications) DeleteByReport(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, id)
	return nil
}

func testApp(uctx usercontext.UserContext) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("USER_CONTEXT", uctx)
		return c.Next()
	})
	app.Post("/reports", HandleCreateReport)
	app.Get("/reports", HandleListReports)
	app.Get("/reports/:id", HandleGetReport)
	app.Patch("/reports/:id/status", HandleUpdateReportStatus)
	app.Delete("/reports/:id", HandleDeleteReport)
	return app
}

func reportForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"title":       "Broken light",
		"description": "The lamp at lot B is out",
		"category":    models.CategoryElectrical,
		"location":    "Parking lot B",
	}
}

func TestHandleCreateReport(t *testing.T) {
	reporter := usercontext.UserContext{UserID: 7, Username: "Jamie", Email: "jamie@campus.test", IsLoggedIn: true}

	t.Run("rejects invalid input before touching any backend", func(t *testing.T) {
		store := newStubStore()
		uploader := &stubUploader{}
		InitializeReportController(store, uploader, nil, &stubComments{}, &stubNotifications{})
		app := testApp(reporter)

		fields := validFields()
		fields["category"] = "weather"
		body, contentType := reportForm(t, fields)

		req := httptest.NewRequest("POST", "/reports", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, 0, store.createCalls)
		assert.Equal(t, 0, uploader.calls)
	})

	t.Run("creates a submitted report and notifies the admin inbox", func(t *testing.T) {
		store := newStubStore()
		sink := &channelSink{ch: make(chan *models.Notification, 1)}
		dispatcher := notify.NewDispatcher(sink, 4)
		dispatcher.Start()
		defer dispatcher.Stop()
		InitializeReportController(store, nil, dispatcher, &stubComments{}, &stubNotifications{})
		app := testApp(reporter)

		body, contentType := reportForm(t, validFields())
		req := httptest.NewRequest("POST", "/reports", body)
		req.Header.Set("Content-Type", contentType)
		resp, err := app.Test(req)
		require.NoError(t, err)

		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var created models.Report
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		assert.Equal(t, models.StatusSubmitted, created.Status)
		assert.Equal(t, uint(7), created.ReportedBy)
		assert.Equal(t, "Jamie", created.ReporterName)

		select {
		case n := <-sink.ch:
			assert.Equal(t, models.RecipientAdmin, n.Recipient)
			assert.Equal(t, models.NotificationNewReport, n.Type)
			assert.Equal(t, "New report: Broken light", n.Title)
		case <-time.After(2 * time.Second):
			t.Fatal("no admin notification was dispatched")
		}
	})

	t.Run("files the report without an image when the upload fails", func(t *testing.T) {
		store := newStubStore()
		uploader := &stubUploader{err: repository.NewStoreError(repository.KindGeneric, nil)}
		InitializeReportController(store, uploader, nil, &stubComments{}, &stubNotifications{})
		app := testApp(reporter)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		for k, v := range validFields() {
			require.NoError(t, writer.WriteField(k, v))
		}
		part, err := writer.CreateFormFile("photo", "lamp.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("\xff\xd8\xff\xe0 fake jpeg body"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest("POST", "/reports", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, err := app.Test(req)
		require.NoError(t, err)

		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		var created struct {
			Report  models.Report `json:"report"`
			Warning string        `json:"warning"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		assert.Empty(t, created.Report.ImageURL)
		assert.NotEmpty(t, created.Warning)
		assert.Equal(t, 1, uploader.calls)
		assert.Equal(t, 1, store.createCalls)
	})

	t.Run("rejects a photo that is not an image", func(t *testing.T) {
		store := newStubStore()
		uploader := &stubUploader{}
		InitializeReportController(store, uploader, nil, &stubComments{}, &stubNotifications{})
		app := testApp(reporter)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		for k, v := range validFields() {
			require.NoError(t, writer.WriteField(k, v))
		}
		part, err := writer.CreateFormFile("photo", "lamp.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("<html><script>alert(1)</script></html>"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest("POST", "/reports", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, 0, uploader.calls)
		assert.Equal(t, 0, store.createCalls)
	})

	t.Run("aborts the submission when the bucket is missing", func(t *testing.T) {
		store := newStubStore()
		uploader := &stubUploader{err: repository.NewStoreError(repository.KindBucketMissing, nil)}
		InitializeReportController(store, uploader, nil, &stubComments{}, &stubNotifications{})
		app := testApp(reporter)

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		for k, v := range validFields() {
			require.NoError(t, writer.WriteField(k, v))
		}
		part, err := writer.CreateFormFile("photo", "lamp.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("\xff\xd8\xff\xe0 fake jpeg body"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest("POST", "/reports", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, 0, store.createCalls)
	})
}

func TestHandleListReports(t *testing.T) {
	reporter := usercontext.UserContext{UserID: 7, Username: "Jamie", IsLoggedIn: true}
	mine := &models.Report{ID: "r1", Title: "Broken light", Description: "d", Category: models.CategoryElectrical, Location: "Lot B", Status: models.StatusSubmitted, ReportedBy: 7}
	other := &models.Report{ID: "r2", Title: "Parking gate stuck", Description: "d", Category: models.CategoryParking, Location: "Gate 1", Status: models.StatusResolved, ReportedBy: 9}

	t.Run("mine=true only lists the caller's reports", func(t *testing.T) {
		store := newStubStore(mine, other)
		InitializeReportController(store, nil, nil, &stubComments{}, &stubNotifications{})
		app := testApp(reporter)

		resp, err := app.Test(httptest.NewRequest("GET", "/reports?mine=true", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var got []models.Report
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Len(t, got, 1)
		assert.Equal(t, "r1", got[0].ID)
		assert.Equal(t, 1, store.listMineCalls)
		assert.Equal(t, 0, store.listCalls)
	})

	t.Run("status filter narrows the shared list", func(t *testing.T) {
		store := newStubStore(mine, other)
		InitializeReportController(store, nil, nil, &stubComments{}, &stubNotifications{})
		app := testApp(reporter)

		resp, err := app.Test(httptest.NewRequest("GET", "/reports?status=resolved", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var got []models.Report
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Len(t, got, 1)
		assert.Equal(t, "r2", got[0].ID)
	})
}

func TestHandleUpdateReportStatus(t *testing.T) {
	admin := usercontext.UserContext{UserID: 1, Username: "Admin", IsLoggedIn: true, IsAdmin: true}

	t.Run("moves a submitted report to in-progress and notifies the reporter", func(t *testing.T) {
		report := &models.Report{ID: "r1", Title: "Broken light", Status: models.StatusSubmitted, ReportedBy: 7}
		store := newStubStore(report)
		sink := &channelSink{ch: make(chan *models.Notification, 1)}
		dispatcher := notify.NewDispatcher(sink, 4)
		dispatcher.Start()
		defer dispatcher.Stop()
		InitializeReportController(store, nil, dispatcher, &stubComments{}, &stubNotifications{})
		app := testApp(admin)

		payload, _ := json.Marshal(map[string]string{"status": models.StatusInProgress})
		req := httptest.NewRequest("PATCH", "/reports/r1/status", bytes.NewReader(payload))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)

		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, models.StatusInProgress, store.reports["r1"].Status)

		select {
		case n := <-sink.ch:
			assert.Equal(t, "7", n.Recipient)
			assert.Equal(t, models.NotificationStatusUpdate, n.Type)
		case <-time.After(2 * time.Second):
			t.Fatal("no status notification was dispatched")
		}
	})

	t.Run("reverting to submitted succeeds but stays silent", func(t *testing.T) {
		report := &models.Report{ID: "r1", Title: "Broken light", Status: models.StatusInProgress, ReportedBy: 7}
		store := newStubStore(report)
		sink := &channelSink{ch: make(chan *models.Notification, 1)}
		dispatcher := notify.NewDispatcher(sink, 4)
		dispatcher.Start()
		defer dispatcher.Stop()
		InitializeReportController(store, nil, dispatcher, &stubComments{}, &stubNotifications{})
		app := testApp(admin)

		payload, _ := json.Marshal(map[string]string{"status": models.StatusSubmitted})
		req := httptest.NewRequest("PATCH", "/reports/r1/status", bytes.NewReader(payload))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)

		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, models.StatusSubmitted, store.reports["r1"].Status)

		select {
		case n := <-sink.ch:
			t.Fatalf("unexpected %s notification for %s on a reversion", n.Type, n.Recipient)
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("rejects a transition outside the lifecycle table", func(t *testing.T) {
		report := &models.Report{ID: "r1", Title: "Broken light", Status: models.StatusResolved, ReportedBy: 7}
		store := newStubStore(report)
		InitializeReportController(store, nil, nil, &stubComments{}, &stubNotifications{})
		app := testApp(admin)

		payload, _ := json.Marshal(map[string]string{"status": models.StatusSubmitted})
		req := httptest.NewRequest("PATCH", "/reports/r1/status", bytes.NewReader(payload))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, 0, store.updateCalls)
	})

	t.Run("rejects re-setting the current status", func(t *testing.T) {
		report := &models.Report{ID: "r1", Title: "Broken light", Status: models.StatusSubmitted, ReportedBy: 7}
		store := newStubStore(report)
		InitializeReportController(store, nil, nil, &stubComments{}, &stubNotifications{})
		app := testApp(admin)

		payload, _ := json.Marshal(map[string]string{"status": models.StatusSubmitted})
		req := httptest.NewRequest("PATCH", "/reports/r1/status", bytes.NewReader(payload))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	})

	t.Run("rejects an unknown status value", func(t *testing.T) {
		report := &models.Report{ID: "r1", Title: "Broken light", Status: models.StatusSubmitted, ReportedBy: 7}
		store := newStubStore(report)
		InitializeReportController(store, nil, nil, &stubComments{}, &stubNotifications{})
		app := testApp(admin)

		payload, _ := json.Marshal(map[string]string{"status": "closed"})
		req := httptest.NewRequest("PATCH", "/reports/r1/status", bytes.NewReader(payload))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestHandleDeleteReport(t *testing.T) {
	owner := usercontext.UserContext{UserID: 7, Username: "Jamie", IsLoggedIn: true}
	stranger := usercontext.UserContext{UserID: 8, Username: "Alex", IsLoggedIn: true}
	admin := usercontext.UserContext{UserID: 1, Username: "Admin", IsLoggedIn: true, IsAdmin: true}

	t.Run("owner deletes an open report with its dependents", func(t *testing.T) {
		report := &models.Report{ID: "r1", Title: "Broken light", Status: models.StatusSubmitted, ReportedBy: 7}
		store := newStubStore(report)
		comments := &stubComments{}
		notifications := &stubNotifications{}
		InitializeReportController(store, nil, nil, comments, notifications)
		app := testApp(owner)

		resp, err := app.Test(httptest.NewRequest("DELETE", "/reports/r1", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		assert.Equal(t, []string{"r1"}, comments.deleted)
		assert.Equal(t, []string{"r1"}, notifications.deleted)
		assert.Empty(t, store.reports)
	})

	t.Run("report is still deleted when the comment cleanup fails", func(t *testing.T) {
		report := &models.Report{ID: "r1", Title: "Broken light", Status: models.StatusSubmitted, ReportedBy: 7}
		store := newStubStore(report)
		comments := &stubComments{deleteErr: repository.NewStoreError(repository.KindGeneric, nil)}
		notifications := &stubNotifications{}
		InitializeReportController(store, nil, nil, comments, notifications)
		app := testApp(owner)

		resp, err := app.Test(httptest.NewRequest("DELETE", "/reports/r1", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		assert.Empty(t, store.reports)
		assert.Equal(t, []string{"r1"}, notifications.deleted)
	})

	t.Run("owner cannot delete a resolved report", func(t *testing.T) {
		report := &models.Report{ID: "r1", Title: "Broken light", Status: models.StatusResolved, ReportedBy: 7}
		store := newStubStore(report)
		InitializeReportController(store, nil, nil, &stubComments{}, &stubNotifications{})
		app := testApp(owner)

		resp, err := app.Test(httptest.NewRequest("DELETE", "/reports/r1", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Equal(t, 0, store.deleteCalls)
	})

	t.Run("a stranger cannot delete someone else's report", func(t *testing.T) {
		report := &models.Report{ID: "r1", Title: "Broken light", Status: models.StatusSubmitted, ReportedBy: 7}
		store := newStubStore(report)
		InitializeReportController(store, nil, nil, &stubComments{}, &stubNotifications{})
		app := testApp(stranger)

		resp, err := app.Test(httptest.NewRequest("DELETE", "/reports/r1", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin deletes any report, resolved included", func(t *testing.T) {
		report := &models.Report{ID: "r1", Title: "Broken light", Status: models.StatusResolved, ReportedBy: 7}
		store := newStubStore(report)
		InitializeReportController(store, nil, nil, &stubComments{}, &stubNotifications{})
		app := testApp(admin)

		resp, err := app.Test(httptest.NewRequest("DELETE", "/reports/r1", nil))
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	})
}
