package notify

import (
	"context"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/campuscare-app/CampusCare/app/models"
)

const defaultQueueSize = 64

// Sink persists a notification record. Implemented by the notification repository.
type Sink interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// Dispatcher delivers notifications best-effort through a bounded queue.
// Failures are logged and dropped; nothing here may ever affect the outcome
// of the operation that triggered the event.
type Dispatcher struct {
	sink   Sink
	queue  chan *models.Notification
	stopCh chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex

	running bool
}

// NewDispatcher creates a dispatcher with the given queue capacity.
func NewDispatcher(sink Sink, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = defaultQueueSize
	}
	return &Dispatcher{
		sink:   sink,
		queue:  make(chan *models.Notification, buffer),
		stopCh: make(chan struct{}),
	}
}

// Start launches the delivery worker.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return
	}
	d.running = true

	d.wg.Add(1)
	go d.worker()
}

// Stop shuts the worker down after draining the queue.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	close(d.stopCh)
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case n := <-d.queue:
			d.deliver(n)
		case <-d.stopCh:
			// drain what is already queued, then exit
			for {
				select {
				case n := <-d.queue:
					d.deliver(n)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(n *models.Notification) {
	if err := d.sink.Create(context.Background(), n); err != nil {
		log.Warnf("[Notify] dropping %s notification for %s: %v", n.Type, n.Recipient, err)
	}
}

// Enqueue hands a notification to the worker. A full queue drops the event
// with a log line; there is no retry and no backpressure.
func (d *Dispatcher) Enqueue(n *models.Notification) {
	select {
	case d.queue <- n:
	default:
		log.Warnf("[Notify] queue full, dropping %s notification for %s", n.Type, n.Recipient)
	}
}

// DispatchNow delivers synchronously, still swallowing failures.
func (d *Dispatcher) DispatchNow(ctx context.Context, n *models.Notification) {
	if err := d.sink.Create(ctx, n); err != nil {
		log.Warnf("[Notify] dropping %s notification for %s: %v", n.Type, n.Recipient, err)
	}
}

// ReporterRecipient renders a reporter user id as a recipient token.
func ReporterRecipient(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}

// NewReportNotification addresses the admin inbox about a fresh report.
func NewReportNotification(report *models.Report) *models.Notification {
	return &models.Notification{
		Recipient: models.RecipientAdmin,
		Type:      models.NotificationNewReport,
		Title:     "New report: " + report.Title,
		Content:   "A new report has been submitted by " + report.ReporterName,
		ReportID:  report.ID,
		UserID:    report.ReportedBy,
	}
}

// StatusNotification addresses the reporter about a status change.
func StatusNotification(report *models.Report, status string) *models.Notification {
	notificationType := models.NotificationStatusUpdate
	title := "Report in progress: " + report.Title
	content := "Your report is now being worked on"
	if status == models.StatusResolved {
		notificationType = models.NotificationResolved
		title = "Report resolved: " + report.Title
		content = "Your report has been marked as resolved"
	}
	return &models.Notification{
		Recipient: ReporterRecipient(report.ReportedBy),
		Type:      notificationType,
		Title:     title,
		Content:   content,
		ReportID:  report.ID,
		UserID:    report.ReportedBy,
	}
}

// CommentNotification addresses the reporter about an admin comment.
func CommentNotification(report *models.Report, commenter string) *models.Notification {
	return &models.Notification{
		Recipient: ReporterRecipient(report.ReportedBy),
		Type:      models.NotificationComment,
		Title:     "New comment on: " + report.Title,
		Content:   commenter + " commented on your report",
		ReportID:  report.ID,
		UserID:    report.ReportedBy,
	}
}
