package jobs

import (
	"context"
	"sync"
	"time"

	"Coaching-Management-Backend/src/logger"
	"Coaching-Management-Backend/src/models"
	"Coaching-Management-Backend/src/services/email"

	"github.com/hibiken/asynq"
)

const inlineSendTimeout = 30 * time.Second

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Dispatcher hands email side effects off the request goroutine. With a queue
// the task goes to asynq; without one it is sent from a detached goroutine.
// Either way failures are logged and never reach the caller.
type Dispatcher struct {
	queue  Enqueuer
	sender email.MailSender
	wg     sync.WaitGroup
}

// NewDispatcher accepts a nil queue, a nil sender, or both. With neither, emails are dropped.
func NewDispatcher(queue Enqueuer, sender email.MailSender) *Dispatcher {
	return &Dispatcher{queue: queue, sender: sender}
}

func (d *Dispatcher) WelcomeStudent(ctx context.Context, s *models.Student) {
	task, err := NewWelcomeEmailTask(s.Email, s.StudentName)
	d.dispatch(task, err)
}

func (d *Dispatcher) CourseEnrollment(ctx context.Context, s *models.Student, courseName string) {
	task, err := NewCourseEnrollmentEmailTask(s.Email, s.StudentName, courseName)
	d.dispatch(task, err)
}

func (d *Dispatcher) PasswordChanged(ctx context.Context, s *models.Student) {
	task, err := NewPasswordChangedEmailTask(s.Email, s.StudentName)
	d.dispatch(task, err)
}

// Wait blocks until inline sends have finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(task *asynq.Task, err error) {
	if err != nil {
		logger.Error().Err(err).Msg("build email task")
		return
	}

	if d.queue != nil {
		if _, err := d.queue.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(time.Minute)); err != nil {
			logger.Error().Err(err).Str("type", task.Type()).Msg("enqueue email task")
		}
		return
	}

	if d.sender == nil {
		logger.Debug().Str("type", task.Type()).Msg("no mail transport configured, email skipped")
		return
	}

	handler := HandleEmailTask(d.sender)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), inlineSendTimeout)
		defer cancel()
		if err := handler(ctx, task); err != nil {
			logger.Warn().Err(err).Str("type", task.Type()).Msg("inline email failed")
		}
	}()
}
