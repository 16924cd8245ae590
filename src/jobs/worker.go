package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"Coaching-Management-Backend/src/logger"
	"Coaching-Management-Backend/src/services/email"

	"github.com/hibiken/asynq"
)

type renderFunc func(p EmailPayload) (email.Message, error)

var renderers = map[string]renderFunc{
	TypeWelcomeEmail: func(p EmailPayload) (email.Message, error) {
		return email.RenderWelcome(email.WelcomeData{StudentName: p.StudentName})
	},
	TypeCourseEnrollmentEmail: func(p EmailPayload) (email.Message, error) {
		return email.RenderCourseEnrollment(email.CourseEnrollmentData{StudentName: p.StudentName, CourseName: p.CourseName})
	},
	TypePasswordChangedEmail: func(p EmailPayload) (email.Message, error) {
		return email.RenderPasswordChanged(email.PasswordChangedData{StudentName: p.StudentName})
	},
}

// HandleEmailTask renders the template for the task type and sends it.
// Undecodable payloads are not retried.
func HandleEmailTask(sender email.MailSender) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		render, ok := renderers[t.Type()]
		if !ok {
			return fmt.Errorf("unknown email task %q: %w", t.Type(), asynq.SkipRetry)
		}

		var p EmailPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
		}
		if p.To == "" {
			return fmt.Errorf("%s payload has no recipient: %w", t.Type(), asynq.SkipRetry)
		}

		msg, err := render(p)
		if err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if err := sender.Send(p.To, msg.Subject, msg.HTML); err != nil {
			logger.Warn().Err(err).Str("type", t.Type()).Str("to", p.To).Msg("email delivery failed")
			return err
		}

		logger.Info().Str("type", t.Type()).Str("to", p.To).Msg("email sent")
		return nil
	}
}

// RegisterHandlers binds every email task type to HandleEmailTask.
func RegisterHandlers(mux *asynq.ServeMux, sender email.MailSender) {
	h := HandleEmailTask(sender)
	for taskType := range renderers {
		mux.HandleFunc(taskType, h)
	}
}

// Worker is the in-process asynq server that drains the email queue.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(redisOpt asynq.RedisConnOpt, concurrency int, sender email.MailSender) *Worker {
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Logger:      asynqLogger{},
	})
	mux := asynq.NewServeMux()
	RegisterHandlers(mux, sender)
	return &Worker{server: server, mux: mux}
}

// Start returns once the server is processing; tasks run on asynq's goroutines.
func (w *Worker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start asynq worker: %w", err)
	}
	logger.Info().Msg("email worker started")
	return nil
}

func (w *Worker) Shutdown() {
	w.server.Shutdown()
}
