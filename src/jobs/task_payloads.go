package jobs

import (
	"encoding/json"
	"strings"

	"github.com/hibiken/asynq"
)

const (
	TypeWelcomeEmail          = "email:welcome"
	TypeCourseEnrollmentEmail = "email:course-enrollment"
	TypePasswordChangedEmail  = "email:password-changed"
)

type EmailPayload struct {
	To          string `json:"to"`
	StudentName string `json:"studentName"`
	CourseName  string `json:"courseName,omitempty"`
}

func (p *EmailPayload) Normalize() {
	p.To = strings.TrimSpace(p.To)
	p.StudentName = strings.TrimSpace(p.StudentName)
	p.CourseName = strings.TrimSpace(p.CourseName)
}

func newEmailTask(taskType string, payload EmailPayload) (*asynq.Task, error) {
	payload.Normalize()
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, b), nil
}

func NewWelcomeEmailTask(to, studentName string) (*asynq.Task, error) {
	return newEmailTask(TypeWelcomeEmail, EmailPayload{To: to, StudentName: studentName})
}

func NewCourseEnrollmentEmailTask(to, studentName, courseName string) (*asynq.Task, error) {
	return newEmailTask(TypeCourseEnrollmentEmail, EmailPayload{To: to, StudentName: studentName, CourseName: courseName})
}

func NewPasswordChangedEmailTask(to, studentName string) (*asynq.Task, error) {
	return newEmailTask(TypePasswordChangedEmail, EmailPayload{To: to, StudentName: studentName})
}
