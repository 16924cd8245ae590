package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Message is a rendered email ready to send.
type Message struct {
	Subject string
	HTML    string
}

type WelcomeData struct {
	StudentName string
}

type CourseEnrollmentData struct {
	StudentName string
	CourseName  string
}

type PasswordChangedData struct {
	StudentName string
}

func RenderWelcome(data WelcomeData) (Message, error) {
	return render("welcome.html", "Welcome to Coaching Management!", data)
}

func RenderCourseEnrollment(data CourseEnrollmentData) (Message, error) {
	return render("course_enrollment.html", fmt.Sprintf("Enrolled in %s", data.CourseName), data)
}

func RenderPasswordChanged(data PasswordChangedData) (Message, error) {
	return render("password_changed.html", "Password Changed Successfully", data)
}

func render(name, subject string, data interface{}) (Message, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return Message{}, fmt.Errorf("render %s: %w", name, err)
	}
	return Message{Subject: subject, HTML: buf.String()}, nil
}
