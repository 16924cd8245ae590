package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcomeEscapesName(t *testing.T) {
	msg, err := RenderWelcome(WelcomeData{StudentName: "<b>Asha</b>"})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Coaching Management!", msg.Subject)
	assert.Contains(t, msg.HTML, "Welcome &lt;b&gt;Asha&lt;/b&gt;!")
}

func TestRenderCourseEnrollment(t *testing.T) {
	msg, err := RenderCourseEnrollment(CourseEnrollmentData{StudentName: "Asha", CourseName: "Physics"})
	require.NoError(t, err)

	assert.Equal(t, "Enrolled in Physics", msg.Subject)
	assert.Contains(t, msg.HTML, "<strong>Physics</strong>")
	assert.Contains(t, msg.HTML, "Hi Asha,")
}

func TestRenderPasswordChanged(t *testing.T) {
	msg, err := RenderPasswordChanged(PasswordChangedData{StudentName: "Asha"})
	require.NoError(t, err)
	assert.Equal(t, "Password Changed Successfully", msg.Subject)
	assert.Contains(t, msg.HTML, "Hi Asha,")
}

func TestNewSMTPSenderReportsMissing(t *testing.T) {
	_, err := NewSMTPSender("smtp.example.com", 0, "", "pw", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_PORT, SMTP_USER, SMTP_FROM")

	s, err := NewSMTPSender("smtp.example.com", 587, "user", "pw", "noreply@example.com")
	require.NoError(t, err)
	assert.Equal(t, 587, s.Port)
}

func TestNewSMTPSenderUnauthenticatedRelay(t *testing.T) {
	s, err := NewSMTPSender("relay.internal", 25, "", "", "noreply@example.com")
	require.NoError(t, err)
	assert.Empty(t, s.User)

	_, err = NewSMTPSender("relay.internal", 25, "user", "", "noreply@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_PASS")
}
