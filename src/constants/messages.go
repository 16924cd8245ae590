package constants

const (
	MsgMissingParameters  = "Required parameters are missing"
	MsgInvalidInput       = "Invalid input"
	MsgInvalidID          = "Invalid ID"
	MsgInternalError      = "Internal server error"
	MsgUnauthorized       = "Invalid or missing token"
	MsgForbidden          = "You are not allowed to access this resource"
	MsgInvalidCredentials = "Invalid credentials"
	MsgInactiveAccount    = "Account is inactive"
	MsgCredentialsMissing = "Email and password are required"
	MsgTooManyRequests    = "Too many requests, please try again later"
	MsgURLNotFound        = "URL not found"

	MsgLogin            = "Login successful"
	MsgLogout           = "Logout successful"
	MsgTokenRefreshed   = "Token refreshed"
	MsgAllStudents      = "All students"
	MsgSingleStudent    = "Student details"
	MsgStudentCreated   = "Student registered successfully"
	MsgStudentUpdated   = "Student updated successfully"
	MsgStudentDeleted   = "Student deactivated successfully"
	MsgStudentNotFound  = "Student not found"
	MsgStudentExists    = "A student with this email, phone number or student ID already exists"
	MsgStudentStats     = "Student statistics"
	MsgQualifications   = "Qualifications"
	MsgProfile          = "Profile retrieved"
	MsgSettingsUpdated  = "Settings updated"
	MsgPasswordChanged  = "Password changed successfully"
	MsgPasswordMismatch = "Current password is incorrect"

	MsgAllCourses     = "All courses"
	MsgSingleCourse   = "Course details"
	MsgCourseCreated  = "Course created successfully"
	MsgCourseUpdated  = "Course updated successfully"
	MsgCourseDeleted  = "Course deleted successfully"
	MsgCourseNotFound = "Course not found"

	MsgAllChapters     = "All chapters"
	MsgSingleChapter   = "Chapter details"
	MsgChapterCreated  = "Chapter created successfully"
	MsgChapterUpdated  = "Chapter updated successfully"
	MsgChapterDeleted  = "Chapter deleted successfully"
	MsgChapterNotFound = "Chapter not found"
)
