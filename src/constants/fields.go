package constants

// Required fields must all be present in a request body before anything is written.
var RequiredFields = struct {
	StudentRegistration []string
	StudentUpdate       []string
	CourseRegistration  []string
	CourseUpdate        []string
	ChapterRegistration []string
	ChapterUpdate       []string
}{
	StudentRegistration: []string{"studentname", "gender", "phoneNumber", "address", "email", "dateOfBirth", "dateOfJoining", "highestQualification", "password", "studentId"},
	StudentUpdate:       []string{"_id", "studentname", "gender", "phoneNumber", "address", "email", "dateOfBirth", "dateOfJoining", "highestQualification", "studentId"},
	CourseRegistration:  []string{"title", "description"},
	CourseUpdate:        []string{"_id"},
	ChapterRegistration: []string{"courseId", "title", "description", "concepts", "references"},
	ChapterUpdate:       []string{"_id"},
}

// Expected fields are the allow-list copied from a request body; anything else is dropped.
var ExpectedFields = struct {
	Student []string
	Course  []string
	Chapter []string
}{
	Student: []string{"studentname", "gender", "phoneNumber", "address", "email", "dateOfBirth", "dateOfJoining", "aadharCard", "panCard", "selectCourse", "highestQualification", "recStatus", "role", "studentId", "notificationSettings"},
	Course:  []string{"title", "description"},
	Chapter: []string{"courseId", "title", "description", "concepts", "references"},
}

// Sortable fields accepted by the list endpoints.
var SortFields = struct {
	Student []string
	Course  []string
	Chapter []string
}{
	Student: []string{"createdDate", "studentname", "studentId", "email", "dateOfJoining"},
	Course:  []string{"createdDate", "title"},
	Chapter: []string{"createdDate", "title"},
}
