package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// RecStatus is the lifecycle state of a student record. Students are never hard deleted.
type RecStatus string

const (
	RecStatusActive          RecStatus = "active"
	RecStatusInactive        RecStatus = "inactive"
	RecStatusCourseCompleted RecStatus = "courseCompleted"
)

type Qualification string

const (
	QualificationSSC       Qualification = "ssc"
	QualificationHSC       Qualification = "hsc"
	QualificationBachelors Qualification = "bachelors"
	QualificationMasters   Qualification = "masters"
	QualificationPhD       Qualification = "phd"
)

// QualificationOption is one entry of the qualification picker.
type QualificationOption struct {
	Value Qualification `json:"value"`
	Label string        `json:"label"`
}

// Qualifications lists the accepted values of Student.HighestQualification in display order.
func Qualifications() []QualificationOption {
	return []QualificationOption{
		{Value: QualificationSSC, Label: "SSC"},
		{Value: QualificationHSC, Label: "HSC"},
		{Value: QualificationBachelors, Label: "Bachelors"},
		{Value: QualificationMasters, Label: "Masters"},
		{Value: QualificationPhD, Label: "PhD"},
	}
}

type NotificationSettings struct {
	Email bool `bson:"email" json:"email"`
	Push  bool `bson:"push" json:"push"`
}

// Student is both a learner and, with an elevated role, a staff account.
// email, phoneNumber and studentId are unique across the collection.
type Student struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	StudentName          string               `bson:"studentname" json:"studentname" validate:"required"`
	StudentID            string               `bson:"studentId" json:"studentId" validate:"required,len=8"`
	Gender               string               `bson:"gender" json:"gender" validate:"required"`
	PhoneNumber          string               `bson:"phoneNumber" json:"phoneNumber" validate:"required,len=10,numeric"`
	Address              string               `bson:"address" json:"address" validate:"required"`
	DateOfBirth          string               `bson:"dateOfBirth" json:"dateOfBirth" validate:"required"`
	DateOfJoining        string               `bson:"dateOfJoining" json:"dateOfJoining" validate:"required"`
	Email                string               `bson:"email" json:"email" validate:"required,email"`
	Password             string               `bson:"password" json:"-"`
	AadharCard           string               `bson:"aadharCard,omitempty" json:"aadharCard,omitempty" validate:"omitempty,aadhar"`
	PanCard              string               `bson:"panCard,omitempty" json:"panCard,omitempty" validate:"omitempty,pan"`
	HighestQualification Qualification        `bson:"highestQualification" json:"highestQualification" validate:"required,oneof=ssc hsc bachelors masters phd"`
	SelectCourse         string               `bson:"selectCourse,omitempty" json:"selectCourse,omitempty"`
	Role                 Role                 `bson:"role" json:"role" validate:"required,oneof=student admin super_admin"`
	RecStatus            RecStatus            `bson:"recStatus" json:"recStatus" validate:"required,oneof=active inactive courseCompleted"`
	CreatedBy            string               `bson:"createdBy" json:"createdBy"`
	CreatedDate          time.Time            `bson:"createdDate" json:"createdDate"`
	UpdatedBy            string               `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	UpdatedDate          *time.Time           `bson:"updatedDate,omitempty" json:"updatedDate,omitempty"`
	NotificationSettings NotificationSettings `bson:"notificationSettings" json:"notificationSettings"`
}

// StudentStats counts students (role=student) per record status.
type StudentStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Inactive  int64 `json:"inActive"`
	Completed int64 `json:"completed"`
}

// StudentFilter narrows a student listing.
type StudentFilter struct {
	Role          Role
	ExcludeStatus RecStatus
	Search        string
}

// NotificationSettingsInput carries a partial settings change; nil fields are left untouched.
type NotificationSettingsInput struct {
	Email *bool `json:"email"`
	Push  *bool `json:"push"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
