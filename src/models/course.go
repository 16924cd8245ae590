package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	CreatedDate time.Time          `bson:"createdDate" json:"createdDate"`
	UpdatedBy   string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	UpdatedDate *time.Time         `bson:"updatedDate,omitempty" json:"updatedDate,omitempty"`
}

// CourseFilter narrows a course listing.
type CourseFilter struct {
	Search string
}
