package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chapter belongs to a course by id. The course is not required to exist.
type Chapter struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CourseID    primitive.ObjectID `bson:"courseId" json:"courseId" validate:"required"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Concepts    []string           `bson:"concepts" json:"concepts" validate:"required,dive,required"`
	References  []string           `bson:"references" json:"references" validate:"required"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	CreatedDate time.Time          `bson:"createdDate" json:"createdDate"`
	UpdatedBy   string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	UpdatedDate *time.Time         `bson:"updatedDate,omitempty" json:"updatedDate,omitempty"`
}

// ChapterFilter narrows a chapter listing. A zero CourseID lists every chapter.
type ChapterFilter struct {
	CourseID primitive.ObjectID
	Search   string
}
