package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CoursesPerPage  = 6
	CommentsPerPage = 10
)

type Course struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	ImageObjectKey string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorID       uuid.UUID `json:"author_id"`
}

type CoursePreview struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	AuthorName  string    `json:"author_name"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CourseDetail struct {
	CoursePreview
	Lectures []Lecture `json:"lectures"`
}
