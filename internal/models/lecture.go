package models

import (
	"time"

	"github.com/google/uuid"
)

type Lecture struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"course_id"`
	Title     string    `json:"title"`
	VideoURL  *string   `json:"video_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	// Order is nil only until the lecture is persisted.
	Order *int `json:"order"`
}

type Comment struct {
	ID         uuid.UUID `json:"id"`
	LectureID  uuid.UUID `json:"lecture_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type LectureDetail struct {
	Lecture  Lecture       `json:"lecture"`
	Comments Page[Comment] `json:"comments"`
}
