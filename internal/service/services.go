package service

import (
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/auth"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/course/management"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/course/query"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/lecture/comment"
	lecturemanagement "github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/lecture/management"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/lecture/ordering"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/quiz/authoring"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/service/quiz/scoring"
)

type Collection struct {
	Auth             *auth.AuthService
	CourseManagement *management.CourseManagementService
	CourseQuery      *query.CourseQueryService
	Lectures         *lecturemanagement.LectureManagementService
	Ordering         *ordering.OrderingService
	Comments         *comment.CommentService
	Authoring        *authoring.AuthoringService
	Scoring          *scoring.ScoringService
}
