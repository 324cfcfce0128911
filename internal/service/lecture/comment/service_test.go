package comment

import (
	"context"
	"testing"
	"time"

	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/app_errors"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/internal/models"
	"github.com/GertMark2/simple-project-for-creating-courses-lectures-on-django/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLectures map[uuid.UUID]models.Lecture

func (f fakeLectures) GetLectureByID(_ context.Context, id uuid.UUID) (models.Lecture, error) {
	l, ok := f[id]
	if !ok {
		return models.Lecture{}, app_errors.ErrLectureNotFound
	}
	return l, nil
}

type fakeComments struct {
	stored []models.Comment
}

func (f *fakeComments) CreateComment(_ context.Context, c models.Comment) (*models.Comment, error) {
	c.ID = uuid.New()
	f.stored = append([]models.Comment{c}, f.stored...)
	return &c, nil
}

func (f *fakeComments) CountComments(_ context.Context, _ uuid.UUID) (int, error) {
	return len(f.stored), nil
}

func (f *fakeComments) CommentsByLecture(_ context.Context, _ uuid.UUID, limit, offset int) ([]models.Comment, error) {
	end := offset + limit
	if end > len(f.stored) {
		end = len(f.stored)
	}
	return f.stored[offset:end], nil
}

func TestPostComment(t *testing.T) {
	lecture := models.Lecture{ID: uuid.New()}
	comments := &fakeComments{}
	svc := NewCommentService(logger.Discard(), fakeLectures{lecture.ID: lecture}, comments)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	author := uuid.New()

	c, err := svc.PostComment(context.Background(), lecture.ID, author, "  great lecture \n")
	require.NoError(t, err)
	assert.Equal(t, "great lecture", c.Text)
	assert.Equal(t, author, c.AuthorID)
	assert.Equal(t, lecture.ID, c.LectureID)
	assert.Equal(t, fixed, c.CreatedAt)
	assert.Len(t, comments.stored, 1)
}

func TestPostCommentRejects(t *testing.T) {
	lecture := models.Lecture{ID: uuid.New()}
	comments := &fakeComments{}
	svc := NewCommentService(logger.Discard(), fakeLectures{lecture.ID: lecture}, comments)

	_, err := svc.PostComment(context.Background(), lecture.ID, uuid.New(), " \t ")
	vErr, ok := app_errors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "text", vErr.Field)

	_, err = svc.PostComment(context.Background(), uuid.New(), uuid.New(), "hello")
	assert.ErrorIs(t, err, app_errors.ErrLectureNotFound)
	assert.Empty(t, comments.stored)
}

func TestCommentsNewestFirst(t *testing.T) {
	lecture := models.Lecture{ID: uuid.New()}
	svc := NewCommentService(logger.Discard(), fakeLectures{lecture.ID: lecture}, &fakeComments{})
	ctx := context.Background()
	for _, text := range []string{"first", "second", "third"} {
		_, err := svc.PostComment(ctx, lecture.ID, uuid.New(), text)
		require.NoError(t, err)
	}

	page, err := svc.Comments(ctx, lecture.ID, "abc")
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "third", page.Items[0].Text)
	assert.Equal(t, 1, page.Number)
	assert.False(t, page.HasNext)
}
