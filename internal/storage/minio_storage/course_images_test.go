package minio_storage

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	id := uuid.MustParse("7d5a6c1e-4f7b-4c55-9d59-0b1c6a3a0f11")

	assert.Equal(t, "course_images/"+id.String()+"/image.png", ObjectKey(id, "Cover.PNG"))
	assert.Equal(t, "course_images/"+id.String()+"/image.bin", ObjectKey(id, "cover"))
}
