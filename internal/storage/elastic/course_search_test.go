package elastic

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSearchResponse(t *testing.T) {
	id := uuid.New()
	body := `{"hits":{"total":{"value":7,"relation":"eq"},"hits":[{"_id":"` + id.String() + `"},{"_id":"not-a-uuid"}]}}`

	ids, total, err := decodeSearchResponse(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	assert.Equal(t, []uuid.UUID{id}, ids)
}

func TestDecodeSearchResponseMalformed(t *testing.T) {
	_, _, err := decodeSearchResponse(strings.NewReader("{"))
	assert.Error(t, err)
}
