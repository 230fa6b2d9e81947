package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]any{"count": 2})

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, map[string]any{"count": 2}, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("recipe not found")

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "recipe not found", resp.Error)
}
