package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestDefaultParams(t *testing.T) {
	assert.Equal(t, Params{Limit: 20, Offset: 0}, DefaultParams(0, -3, 20, 100))
	assert.Equal(t, Params{Limit: 100, Offset: 5}, DefaultParams(500, 5, 20, 100))
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Limit: 10, Offset: 10}, 25)
	assert.True(t, meta.HasMore)

	meta = NewMeta(Params{Limit: 10, Offset: 20}, 25)
	assert.False(t, meta.HasMore)
}

func TestWindow(t *testing.T) {
	start, end := Params{Limit: 10, Offset: 20}.Window(25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = Params{Limit: 10, Offset: 40}.Window(25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}

func TestFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?limit=abc&offset=7", nil)

	assert.Equal(t, Params{Limit: 20, Offset: 7}, FromQuery(c, 20, 100))
}
