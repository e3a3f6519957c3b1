package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	p, l := NormalizePage(-1, 0)
	assert.Equal(t, 0, p)
	assert.Equal(t, DefaultLimit, l)

	_, l = NormalizePage(2, 1000)
	assert.Equal(t, MaxLimit, l)
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?page=3&limit=25", nil)

	p, l := ParsePagination(c)
	assert.Equal(t, 3, p)
	assert.Equal(t, 25, l)

	c.Request = httptest.NewRequest("GET", "/?page=abc&limit=-5", nil)
	p, l = ParsePagination(c)
	assert.Equal(t, 0, p)
	assert.Equal(t, DefaultLimit, l)
}
