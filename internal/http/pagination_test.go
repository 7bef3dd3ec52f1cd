package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c
}

func TestPageFromQuery(t *testing.T) {
	tests := []struct {
		url    string
		limit  int
		offset int
	}{
		{"/posts", defaultPageLimit, 0},
		{"/posts?limit=5&offset=20", 5, 20},
		{"/posts?limit=100000", maxPageLimit, 0},
		{"/posts?limit=abc&offset=-3", defaultPageLimit, 0},
		{"/posts?limit=0", defaultPageLimit, 0},
	}

	for _, tt := range tests {
		p := pageFromQuery(testContext(t, tt.url))
		assert.Equal(t, tt.limit, p.Limit, tt.url)
		assert.Equal(t, tt.offset, p.Offset, tt.url)
	}
}

func TestPagedResponseLinks(t *testing.T) {
	c := testContext(t, "/api/v1/posts?limit=2&offset=2")
	resp := newPagedResponse(c, 7, page{Limit: 2, Offset: 2}, nil)

	assert.EqualValues(t, 7, resp.Count)
	require.NotNil(t, resp.Next)
	assert.Contains(t, *resp.Next, "offset=4")
	require.NotNil(t, resp.Previous)
	assert.Contains(t, *resp.Previous, "offset=0")

	// First page has no previous, last page no next.
	first := newPagedResponse(c, 7, page{Limit: 10, Offset: 0}, nil)
	assert.Nil(t, first.Next)
	assert.Nil(t, first.Previous)
}
