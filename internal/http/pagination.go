package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Limit/offset pagination for list endpoints. Clients pass ?limit= and
// ?offset=; limits are clamped to maxPageLimit and default to
// defaultPageLimit when absent or malformed.
const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type page struct {
	Limit  int
	Offset int
}

func pageFromQuery(c *gin.Context) page {
	p := page{Limit: defaultPageLimit}

	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Limit = n
		}
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}

	if raw := c.Query("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Offset = n
		}
	}
	return p
}

// pagedResponse is the envelope returned by paginated list endpoints.
type pagedResponse struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

func newPagedResponse(c *gin.Context, count int64, p page, results any) pagedResponse {
	resp := pagedResponse{Count: count, Results: results}

	if int64(p.Offset+p.Limit) < count {
		resp.Next = pageURL(c, p.Limit, p.Offset+p.Limit)
	}
	if p.Offset > 0 {
		prev := p.Offset - p.Limit
		if prev < 0 {
			prev = 0
		}
		resp.Previous = pageURL(c, p.Limit, prev)
	}
	return resp
}

func pageURL(c *gin.Context, limit, offset int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
