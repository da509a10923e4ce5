package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// page is the limit/offset envelope returned when the caller opts into
// pagination by passing a limit.
type page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

type pagination struct {
	limit   int
	offset  int
	enabled bool
}

// parsePagination reads limit/offset from the query string. Pagination only
// kicks in when limit is present; without it list endpoints return a bare
// array. Returns false after writing a 400 when the parameters are not valid
// integers.
func parsePagination(c *gin.Context) (pagination, bool) {
	var p pagination

	rawLimit := c.Query("limit")
	if rawLimit == "" {
		return p, true
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit <= 0 {
		abortValidation(c, FieldErrors{"limit": {"A valid positive integer is required."}})
		return p, false
	}
	p.limit = limit
	p.enabled = true

	if rawOffset := c.Query("offset"); rawOffset != "" {
		offset, err := strconv.Atoi(rawOffset)
		if err != nil || offset < 0 {
			abortValidation(c, FieldErrors{"offset": {"A valid non-negative integer is required."}})
			return p, false
		}
		p.offset = offset
	}
	return p, true
}

// envelope wraps results with count and absolute next/previous page links.
func envelope(c *gin.Context, p pagination, count int64, results interface{}) page {
	out := page{Count: count, Results: results}
	if int64(p.offset+p.limit) < count {
		out.Next = pageLink(c, p.limit, p.offset+p.limit)
	}
	if p.offset > 0 {
		previous := p.offset - p.limit
		if previous < 0 {
			previous = 0
		}
		out.Previous = pageLink(c, p.limit, previous)
	}
	return out
}

func pageLink(c *gin.Context, limit, offset int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	} else {
		q.Del("offset")
	}
	u.RawQuery = q.Encode()

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	link := scheme + "://" + c.Request.Host + u.String()
	return &link
}
