// Package pagination implements offset-token paging shared by list endpoints.
package pagination

import (
	"encoding/base64"
	"strconv"
	"strings"
)

const (
	defaultPageSize = 25
	maxPageSize     = 200
)

// Pagination binds the common list query parameters.
type Pagination struct {
	PageToken string `form:"page_token" json:"page_token"`
	PageSize  int32  `form:"page_size" json:"page_size"`
}

// PageInfo is returned alongside list results.
type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	TotalCount    int64  `json:"total_count"`
}

// Resolve turns the request parameters into a limit and offset. Invalid
// tokens start from the first page rather than erroring.
func Resolve(p Pagination) (limit int, offset int) {
	limit = int(p.PageSize)
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset = decodeToken(p.PageToken)
	return limit, offset
}

// NextToken returns the token for the page after the current one, or empty
// when the listing is exhausted.
func NextToken(offset, limit int, total int64) string {
	next := offset + limit
	if int64(next) >= total {
		return ""
	}
	return encodeToken(next)
}

func encodeToken(offset int) string {
	return base64.RawURLEncoding.EncodeToString([]byte("o:" + strconv.Itoa(offset)))
}

func decodeToken(token string) int {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return 0
	}
	value, ok := strings.CutPrefix(string(raw), "o:")
	if !ok {
		return 0
	}
	offset, err := strconv.Atoi(value)
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}
