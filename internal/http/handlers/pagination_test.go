package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestPaginationParams(t *testing.T) {
	tests := []struct {
		query          string
		expectedLimit  int
		expectedOffset int
	}{
		{"", 20, 0},
		{"limit=50", 50, 0},
		{"limit=50&offset=100", 50, 100},
		{"limit=0", 20, 0},
		{"limit=-5", 20, 0},
		{"limit=500", 20, 0},
		{"offset=-1", 20, 0},
		{"limit=abc&offset=xyz", 20, 0},
		{"limit=100", 100, 0},
	}

	e := echo.New()
	for _, test := range tests {
		req := httptest.NewRequest("GET", "/?"+test.query, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		limit, offset := paginationParams(c)
		if limit != test.expectedLimit {
			t.Errorf("paginationParams(%q) limit = %d, expected %d", test.query, limit, test.expectedLimit)
		}
		if offset != test.expectedOffset {
			t.Errorf("paginationParams(%q) offset = %d, expected %d", test.query, offset, test.expectedOffset)
		}
	}
}
