package params

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, query string) *QueryParams {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	return NewQueryParams(e.NewContext(req, rec))
}

func TestNewQueryParams_Defaults(t *testing.T) {
	p := paramsFor(t, "")

	assert.Equal(t, DefaultPageNumber, p.PageNumber)
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, "", p.Search)
}

func TestNewQueryParams_ParsesValues(t *testing.T) {
	p := paramsFor(t, "page=3&limit=50&search=park")

	assert.Equal(t, 3, p.PageNumber)
	assert.Equal(t, 50, p.PageSize)
	assert.Equal(t, "park", p.Search)
}

func TestNewQueryParams_ClampsBadInput(t *testing.T) {
	p := paramsFor(t, "page=-1&limit=10000")

	assert.Equal(t, DefaultPageNumber, p.PageNumber)
	assert.Equal(t, MaxPageSize, p.PageSize)
}

func TestOffset(t *testing.T) {
	p := &QueryParams{PageNumber: 3, PageSize: 20}
	assert.Equal(t, 40, p.Offset())
}
