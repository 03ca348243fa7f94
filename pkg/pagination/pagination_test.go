package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/products", nil)
	p := FromRequest(r)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
}

func TestFromRequest_ExplicitValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=3&per_page=50", nil)
	p := FromRequest(r)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 50, p.PerPage)
}

func TestFromRequest_PageZeroPassesThrough(t *testing.T) {
	// Out-of-range pages are the paginator's concern; they yield an empty
	// page downstream instead of being clamped here.
	r := httptest.NewRequest("GET", "/products?page=0", nil)
	assert.Equal(t, 0, FromRequest(r).Page)
}

func TestFromRequest_PerPageCapped(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?per_page=5000", nil)
	assert.Equal(t, DefaultPerPage, FromRequest(r).PerPage)

	r = httptest.NewRequest("GET", "/products?per_page=-1", nil)
	assert.Equal(t, DefaultPerPage, FromRequest(r).PerPage)
}

func TestFromRequest_Garbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?page=abc&per_page=xyz", nil)
	p := FromRequest(r)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
}
