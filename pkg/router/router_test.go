package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutesAndReversal(t *testing.T) {
	r := New()
	r.Get("/products/{id}", "products.show", ok)

	api := r.Group("/api")
	api.Post("/products/{id}/reviews", "reviews.store", ok)

	path, found := r.Path("products.show")
	require.True(t, found)
	assert.Equal(t, "/products/{id}", path)

	url, err := r.URL("reviews.store", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/api/products/7/reviews", url)

	_, err = r.URL("reviews.store", nil)
	assert.Error(t, err)

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestRoutesAreSorted(t *testing.T) {
	r := New()
	r.Get("/b", "b", ok)
	r.Get("/a", "a", ok)
	r.Post("/a", "a.create", ok)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, "/a", routes[0].Path)
	assert.Equal(t, http.MethodGet, routes[0].Method)
	assert.Equal(t, http.MethodPost, routes[1].Method)
	assert.Equal(t, "/b", routes[2].Path)
}

func TestGroupMiddlewareApplies(t *testing.T) {
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Tagged", "yes")
			next.ServeHTTP(w, r)
		})
	}

	r := New()
	guarded := r.Group("/admin", tag)
	guarded.Get("/ping", "admin.ping", ok)
	r.Get("/ping", "ping", ok)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/admin/ping")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "yes", resp.Header.Get("X-Tagged"))

	resp, err = http.Get(srv.URL + "/ping")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, resp.Header.Get("X-Tagged"))
}

func TestParam(t *testing.T) {
	r := New()
	var got string
	r.Get("/products/{id}", "products.show", func(w http.ResponseWriter, req *http.Request) {
		got = Param(req, "id")
	})

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/products/42")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "42", got)
}
