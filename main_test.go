package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"water-gardens/environment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// the router panics at registration time on an illegal route combination, so
// building the full table is itself the assertion
func TestRouteTableRegisters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	assert.NotPanics(t, func() { setupRoutes(r) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRatingAddRouteDispatch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	setupRoutes(r)

	// the "add" segment reaches the rating handler, which rejects the
	// malformed body before touching any store
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/garden/1/rating/add", strings.NewReader("{")))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// any other value in the "add" position is an unknown route
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/garden/1/rating/anything", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	// the delete sub-route still resolves past the wildcard; an empty model
	// registry is enough because the handler fails on the malformed id
	environment.Env = &environment.Environment{}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/garden/1/rating/2/delete", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
