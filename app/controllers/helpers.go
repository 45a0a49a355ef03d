// Package controllers translates HTTP requests into service calls and
// service results back into the shared JSON envelope.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/handcraftedhaven/haven/app/services"
	"github.com/handcraftedhaven/haven/pkg/logger"
	"github.com/handcraftedhaven/haven/pkg/response"
	"github.com/handcraftedhaven/haven/pkg/router"
)

// paramID reads a numeric URL parameter. ok is false on garbage input.
func paramID(r *http.Request, name string) (uint, bool) {
	n, err := strconv.ParseUint(router.Param(r, name), 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// pageParams reads ?page= and ?limit=, leaving clamping to the ORM.
func pageParams(r *http.Request) (page, limit int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	limit, _ = strconv.Atoi(q.Get("limit"))
	return page, limit
}

// fail maps service errors onto HTTP statuses. Unknown errors become an
// opaque 500; the detail goes to the log, not the client.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, services.ErrForbidden):
		response.Forbidden(w)
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrSellerUnverified):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrImageTooLarge):
		response.Error(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, services.ErrUnsupportedImage):
		response.Error(w, http.StatusUnsupportedMediaType, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
