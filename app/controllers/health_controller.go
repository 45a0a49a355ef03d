package controllers

import (
	"net/http"

	"github.com/handcraftedhaven/haven/pkg/cache"
	"github.com/handcraftedhaven/haven/pkg/database"
	"github.com/handcraftedhaven/haven/pkg/response"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// Healthz handles GET /healthz. The database is required; the cache is
// optional, so a cold Redis only degrades the report, never the status.
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}

	sqlDB, err := database.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		checks["database"] = "down"
		response.Error(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	if cache.RDB == nil {
		checks["cache"] = "disabled"
	} else if err := cache.RDB.Ping(r.Context()).Err(); err != nil {
		checks["cache"] = "down"
	}

	response.Success(w, checks)
}
