// Package routes wires every endpoint to its controller and guards.
package routes

import (
	"net/http"
	"time"

	"github.com/handcraftedhaven/haven/app/controllers"
	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/config"
	"github.com/handcraftedhaven/haven/pkg/metrics"
	"github.com/handcraftedhaven/haven/pkg/middleware"
	"github.com/handcraftedhaven/haven/pkg/rbac"
	"github.com/handcraftedhaven/haven/pkg/reqid"
	"github.com/handcraftedhaven/haven/pkg/router"
)

// Register mounts the full API surface on r.
func Register(r *router.Router) {
	r.Use(
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
		metrics.Middleware(),
	)

	health := controllers.NewHealthController()
	auth := controllers.NewAuthController()
	products := controllers.NewProductController()
	reviews := controllers.NewReviewController()
	profiles := controllers.NewProfileController()
	uploads := controllers.NewUploadController()

	r.Get("/healthz", "healthz", health.Healthz)
	r.Get("/metrics", "metrics", metrics.Handler())

	// Locally stored product images. With the s3 disk, image URLs point at
	// the bucket and this route is never hit.
	if config.StorageDisk() == "local" {
		fs := http.StripPrefix("/storage/", http.FileServer(http.Dir(config.StorageLocalRoot())))
		r.Get("/storage/*", "storage.files", fs.ServeHTTP)
	}

	api := r.Group("/api")

	// Session endpoints. Guest blocks already-authenticated callers.
	api.Post("/register", "auth.register", auth.Register, middleware.OptionalAuth, rbac.Guest)
	api.Post("/login", "auth.login", auth.Login, middleware.OptionalAuth, rbac.Guest)
	api.Post("/refresh", "auth.refresh", auth.Refresh)

	// Public catalogue.
	api.Get("/products", "products.index", products.Index)
	api.Get("/products/{id}", "products.show", products.Show)
	api.Get("/products/{id}/reviews", "reviews.index", reviews.Index)
	api.Get("/artisans/{id}", "artisans.show", profiles.Artisan)

	// Reviews accept guests; signed-in buyers get linked to their review.
	api.Post("/products/{id}/reviews", "reviews.store", reviews.Store, middleware.OptionalAuth)

	// Everything below requires a session.
	authed := api.Group("", middleware.Auth)

	authed.Get("/me", "me.show", profiles.Me)
	authed.Put("/me", "me.update", profiles.UpdateMe)
	authed.Delete("/reviews/{id}", "reviews.destroy", reviews.Destroy)

	// Listing management is seller/admin territory; ownership is enforced
	// in the service layer.
	selling := authed.Group("", rbac.Require(models.RoleSeller, models.RoleAdmin))

	selling.Post("/products", "products.store", products.Store)
	selling.Put("/products/{id}", "products.update", products.Update)
	selling.Delete("/products/{id}", "products.destroy", products.Destroy)
	selling.Post("/uploads/product-image", "uploads.product-image", uploads.ProductImage)
}
