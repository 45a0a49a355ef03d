package controllers

import (
	"net/http"

	"github.com/handcraftedhaven/haven/app/services"
	"github.com/handcraftedhaven/haven/pkg/bind"
	"github.com/handcraftedhaven/haven/pkg/middleware"
	"github.com/handcraftedhaven/haven/pkg/response"
)

type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController() *ReviewController {
	return &ReviewController{reviews: services.NewReviewService()}
}

// Index handles GET /api/products/{id}/reviews.
func (c *ReviewController) Index(w http.ResponseWriter, r *http.Request) {
	productID, ok := paramID(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	page, limit := pageParams(r)
	reviews, pagination, err := c.reviews.ForProduct(productID, page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, reviews, pagination)
}

// Store handles POST /api/products/{id}/reviews. The route uses
// OptionalAuth: signed-in buyers get linked to their review, guests
// supply a display name.
func (c *ReviewController) Store(w http.ResponseWriter, r *http.Request) {
	productID, ok := paramID(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	var in services.ReviewInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	claims, _ := middleware.ClaimsFromCtx(r.Context())
	review, err := c.reviews.Create(productID, claims, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, review)
}

// Destroy handles DELETE /api/reviews/{id}.
func (c *ReviewController) Destroy(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}
	id, ok := paramID(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.reviews.Delete(id, claims.UserID, claims.Role); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "deleted"})
}
