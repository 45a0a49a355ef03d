package controllers

import (
	"net/http"

	"github.com/handcraftedhaven/haven/app/services"
	"github.com/handcraftedhaven/haven/pkg/bind"
	"github.com/handcraftedhaven/haven/pkg/middleware"
	"github.com/handcraftedhaven/haven/pkg/response"
)

type ProfileController struct {
	profiles *services.ProfileService
}

func NewProfileController() *ProfileController {
	return &ProfileController{profiles: services.NewProfileService()}
}

// Me handles GET /api/me.
func (c *ProfileController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.profiles.Get(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, user)
}

// UpdateMe handles PUT /api/me.
func (c *ProfileController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.ProfileUpdateInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.profiles.Update(userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, user)
}

// Artisan handles GET /api/artisans/{id}: a seller's public storefront.
func (c *ProfileController) Artisan(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	profile, err := c.profiles.Artisan(id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, profile)
}
