package controllers

import (
	"net/http"
	"strconv"

	"github.com/handcraftedhaven/haven/app/services"
	"github.com/handcraftedhaven/haven/pkg/middleware"
	"github.com/handcraftedhaven/haven/pkg/response"
)

type UploadController struct {
	uploads *services.UploadService
}

func NewUploadController() *UploadController {
	return &UploadController{uploads: services.NewUploadService()}
}

// ProductImage handles POST /api/uploads/product-image.
// Multipart form with an "image" part; an optional "product_id" field
// attaches the image to an existing listing.
func (c *UploadController) ProductImage(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := r.ParseMultipartForm(services.MaxImageBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, `missing "image" file`)
		return
	}
	defer file.Close()

	var productID uint
	if raw := r.FormValue("product_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "invalid product_id")
			return
		}
		productID = uint(id)
	}

	url, err := c.uploads.ProductImage(claims.UserID, claims.Role, productID, file)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, map[string]string{"url": url})
}
