package controllers

import (
	"net/http"
	"strconv"

	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/app/repositories"
	"github.com/handcraftedhaven/haven/app/services"
	"github.com/handcraftedhaven/haven/pkg/bind"
	"github.com/handcraftedhaven/haven/pkg/middleware"
	"github.com/handcraftedhaven/haven/pkg/response"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController() *ProductController {
	return &ProductController{products: services.NewProductService()}
}

// Index handles GET /api/products with optional filters:
// ?category= ?artisan_id= ?q= ?min_price= ?max_price= ?page= ?limit=
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repositories.ProductFilter{
		Category: q.Get("category"),
		Search:   q.Get("q"),
	}
	if id, err := strconv.ParseUint(q.Get("artisan_id"), 10, 32); err == nil {
		filter.ArtisanID = uint(id)
	}
	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		filter.MaxPrice = v
	}

	page, limit := pageParams(r)
	result, err := c.products.List(filter, page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, result.Items, result.Pagination)
}

// Show handles GET /api/products/{id}.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := paramID(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	product, err := c.products.Get(id)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, product)
}

// Store handles POST /api/products. Sellers list on their own account;
// admins may pass ?artisan_id= to list on another account's behalf.
func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	artisanID := claims.UserID
	if claims.Role == models.RoleAdmin {
		if id, err := strconv.ParseUint(r.URL.Query().Get("artisan_id"), 10, 32); err == nil && id != 0 {
			artisanID = uint(id)
		}
	}

	product, err := c.products.Create(artisanID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, product)
}

// Update handles PUT /api/products/{id}.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
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

	var in services.ProductInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Update(claims.UserID, claims.Role, id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, product)
}

// Destroy handles DELETE /api/products/{id}.
func (c *ProductController) Destroy(w http.ResponseWriter, r *http.Request) {
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

	if err := c.products.Delete(claims.UserID, claims.Role, id); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "deleted"})
}
