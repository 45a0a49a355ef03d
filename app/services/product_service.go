package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/app/repositories"
	"github.com/handcraftedhaven/haven/pkg/cache"
	"github.com/handcraftedhaven/haven/pkg/orm"
)

// ProductInput is the create/update request body.
type ProductInput struct {
	Title       string  `json:"title"       validate:"required,min=2,max=200"`
	Description string  `json:"description" validate:"nullable,max=5000"`
	Price       float64 `json:"price"       validate:"required,numeric,gt=0"`
	Category    string  `json:"category"    validate:"required,max=100"`
	Stock       int     `json:"stock"       validate:"nullable,integer,gte=0"`
	ImageURL    string  `json:"image_url"   validate:"nullable,url,max=500"`
}

// ProductPage is a cached page of catalogue results.
type ProductPage struct {
	Items      []models.Product `json:"items"`
	Pagination orm.Pagination   `json:"pagination"`
}

const (
	productCachePrefix = "products:"
	listCacheTTL       = 2 * time.Minute
)

type ProductService struct {
	products *repositories.ProductRepository
	users    *repositories.UserRepository
}

func NewProductService() *ProductService {
	return &ProductService{
		products: repositories.NewProductRepository(),
		users:    repositories.NewUserRepository(),
	}
}

// List returns one catalogue page, served from the cache when a previous
// request already built the same page.
func (s *ProductService) List(f repositories.ProductFilter, page, limit int) (ProductPage, error) {
	key := listCacheKey(f, page, limit)

	var cached ProductPage
	if cache.Get(key, &cached) {
		return cached, nil
	}

	items, pagination, err := s.products.List(f, page, limit)
	if err != nil {
		return ProductPage{}, err
	}

	result := ProductPage{Items: items, Pagination: pagination}
	_ = cache.Set(key, result, listCacheTTL)
	return result, nil
}

// Get returns one product.
func (s *ProductService) Get(id uint) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrNotFound
	}
	return product, err
}

// Create lists a new product for the given artisan. Only verified sellers
// may list; admins may list on any account's behalf.
func (s *ProductService) Create(artisanID uint, in ProductInput) (models.Product, error) {
	artisan, err := s.users.FindByID(artisanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}
	if !artisan.IsSeller() {
		return models.Product{}, ErrForbidden
	}
	if artisan.Role == models.RoleSeller && !artisan.Verified {
		return models.Product{}, ErrSellerUnverified
	}

	product := models.Product{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		ArtisanID:   artisanID,
	}
	if err := s.products.Create(&product); err != nil {
		return models.Product{}, err
	}

	s.invalidate()
	return product, nil
}

// Update edits a product. Sellers may only touch their own listings;
// admins may touch any.
func (s *ProductService) Update(userID uint, role string, productID uint, in ProductInput) (models.Product, error) {
	product, err := s.Get(productID)
	if err != nil {
		return models.Product{}, err
	}
	if !mayManage(userID, role, product) {
		return models.Product{}, ErrForbidden
	}

	product.Title = in.Title
	product.Description = in.Description
	product.Price = in.Price
	product.Category = in.Category
	product.Stock = in.Stock
	product.ImageURL = in.ImageURL

	if err := s.products.Update(&product); err != nil {
		return models.Product{}, err
	}

	s.invalidate()
	return product, nil
}

// Delete removes a product under the same ownership rules as Update.
func (s *ProductService) Delete(userID uint, role string, productID uint) error {
	product, err := s.Get(productID)
	if err != nil {
		return err
	}
	if !mayManage(userID, role, product) {
		return ErrForbidden
	}

	if err := s.products.Delete(&product); err != nil {
		return err
	}

	s.invalidate()
	return nil
}

func mayManage(userID uint, role string, product models.Product) bool {
	return role == models.RoleAdmin || product.ArtisanID == userID
}

// invalidate drops every cached catalogue page and artisan storefront.
// Mutations are rare next to reads, so wholesale invalidation is fine.
func (s *ProductService) invalidate() {
	_ = cache.DelPrefix(productCachePrefix)
	_ = cache.DelPrefix("artisans:")
}

func listCacheKey(f repositories.ProductFilter, page, limit int) string {
	return fmt.Sprintf("%slist:c=%s:a=%d:q=%s:lo=%g:hi=%g:p=%d:n=%d",
		productCachePrefix, f.Category, f.ArtisanID, f.Search, f.MinPrice, f.MaxPrice, page, limit)
}
