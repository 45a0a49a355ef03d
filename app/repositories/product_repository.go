package repositories

import (
	"strings"
	"time"

	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/pkg/orm"
)

// ProductFilter narrows a catalogue listing.
type ProductFilter struct {
	Category  string
	ArtisanID uint
	Search    string // matches title, case-insensitive
	MinPrice  float64
	MaxPrice  float64
}

// ProductRepository handles database operations for Product.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&product)
	return product, err
}

// List returns one page of products matching the filter, newest first.
func (r *ProductRepository) List(f ProductFilter, page, limit int) ([]models.Product, orm.Pagination, error) {
	q := orm.DB().Model(&models.Product{})

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.ArtisanID != 0 {
		q = q.Where("artisan_id = ?", f.ArtisanID)
	}
	if f.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	if f.MinPrice > 0 {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}

	var products []models.Product
	pagination, err := q.Order("created_at DESC").Paginate(&products, page, limit)
	return products, pagination, err
}

// ByArtisan returns every product listed by one artisan, read through the
// cache (artisan storefront pages are the hottest read).
func (r *ProductRepository) ByArtisan(artisanID uint, key string, ttl time.Duration) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("artisan_id = ?", artisanID).
		Order("created_at DESC").
		Cached(key, ttl, &products)
	return products, err
}

// WithImages returns every product that carries an image URL.
// Used by the maintenance commands.
func (r *ProductRepository) WithImages() ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).Where("image_url <> ''").Get(&products)
	return products, err
}

// Create persists a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	return orm.DB().Create(product)
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	return orm.DB().Save(product)
}

// Delete soft-deletes a product.
func (r *ProductRepository) Delete(product *models.Product) error {
	return orm.DB().Delete(product)
}

// SetRating stores the recomputed average rating.
func (r *ProductRepository) SetRating(tx *orm.Query, productID uint, rating float64) error {
	return tx.Model(&models.Product{}).Where("id = ?", productID).UpdateColumn("rating", rating)
}

// SetImageURL updates only the image URL column.
func (r *ProductRepository) SetImageURL(productID uint, url string) error {
	return orm.DB().Model(&models.Product{}).Where("id = ?", productID).UpdateColumn("image_url", url)
}
