package repositories

import (
	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/pkg/orm"
)

// ReviewRepository handles database operations for Review.
type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

// FindByID looks up a review by primary key.
func (r *ReviewRepository) FindByID(id uint) (models.Review, error) {
	var review models.Review
	err := orm.DB().Model(&models.Review{}).Where("id = ?", id).First(&review)
	return review, err
}

// ForProduct returns one page of a product's reviews, newest first.
func (r *ReviewRepository) ForProduct(productID uint, page, limit int) ([]models.Review, orm.Pagination, error) {
	var reviews []models.Review
	pagination, err := orm.DB().Model(&models.Review{}).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Paginate(&reviews, page, limit)
	return reviews, pagination, err
}

// Ratings returns just the rating values of a product's reviews, for
// recomputing the stored average.
func (r *ReviewRepository) Ratings(tx *orm.Query, productID uint) ([]int, error) {
	var reviews []models.Review
	if err := tx.Model(&models.Review{}).Where("product_id = ?", productID).Get(&reviews); err != nil {
		return nil, err
	}
	ratings := make([]int, len(reviews))
	for i, rev := range reviews {
		ratings[i] = rev.Rating
	}
	return ratings, nil
}

// Create persists a new review inside tx.
func (r *ReviewRepository) Create(tx *orm.Query, review *models.Review) error {
	return tx.Create(review)
}

// Delete removes a review inside tx.
func (r *ReviewRepository) Delete(tx *orm.Query, review *models.Review) error {
	return tx.Delete(review)
}
