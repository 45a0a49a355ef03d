package services

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/app/repositories"
	"github.com/handcraftedhaven/haven/pkg/auth"
	"github.com/handcraftedhaven/haven/pkg/cache"
	"github.com/handcraftedhaven/haven/pkg/orm"
)

// ReviewInput is the review submission body. ReviewerName may be blank for
// signed-in users; it then defaults to their account name.
type ReviewInput struct {
	ReviewerName string `json:"reviewer_name" validate:"nullable,min=2,max=100"`
	Rating       int    `json:"rating"        validate:"required,integer,gte=1,lte=5"`
	Comment      string `json:"comment"       validate:"nullable,max=2000"`
}

type ReviewService struct {
	reviews  *repositories.ReviewRepository
	products *repositories.ProductRepository
	users    *repositories.UserRepository
}

func NewReviewService() *ReviewService {
	return &ReviewService{
		reviews:  repositories.NewReviewRepository(),
		products: repositories.NewProductRepository(),
		users:    repositories.NewUserRepository(),
	}
}

// ForProduct returns one page of a product's reviews.
func (s *ReviewService) ForProduct(productID uint, page, limit int) ([]models.Review, orm.Pagination, error) {
	if _, err := s.products.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, orm.Pagination{}, ErrNotFound
		}
		return nil, orm.Pagination{}, err
	}
	return s.reviews.ForProduct(productID, page, limit)
}

// Create stores a review and recomputes the product's average rating in the
// same transaction, so the denormalised value never drifts from the rows.
// claims is nil for guest reviews.
func (s *ReviewService) Create(productID uint, claims *auth.Claims, in ReviewInput) (models.Review, error) {
	if _, err := s.products.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Review{}, ErrNotFound
		}
		return models.Review{}, err
	}

	review := models.Review{
		ProductID:    productID,
		ReviewerName: in.ReviewerName,
		Rating:       in.Rating,
		Comment:      in.Comment,
	}

	if claims != nil {
		id := claims.UserID
		review.UserID = &id
		if review.ReviewerName == "" {
			user, err := s.users.FindByID(id)
			if err != nil {
				return models.Review{}, err
			}
			review.ReviewerName = user.FullName
		}
	}
	if review.ReviewerName == "" {
		review.ReviewerName = "Anonymous"
	}

	err := orm.Transaction(func(tx *orm.Query) error {
		if err := s.reviews.Create(tx, &review); err != nil {
			return err
		}
		return s.recompute(tx, productID)
	})
	if err != nil {
		return models.Review{}, err
	}

	s.invalidate()
	return review, nil
}

// Delete removes a review (author or admin only) and recomputes the rating.
func (s *ReviewService) Delete(reviewID, userID uint, role string) error {
	review, err := s.reviews.FindByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	owner := review.UserID != nil && *review.UserID == userID
	if !owner && role != models.RoleAdmin {
		return ErrForbidden
	}

	err = orm.Transaction(func(tx *orm.Query) error {
		if err := s.reviews.Delete(tx, &review); err != nil {
			return err
		}
		return s.recompute(tx, review.ProductID)
	})
	if err != nil {
		return err
	}

	s.invalidate()
	return nil
}

func (s *ReviewService) recompute(tx *orm.Query, productID uint) error {
	ratings, err := s.reviews.Ratings(tx, productID)
	if err != nil {
		return err
	}
	return s.products.SetRating(tx, productID, AverageRating(ratings))
}

func (s *ReviewService) invalidate() {
	_ = cache.DelPrefix("products:")
	_ = cache.DelPrefix("artisans:")
}

// AverageRating returns the mean of ratings rounded to one decimal place,
// or 0 when there are no ratings.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}
