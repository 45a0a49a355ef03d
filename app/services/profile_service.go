package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/app/repositories"
)

// ProfileUpdateInput carries the editable account fields. Zero-value fields
// are left untouched; Role and Verified are deliberately not editable here.
type ProfileUpdateInput struct {
	FullName  string `json:"full_name"  validate:"nullable,min=2,max=255"`
	ShopName  string `json:"shop_name"  validate:"nullable,max=255"`
	Bio       string `json:"bio"        validate:"nullable,max=2000"`
	Location  string `json:"location"   validate:"nullable,max=255"`
	AvatarURL string `json:"avatar_url" validate:"nullable,url,max=500"`
}

// ArtisanProfile is the public storefront view of a seller.
type ArtisanProfile struct {
	Artisan  models.User      `json:"artisan"`
	Products []models.Product `json:"products"`
}

const artisanCacheTTL = 5 * time.Minute

type ProfileService struct {
	users    *repositories.UserRepository
	products *repositories.ProductRepository
}

func NewProfileService() *ProfileService {
	return &ProfileService{
		users:    repositories.NewUserRepository(),
		products: repositories.NewProductRepository(),
	}
}

// Get returns the account behind an authenticated session.
func (s *ProfileService) Get(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, err
}

// Update applies the editable fields and returns the fresh record.
func (s *ProfileService) Update(userID uint, in ProfileUpdateInput) (models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return models.User{}, err
	}

	if in.FullName != "" {
		user.FullName = in.FullName
	}
	if in.ShopName != "" {
		user.ShopName = in.ShopName
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}
	if in.Location != "" {
		user.Location = in.Location
	}
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}

	if err := s.users.Update(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Artisan returns a seller's public profile with their products.
func (s *ProfileService) Artisan(artisanID uint) (ArtisanProfile, error) {
	user, err := s.Get(artisanID)
	if err != nil {
		return ArtisanProfile{}, err
	}
	if !user.IsSeller() {
		return ArtisanProfile{}, ErrNotFound
	}

	key := fmt.Sprintf("artisans:%d:products", artisanID)
	products, err := s.products.ByArtisan(artisanID, key, artisanCacheTTL)
	if err != nil {
		return ArtisanProfile{}, err
	}

	return ArtisanProfile{Artisan: user, Products: products}, nil
}
