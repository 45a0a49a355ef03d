package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/app/repositories"
	"github.com/handcraftedhaven/haven/pkg/auth"
	"github.com/handcraftedhaven/haven/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Review{}))
	database.Use(db)
	return db
}

func seedSeller(t *testing.T, email string, verified bool) models.User {
	t.Helper()
	hash, err := auth.HashPassword("artisan-pass-123")
	require.NoError(t, err)
	user := models.User{
		Email:    email,
		Password: hash,
		FullName: "Mara Quinn",
		Role:     models.RoleSeller,
		ShopName: "Quinn Ceramics",
		Verified: verified,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, artisanID uint) models.Product {
	t.Helper()
	product := models.Product{
		Title:     "Stoneware Mug",
		Price:     28.50,
		Category:  "ceramics",
		Stock:     12,
		ArtisanID: artisanID,
	}
	require.NoError(t, database.DB.Create(&product).Error)
	return product
}

func TestAverageRating(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"no reviews", nil, 0},
		{"single", []int{4}, 4},
		{"halves", []int{4, 5}, 4.5},
		{"rounds down", []int{3, 3, 4}, 3.3},
		{"rounds up", []int{5, 5, 4}, 4.7},
		{"all fives", []int{5, 5, 5, 5}, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AverageRating(tc.ratings))
		})
	}
}

func TestRegisterLoginRefresh(t *testing.T) {
	newTestDB(t)
	svc := NewAuthService()

	in := RegisterInput{
		Email:    "mara@quinnceramics.test",
		Password: "artisan-pass-123",
		FullName: "Mara Quinn",
		Role:     models.RoleSeller,
		ShopName: "Quinn Ceramics",
	}

	user, tokens, err := svc.Register(in)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, in.Password, user.Password)

	_, _, err = svc.Register(in)
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = svc.Login(in.Email, "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	logged, pair, err := svc.Login(in.Email, in.Password)
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	refreshed, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProductCreateSellerGate(t *testing.T) {
	newTestDB(t)
	svc := NewProductService()

	in := ProductInput{Title: "Walnut Cutting Board", Price: 64, Category: "woodwork", Stock: 3}

	buyer := models.User{Email: "b@test", Password: "x", FullName: "Buyer", Role: models.RoleBuyer}
	require.NoError(t, database.DB.Create(&buyer).Error)
	_, err := svc.Create(buyer.ID, in)
	assert.ErrorIs(t, err, ErrForbidden)

	unverified := seedSeller(t, "new@seller.test", false)
	_, err = svc.Create(unverified.ID, in)
	assert.ErrorIs(t, err, ErrSellerUnverified)

	seller := seedSeller(t, "mara@seller.test", true)
	product, err := svc.Create(seller.ID, in)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, product.ArtisanID)
	assert.Equal(t, models.StockLow, product.StockStatus)
}

func TestProductOwnership(t *testing.T) {
	newTestDB(t)
	svc := NewProductService()

	owner := seedSeller(t, "owner@test", true)
	other := seedSeller(t, "other@test", true)
	product := seedProduct(t, owner.ID)

	in := ProductInput{Title: "Stoneware Mug v2", Price: 30, Category: "ceramics", Stock: 0}

	_, err := svc.Update(other.ID, models.RoleSeller, product.ID, in)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(owner.ID, models.RoleSeller, product.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Stoneware Mug v2", updated.Title)
	assert.Equal(t, models.StockOut, updated.StockStatus)

	err = svc.Delete(other.ID, models.RoleSeller, product.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(other.ID, models.RoleAdmin, product.ID))

	_, err = svc.Get(product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewRecomputesRating(t *testing.T) {
	newTestDB(t)
	svc := NewReviewService()
	products := repositories.NewProductRepository()

	seller := seedSeller(t, "seller@test", true)
	buyer := models.User{Email: "buyer@test", Password: "x", FullName: "Iris Bell", Role: models.RoleBuyer}
	require.NoError(t, database.DB.Create(&buyer).Error)
	product := seedProduct(t, seller.ID)

	claims := &auth.Claims{UserID: buyer.ID, Role: models.RoleBuyer}

	first, err := svc.Create(product.ID, claims, ReviewInput{Rating: 4, Comment: "Lovely glaze"})
	require.NoError(t, err)
	assert.Equal(t, "Iris Bell", first.ReviewerName)

	_, err = svc.Create(product.ID, nil, ReviewInput{ReviewerName: "Jo", Rating: 5})
	require.NoError(t, err)

	got, err := products.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.Rating)

	require.NoError(t, svc.Delete(first.ID, buyer.ID, models.RoleBuyer))

	got, err = products.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Rating)
}

func TestReviewDeleteRules(t *testing.T) {
	newTestDB(t)
	svc := NewReviewService()

	seller := seedSeller(t, "seller@test", true)
	product := seedProduct(t, seller.ID)

	guest, err := svc.Create(product.ID, nil, ReviewInput{Rating: 2})
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", guest.ReviewerName)

	// Guest reviews have no author, so only an admin may remove them.
	err = svc.Delete(guest.ID, seller.ID, models.RoleSeller)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(guest.ID, 0, models.RoleAdmin))

	err = svc.Delete(guest.ID, 0, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewForUnknownProduct(t *testing.T) {
	newTestDB(t)
	svc := NewReviewService()

	_, err := svc.Create(999, nil, ReviewInput{Rating: 3})
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = svc.ForProduct(999, 1, 20)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductListFilters(t *testing.T) {
	newTestDB(t)
	svc := NewProductService()

	seller := seedSeller(t, "seller@test", true)
	mug := seedProduct(t, seller.ID)

	scarf := models.Product{Title: "Wool Scarf", Price: 45, Category: "textiles", Stock: 8, ArtisanID: seller.ID}
	require.NoError(t, database.DB.Create(&scarf).Error)

	page, err := svc.List(repositories.ProductFilter{Category: "ceramics"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, mug.ID, page.Items[0].ID)

	page, err = svc.List(repositories.ProductFilter{Search: "wool"}, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, scarf.ID, page.Items[0].ID)

	page, err = svc.List(repositories.ProductFilter{MinPrice: 40}, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, scarf.ID, page.Items[0].ID)

	page, err = svc.List(repositories.ProductFilter{}, 1, 1)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}

func TestArtisanProfile(t *testing.T) {
	newTestDB(t)
	svc := NewProfileService()

	seller := seedSeller(t, "seller@test", true)
	seedProduct(t, seller.ID)

	buyer := models.User{Email: "buyer@test", Password: "x", FullName: "Buyer", Role: models.RoleBuyer}
	require.NoError(t, database.DB.Create(&buyer).Error)

	profile, err := svc.Artisan(seller.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quinn Ceramics", profile.Artisan.ShopName)
	assert.Len(t, profile.Products, 1)

	_, err = svc.Artisan(buyer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileUpdateKeepsUnsetFields(t *testing.T) {
	newTestDB(t)
	svc := NewProfileService()

	seller := seedSeller(t, "seller@test", true)

	updated, err := svc.Update(seller.ID, ProfileUpdateInput{Bio: "Wheel-thrown stoneware since 2014"})
	require.NoError(t, err)
	assert.Equal(t, "Wheel-thrown stoneware since 2014", updated.Bio)
	assert.Equal(t, "Quinn Ceramics", updated.ShopName)
	assert.Equal(t, "Mara Quinn", updated.FullName)
}
