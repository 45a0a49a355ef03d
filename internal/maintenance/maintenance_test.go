package maintenance

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/pkg/auth"
	"github.com/handcraftedhaven/haven/pkg/database"
	"github.com/handcraftedhaven/haven/pkg/storage"
)

func setup(t *testing.T) storage.Disk {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}, &models.Review{}))
	database.Use(db)

	disk := storage.NewLocalDisk(t.TempDir(), "http://api.test/storage")
	storage.RegisterDisk("test", disk)
	storage.SetDefault("test")
	t.Cleanup(func() { storage.SetDefault("local") })
	return disk
}

func seedProduct(t *testing.T, imageURL string) models.Product {
	t.Helper()
	p := models.Product{
		Title:     "Stoneware Mug",
		Price:     28.50,
		Category:  "ceramics",
		ArtisanID: 1,
		ImageURL:  imageURL,
	}
	require.NoError(t, database.DB.Create(&p).Error)
	return p
}

func productURL(t *testing.T, id uint) string {
	t.Helper()
	var p models.Product
	require.NoError(t, database.DB.First(&p, id).Error)
	return p.ImageURL
}

func TestFixImageURLs(t *testing.T) {
	setup(t)

	require.NoError(t, storage.Put("products/mug.jpg", []byte("jpg")))

	stale := seedProduct(t, "https://old-cdn.test/products/mug.jpg")
	dead := seedProduct(t, "https://old-cdn.test/products/gone.jpg")
	current := seedProduct(t, storage.URL("products/mug.jpg"))

	// Dry run reports without writing.
	report, err := FixImageURLs("https://old-cdn.test/", true)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, 1, report.Rewritten)
	assert.Equal(t, 1, report.Cleared)
	assert.Equal(t, "https://old-cdn.test/products/mug.jpg", productURL(t, stale.ID))

	report, err = FixImageURLs("https://old-cdn.test/", false)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Rewritten)
	assert.Equal(t, 1, report.Cleared)

	assert.Equal(t, "http://api.test/storage/products/mug.jpg", productURL(t, stale.ID))
	assert.Equal(t, "", productURL(t, dead.ID))
	assert.Equal(t, "http://api.test/storage/products/mug.jpg", productURL(t, current.ID))

	// Second run is a no-op.
	report, err = FixImageURLs("https://old-cdn.test/", false)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Rewritten)
	assert.Equal(t, 0, report.Cleared)
}

func TestNormalizeKeys(t *testing.T) {
	setup(t)

	require.NoError(t, storage.Put("products/My Mug Photo.JPG", []byte("jpg")))
	require.NoError(t, storage.Put("products/already-clean.png", []byte("png")))

	linked := seedProduct(t, storage.URL("products/My Mug Photo.JPG"))

	report, err := NormalizeKeys(true)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Scanned)
	assert.Equal(t, 1, report.Renamed)
	assert.True(t, storage.Exists("products/My Mug Photo.JPG"))

	report, err = NormalizeKeys(false)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Renamed)
	assert.Equal(t, 1, report.Relinked)

	assert.True(t, storage.Missing("products/My Mug Photo.JPG"))
	assert.True(t, storage.Exists("products/my-mug-photo.jpg"))
	assert.Equal(t, "http://api.test/storage/products/my-mug-photo.jpg", productURL(t, linked.ID))
}

func TestDiagnose(t *testing.T) {
	setup(t)

	hash, err := auth.HashPassword("fine-password")
	require.NoError(t, err)

	users := []models.User{
		{Email: "ok@test", Password: hash, FullName: "OK", Role: models.RoleBuyer},
		{Email: "dupe@test", Password: hash, FullName: "One", Role: models.RoleSeller},
		{Email: "Dupe@test", Password: hash, FullName: "Two", Role: models.RoleSeller},
		{Email: "plain@test", Password: "plaintext-import", FullName: "Plain", Role: models.RoleBuyer},
		{Email: "weird@test", Password: hash, FullName: "Weird", Role: "superuser"},
	}
	for i := range users {
		require.NoError(t, database.DB.Create(&users[i]).Error)
	}

	report, err := Diagnose()
	require.NoError(t, err)

	assert.True(t, report.DefaultJWTSecret)
	assert.Equal(t, []string{"dupe@test"}, report.DuplicateEmails)
	assert.Equal(t, []uint{users[3].ID}, report.BadPasswordHash)
	assert.Equal(t, map[uint]string{users[4].ID: "superuser"}, report.UnknownRoles)
	assert.False(t, report.Healthy())

	t.Setenv("JWT_SECRET", "rotated-strong-secret")
	report, err = Diagnose()
	require.NoError(t, err)
	assert.False(t, report.DefaultJWTSecret)
}
