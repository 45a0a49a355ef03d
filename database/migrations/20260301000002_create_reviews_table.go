package migrations

import (
	"gorm.io/gorm"

	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/pkg/migration"
)

type CreateReviewsTable struct{}

func init() {
	migration.Register("20260301000002_create_reviews_table", &CreateReviewsTable{})
}

func (m *CreateReviewsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Review{})
}

func (m *CreateReviewsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Review{})
}
