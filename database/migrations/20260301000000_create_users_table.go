// Package migrations holds the schema migrations, one file per table.
// Each registers itself from init(); the CLI runs them via pkg/migration.
package migrations

import (
	"gorm.io/gorm"

	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/pkg/migration"
)

type CreateUsersTable struct{}

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.User{})
}
