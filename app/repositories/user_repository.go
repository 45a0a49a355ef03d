// Package repositories holds the database access layer. Each repository
// wraps the shared ORM handle with the queries its entity needs; anything
// smarter (validation, rating maths, cache invalidation) lives in services.
package repositories

import (
	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByEmail looks up a user by email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// EmailTaken reports whether an account already uses email.
func (r *UserRepository) EmailTaken(email string) (bool, error) {
	var n int64
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).Count(&n)
	return n > 0, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return orm.DB().Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return orm.DB().Save(user)
}

// All returns one page of users.
func (r *UserRepository) All(page, limit int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	pagination, err := orm.DB().Model(&models.User{}).Order("id").Paginate(&users, page, limit)
	return users, pagination, err
}
