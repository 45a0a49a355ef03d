package models

// Review is a buyer's rating of a product. UserID is nil for guest reviews;
// ReviewerName is always set (signed-in reviewers default to their full name).
type Review struct {
	Model
	ProductID    uint   `gorm:"not null;index" json:"product_id"`
	UserID       *uint  `gorm:"index" json:"user_id,omitempty"`
	ReviewerName string `gorm:"size:100;not null" json:"reviewer_name"`
	Rating       int    `gorm:"not null" json:"rating"` // 1-5
	Comment      string `gorm:"type:text" json:"comment"`
}
