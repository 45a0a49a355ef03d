package models

// Roles a user account can hold.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User is a marketplace account. Sellers (artisans) carry shop metadata and
// must be verified before they can list products.
type User struct {
	Model
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	FullName string `gorm:"size:255;not null" json:"full_name"`
	Role     string `gorm:"size:50;not null;default:buyer" json:"role"`

	// Shop metadata, meaningful for sellers only.
	ShopName  string `gorm:"size:255" json:"shop_name,omitempty"`
	Bio       string `gorm:"type:text" json:"bio,omitempty"`
	Location  string `gorm:"size:255" json:"location,omitempty"`
	Verified  bool   `gorm:"not null;default:false" json:"verified"`
	AvatarURL string `gorm:"size:500" json:"avatar_url,omitempty"`
}

// IsSeller reports whether the account may manage product listings.
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller || u.Role == RoleAdmin
}
