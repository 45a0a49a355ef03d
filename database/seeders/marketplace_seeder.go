package seeders

import (
	"gorm.io/gorm"

	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/app/services"
	"github.com/handcraftedhaven/haven/pkg/auth"
)

type MarketplaceSeeder struct{}

func init() {
	Register("marketplace", &MarketplaceSeeder{})
}

type seedProduct struct {
	title    string
	desc     string
	price    float64
	category string
	stock    int
	ratings  []int
}

type seedArtisan struct {
	email    string
	name     string
	shop     string
	bio      string
	location string
	products []seedProduct
}

var artisans = []seedArtisan{
	{
		email:    "mara@quinnceramics.test",
		name:     "Mara Quinn",
		shop:     "Quinn Ceramics",
		bio:      "Wheel-thrown stoneware fired in a wood kiln.",
		location: "Asheville, NC",
		products: []seedProduct{
			{"Stoneware Mug", "12oz mug with an ash glaze.", 28.50, "ceramics", 12, []int{5, 4, 5}},
			{"Serving Bowl", "Large bowl, food safe.", 64.00, "ceramics", 4, []int{4, 4}},
			{"Bud Vase", "Small vase for single stems.", 22.00, "ceramics", 0, nil},
		},
	},
	{
		email:    "theo@barrowwoodwork.test",
		name:     "Theo Barrow",
		shop:     "Barrow Woodwork",
		bio:      "Hand-cut joinery from locally felled hardwood.",
		location: "Portland, OR",
		products: []seedProduct{
			{"Walnut Cutting Board", "End-grain board, oil finish.", 85.00, "woodwork", 7, []int{5, 5, 4, 5}},
			{"Oak Bookends", "Pair of dovetailed bookends.", 48.00, "woodwork", 3, []int{3}},
		},
	},
	{
		email:    "ines@wovenhollow.test",
		name:     "Ines Vega",
		shop:     "Woven Hollow",
		bio:      "Small-batch textiles on a floor loom.",
		location: "Santa Fe, NM",
		products: []seedProduct{
			{"Wool Throw", "Undyed churro wool, herringbone weave.", 140.00, "textiles", 2, []int{5, 4}},
		},
	},
}

var reviewerNames = []string{"Jo", "Priya", "Sam", "Noor", "Felix"}

func (s *MarketplaceSeeder) Run(db *gorm.DB) error {
	adminHash, err := auth.HashPassword("admin-password")
	if err != nil {
		return err
	}
	admin := models.User{
		Email:    "admin@handcraftedhaven.test",
		Password: adminHash,
		FullName: "Site Admin",
		Role:     models.RoleAdmin,
		Verified: true,
	}
	if err := db.Where(models.User{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		return err
	}

	sellerHash, err := auth.HashPassword("artisan-password")
	if err != nil {
		return err
	}

	for _, a := range artisans {
		seller := models.User{
			Email:    a.email,
			Password: sellerHash,
			FullName: a.name,
			Role:     models.RoleSeller,
			ShopName: a.shop,
			Bio:      a.bio,
			Location: a.location,
			Verified: true,
		}
		if err := db.Where(models.User{Email: seller.Email}).FirstOrCreate(&seller).Error; err != nil {
			return err
		}

		for _, p := range a.products {
			product := models.Product{
				Title:       p.title,
				Description: p.desc,
				Price:       p.price,
				Category:    p.category,
				Stock:       p.stock,
				Rating:      services.AverageRating(p.ratings),
				ArtisanID:   seller.ID,
			}
			if err := db.Where(models.Product{Title: p.title, ArtisanID: seller.ID}).
				FirstOrCreate(&product).Error; err != nil {
				return err
			}

			for i, rating := range p.ratings {
				review := models.Review{
					ProductID:    product.ID,
					ReviewerName: reviewerNames[i%len(reviewerNames)],
					Rating:       rating,
					Comment:      "Seeded review.",
				}
				if err := db.Where(models.Review{
					ProductID:    product.ID,
					ReviewerName: review.ReviewerName,
				}).FirstOrCreate(&review).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}
