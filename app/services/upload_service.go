package services

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/app/repositories"
	"github.com/handcraftedhaven/haven/pkg/storage"
)

// MaxImageBytes caps a single product image upload.
const MaxImageBytes = 5 << 20

var (
	ErrImageTooLarge    = errors.New("image exceeds the 5MB limit")
	ErrUnsupportedImage = errors.New("unsupported image format")
)

// imageExt maps the sniffed content type to the stored extension.
// Only formats browsers render inline are accepted.
var imageExt = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

type UploadService struct {
	products *repositories.ProductRepository
}

func NewUploadService() *UploadService {
	return &UploadService{products: repositories.NewProductRepository()}
}

// ProductImage stores an uploaded image and returns its public URL.
// The content type is sniffed from the bytes, never trusted from the
// request. When productID is non-zero the product's image_url is updated,
// subject to the usual ownership rules.
func (s *UploadService) ProductImage(userID uint, role string, productID uint, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxImageBytes {
		return "", ErrImageTooLarge
	}

	ext, ok := imageExt[http.DetectContentType(data)]
	if !ok {
		return "", ErrUnsupportedImage
	}

	var product models.Product
	if productID != 0 {
		product, err = s.products.FindByID(productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrNotFound
			}
			return "", err
		}
		if !mayManage(userID, role, product) {
			return "", ErrForbidden
		}
	}

	key := fmt.Sprintf("products/%s.%s", uuid.NewString(), ext)
	if err := storage.Put(key, data); err != nil {
		return "", err
	}
	url := storage.URL(key)

	if productID != 0 {
		if err := s.products.SetImageURL(productID, url); err != nil {
			return "", err
		}
	}
	return url, nil
}
