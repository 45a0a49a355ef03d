package services

import (
	"bytes"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/pkg/storage"
)

// memDisk is an in-memory storage.Disk for upload tests.
type memDisk struct {
	files map[string][]byte
}

func newMemDisk() *memDisk { return &memDisk{files: map[string][]byte{}} }

func (d *memDisk) Put(path string, content []byte) error {
	d.files[path] = content
	return nil
}

func (d *memDisk) PutStream(path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return d.Put(path, data)
}

func (d *memDisk) Get(path string) ([]byte, error) {
	if data, ok := d.files[path]; ok {
		return data, nil
	}
	return nil, io.ErrUnexpectedEOF
}

func (d *memDisk) GetStream(path string) (io.ReadCloser, error) {
	data, err := d.Get(path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (d *memDisk) Exists(path string) bool { _, ok := d.files[path]; return ok }
func (d *memDisk) Missing(path string) bool { return !d.Exists(path) }

func (d *memDisk) Size(path string) (int64, error) {
	data, err := d.Get(path)
	return int64(len(data)), err
}

func (d *memDisk) URL(path string) string { return "https://cdn.test/" + path }

func (d *memDisk) Delete(path string) error {
	delete(d.files, path)
	return nil
}

func (d *memDisk) Copy(src, dst string) error {
	data, err := d.Get(src)
	if err != nil {
		return err
	}
	return d.Put(dst, data)
}

func (d *memDisk) Move(src, dst string) error {
	if err := d.Copy(src, dst); err != nil {
		return err
	}
	return d.Delete(src)
}

func (d *memDisk) Files(directory string) ([]string, error) { return d.AllFiles(directory) }

func (d *memDisk) AllFiles(directory string) ([]string, error) {
	var out []string
	for path := range d.files {
		if strings.HasPrefix(path, directory) {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out, nil
}

func useMemDisk(t *testing.T) *memDisk {
	t.Helper()
	disk := newMemDisk()
	storage.RegisterDisk("mem", disk)
	storage.SetDefault("mem")
	t.Cleanup(func() { storage.SetDefault("local") })
	return disk
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 64))

func TestProductImageUpload(t *testing.T) {
	newTestDB(t)
	disk := useMemDisk(t)
	svc := NewUploadService()

	seller := seedSeller(t, "seller@test", true)
	product := seedProduct(t, seller.ID)

	url, err := svc.ProductImage(seller.ID, models.RoleSeller, product.ID, bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://cdn.test/products/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	stored, err := disk.AllFiles("products/")
	require.NoError(t, err)
	require.Len(t, stored, 1)

	got, err := NewProductService().Get(product.ID)
	require.NoError(t, err)
	assert.Equal(t, url, got.ImageURL)
}

func TestProductImageUploadWithoutProduct(t *testing.T) {
	newTestDB(t)
	useMemDisk(t)
	svc := NewUploadService()

	url, err := svc.ProductImage(1, models.RoleSeller, 0, bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Contains(t, url, "products/")
}

func TestProductImageRejectsBadInput(t *testing.T) {
	newTestDB(t)
	useMemDisk(t)
	svc := NewUploadService()

	seller := seedSeller(t, "seller@test", true)
	other := seedSeller(t, "other@test", true)
	product := seedProduct(t, seller.ID)

	_, err := svc.ProductImage(seller.ID, models.RoleSeller, product.ID, strings.NewReader("%PDF-1.4 not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)

	huge := append(append([]byte{}, pngBytes...), make([]byte, MaxImageBytes)...)
	_, err = svc.ProductImage(seller.ID, models.RoleSeller, product.ID, bytes.NewReader(huge))
	assert.ErrorIs(t, err, ErrImageTooLarge)

	_, err = svc.ProductImage(other.ID, models.RoleSeller, product.ID, bytes.NewReader(pngBytes))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.ProductImage(seller.ID, models.RoleSeller, 999, bytes.NewReader(pngBytes))
	assert.ErrorIs(t, err, ErrNotFound)
}
