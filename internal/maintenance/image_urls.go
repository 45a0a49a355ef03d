// Package maintenance implements the one-off repair jobs exposed as CLI
// subcommands: rewriting stale image URLs, normalising storage keys and
// diagnosing authentication problems.
package maintenance

import (
	"strings"

	"github.com/handcraftedhaven/haven/app/repositories"
	"github.com/handcraftedhaven/haven/pkg/logger"
	"github.com/handcraftedhaven/haven/pkg/storage"
)

// ImageURLReport summarises a FixImageURLs run.
type ImageURLReport struct {
	Scanned   int
	Rewritten int
	Cleared   int
}

// keyFromURL extracts the storage object key from a stored image URL.
// Keys always live under products/, regardless of which disk or base URL
// produced the link.
func keyFromURL(url string) string {
	if i := strings.Index(url, "products/"); i >= 0 {
		return url[i:]
	}
	return ""
}

// FixImageURLs repairs product image URLs after a storage move:
// URLs carrying oldPrefix are rewritten onto the current disk's base URL,
// and URLs whose object no longer exists are cleared. With dryRun nothing
// is written; the report shows what would change.
func FixImageURLs(oldPrefix string, dryRun bool) (ImageURLReport, error) {
	products := repositories.NewProductRepository()

	withImages, err := products.WithImages()
	if err != nil {
		return ImageURLReport{}, err
	}

	report := ImageURLReport{Scanned: len(withImages)}
	for _, p := range withImages {
		key := keyFromURL(p.ImageURL)

		if key == "" || storage.Missing(key) {
			report.Cleared++
			logger.Info("image-urls: clearing dead link",
				"product_id", p.ID, "url", p.ImageURL, "dry_run", dryRun)
			if !dryRun {
				if err := products.SetImageURL(p.ID, ""); err != nil {
					return report, err
				}
			}
			continue
		}

		if oldPrefix != "" && strings.HasPrefix(p.ImageURL, oldPrefix) {
			fresh := storage.URL(key)
			if fresh == p.ImageURL {
				continue
			}
			report.Rewritten++
			logger.Info("image-urls: rewriting",
				"product_id", p.ID, "from", p.ImageURL, "to", fresh, "dry_run", dryRun)
			if !dryRun {
				if err := products.SetImageURL(p.ID, fresh); err != nil {
					return report, err
				}
			}
		}
	}
	return report, nil
}
