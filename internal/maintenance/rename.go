package maintenance

import (
	"path"
	"strings"

	"github.com/handcraftedhaven/haven/app/repositories"
	"github.com/handcraftedhaven/haven/pkg/logger"
	"github.com/handcraftedhaven/haven/pkg/storage"
)

// RenameReport summarises a NormalizeKeys run.
type RenameReport struct {
	Scanned  int
	Renamed  int
	Relinked int
}

// normalizeKey lowercases a key and replaces spaces and underscores with
// dashes, keeping the directory and extension intact. Early uploads went
// in with raw client filenames; normalised keys make URLs predictable.
func normalizeKey(key string) string {
	dir, file := path.Split(key)
	file = strings.ToLower(file)
	file = strings.ReplaceAll(file, " ", "-")
	file = strings.ReplaceAll(file, "_", "-")
	return dir + file
}

// NormalizeKeys renames every object under products/ to its normalised
// form and relinks products pointing at the old keys. With dryRun the
// report shows what would change without touching anything.
func NormalizeKeys(dryRun bool) (RenameReport, error) {
	products := repositories.NewProductRepository()

	keys, err := storage.AllFiles("products")
	if err != nil {
		return RenameReport{}, err
	}

	report := RenameReport{Scanned: len(keys)}
	renamed := map[string]string{}

	for _, key := range keys {
		normal := normalizeKey(key)
		if normal == key {
			continue
		}
		report.Renamed++
		renamed[key] = normal
		logger.Info("storage-rename: moving", "from", key, "to", normal, "dry_run", dryRun)
		if !dryRun {
			if err := storage.Move(key, normal); err != nil {
				return report, err
			}
		}
	}
	if len(renamed) == 0 {
		return report, nil
	}

	withImages, err := products.WithImages()
	if err != nil {
		return report, err
	}
	for _, p := range withImages {
		key := keyFromURL(p.ImageURL)
		normal, moved := renamed[key]
		if !moved {
			continue
		}
		report.Relinked++
		logger.Info("storage-rename: relinking",
			"product_id", p.ID, "key", normal, "dry_run", dryRun)
		if !dryRun {
			if err := products.SetImageURL(p.ID, storage.URL(normal)); err != nil {
				return report, err
			}
		}
	}
	return report, nil
}
