// Package seeders fills a fresh database with demo data for local
// development: a few artisans, their products and a spread of reviews.
package seeders

import (
	"fmt"

	"gorm.io/gorm"
)

// Seeder is the interface every seeder implements.
type Seeder interface {
	Run(db *gorm.DB) error
}

type registered struct {
	name string
	s    Seeder
}

var registry []registered

// Register adds a seeder to the registry. Seeders run in registration
// order, so list parents before children.
func Register(name string, s Seeder) {
	registry = append(registry, registered{name: name, s: s})
}

// Run executes every registered seeder against db.
func Run(db *gorm.DB) error {
	for _, reg := range registry {
		fmt.Printf("  Seeding: %s\n", reg.name)
		if err := reg.s.Run(db); err != nil {
			return fmt.Errorf("seeder %s: %w", reg.name, err)
		}
	}
	return nil
}
