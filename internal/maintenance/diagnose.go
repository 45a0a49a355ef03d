package maintenance

import (
	"strings"

	"github.com/handcraftedhaven/haven/app/models"
	"github.com/handcraftedhaven/haven/config"
	"github.com/handcraftedhaven/haven/pkg/database"
)

// AuthReport lists everything Diagnose found wrong with authentication
// data. An empty report (Healthy() == true) means login should work for
// every account.
type AuthReport struct {
	DefaultJWTSecret bool
	DuplicateEmails  []string
	BadPasswordHash  []uint
	UnknownRoles     map[uint]string
}

// Healthy reports whether Diagnose found nothing to fix.
func (r AuthReport) Healthy() bool {
	return !r.DefaultJWTSecret &&
		len(r.DuplicateEmails) == 0 &&
		len(r.BadPasswordHash) == 0 &&
		len(r.UnknownRoles) == 0
}

var knownRoles = map[string]bool{
	models.RoleBuyer:  true,
	models.RoleSeller: true,
	models.RoleAdmin:  true,
}

// bcrypt hashes start with $2a$, $2b$ or $2y$. Anything else means the
// account was imported with a plaintext or foreign hash and cannot log in.
func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") ||
		strings.HasPrefix(hash, "$2b$") ||
		strings.HasPrefix(hash, "$2y$")
}

// Diagnose scans configuration and the users table for the failure modes
// behind "I can't log in" reports: a production deployment still on the
// placeholder JWT secret, emails differing only by case, password hashes
// bcrypt cannot verify, and roles no guard recognises.
func Diagnose() (AuthReport, error) {
	report := AuthReport{
		DefaultJWTSecret: config.JWTSecret() == config.DefaultJWTSecret,
		UnknownRoles:     map[uint]string{},
	}

	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		return report, err
	}

	seen := map[string]bool{}
	flagged := map[string]bool{}
	for _, u := range users {
		email := strings.ToLower(u.Email)
		if seen[email] && !flagged[email] {
			report.DuplicateEmails = append(report.DuplicateEmails, email)
			flagged[email] = true
		}
		seen[email] = true

		if !isBcryptHash(u.Password) {
			report.BadPasswordHash = append(report.BadPasswordHash, u.ID)
		}
		if !knownRoles[u.Role] {
			report.UnknownRoles[u.ID] = u.Role
		}
	}
	return report, nil
}
