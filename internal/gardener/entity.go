// AngelaMos | 2026
// entity.go

package gardener

import (
	"time"
)

// Gardener owns plant instances.
type Gardener struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Name         string     `db:"name"`
	Role         string     `db:"role"`
	TokenVersion int        `db:"token_version"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (g *Gardener) IsAdmin() bool {
	return g.Role == RoleAdmin
}

const (
	RoleGardener = "gardener"
	RoleAdmin    = "admin"
)
