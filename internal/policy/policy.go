// Package policy decides which rows a principal may see or mutate. The
// decision is expressed as a composable GORM scope that repositories
// combine into every query, so authorization cannot drift between read
// and write paths.
package policy

import (
	"errors"

	"github.com/emrecancorapci/chingu-backend/internal/models"
	"gorm.io/gorm"
)

// ErrCorruptRole is returned when a token carries a role outside the
// closed {admin, user} set. An unrecognized role authorizes nothing.
var ErrCorruptRole = errors.New("token is corrupted")

// Principal is the authenticated caller. It is constructed once per
// request by the auth middleware and passed by value: pipeline stages
// cannot mutate each other's view of the caller.
type Principal struct {
	ID       string
	Username string
	Role     models.UserRole
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// Entity identifies the kind of row a scope applies to.
type Entity int

const (
	EntityUser Entity = iota
	EntityProject
	EntityTask
)

// Scope restricts a query to the rows the principal may act on.
type Scope struct {
	apply func(db *gorm.DB) *gorm.DB
}

// Apply is used with gorm's Scopes to combine the restriction into a
// query. It is never applied as a post-filter.
func (s Scope) Apply(db *gorm.DB) *gorm.DB {
	return s.apply(db)
}

// ScopeFor evaluates the principal's visibility over an entity kind.
// Admins are unrestricted. Users see rows they transitively own: their
// own user row, their projects, and tasks under their projects. Any
// other role fails closed with ErrCorruptRole.
func ScopeFor(p Principal, entity Entity) (Scope, error) {
	switch p.Role {
	case models.RoleAdmin:
		return Scope{apply: func(db *gorm.DB) *gorm.DB {
			return db
		}}, nil
	case models.RoleUser:
		return userScope(p, entity), nil
	default:
		return Scope{}, ErrCorruptRole
	}
}

func userScope(p Principal, entity Entity) Scope {
	switch entity {
	case EntityUser:
		return Scope{apply: func(db *gorm.DB) *gorm.DB {
			return db.Where("users.id = ?", p.ID)
		}}
	case EntityProject:
		return Scope{apply: func(db *gorm.DB) *gorm.DB {
			return db.Where("projects.owner_user_id = ?", p.ID)
		}}
	case EntityTask:
		// Ownership of a task is derived from its parent project.
		return Scope{apply: func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"EXISTS (SELECT 1 FROM projects WHERE projects.id = tasks.project_id AND projects.owner_user_id = ?)",
				p.ID,
			)
		}}
	default:
		// Unknown entity kinds match nothing.
		return Scope{apply: func(db *gorm.DB) *gorm.DB {
			return db.Where("1 = 0")
		}}
	}
}
