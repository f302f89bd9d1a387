// Package permission evaluates who may act on what.
//
// Each predicate is a pure function of the requester's role, its staff and
// superuser flags, the safety of the HTTP method and, for user generated
// content, whether the requester authored the target. Three trust boundaries
// share the one role field:
//   - catalog curation (categories, genres, titles): public reads, admin writes
//   - user generated content (reviews, comments): author owned, moderator overridable
//   - identity management (users): admins only
package permission

import (
	"net/http"

	"titlehub/internal/microservices/http-api/models"
)

// Identity is the requester as seen by the authorization engine.
// The zero value is the anonymous identity.
type Identity struct {
	UserID      string
	Username    string
	Role        models.Role
	IsStaff     bool
	IsSuperuser bool
}

// Anonymous returns the identity of an unauthenticated request.
func Anonymous() Identity {
	return Identity{}
}

// FromUser builds the identity of an authenticated user.
func FromUser(u *models.User) Identity {
	if u == nil {
		return Anonymous()
	}
	return Identity{
		UserID:      u.ID,
		Username:    u.Username,
		Role:        u.Role,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
	}
}

// Authenticated reports whether the identity belongs to a known user.
func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

// IsSafe reports whether method only reads.
func IsSafe(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AdminOrReadOnly gates category, genre and title management.
func AdminOrReadOnly(id Identity, method string) bool {
	if IsSafe(method) {
		return true
	}
	if !id.Authenticated() {
		return false
	}
	return id.Role == models.RoleAdmin || id.IsStaff
}

// AuthorOrPrivileged gates review and comment mutation.
func AuthorOrPrivileged(id Identity, method, authorID string) bool {
	if IsSafe(method) {
		return true
	}
	if !id.Authenticated() {
		return false
	}
	return id.UserID == authorID ||
		id.IsStaff ||
		id.IsSuperuser ||
		id.Role == models.RoleAdmin ||
		id.Role == models.RoleModerator
}

// AdminOnly gates user management for every method, reads included.
// Anonymous identities are denied; callers that need to tell 401 from 403
// check Authenticated first.
func AdminOnly(id Identity) bool {
	if !id.Authenticated() {
		return false
	}
	return id.Role == models.RoleAdmin || (id.IsStaff && id.IsSuperuser)
}

// CanAssignRole reports whether id may change another user's role.
func CanAssignRole(id Identity) bool {
	if !id.Authenticated() {
		return false
	}
	return id.Role == models.RoleAdmin || id.IsSuperuser
}
