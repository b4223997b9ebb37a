// Package identity provides caller identity and the visibility rules the
// search filters encode.
package identity

// Level is the caller's privilege level.
type Level string

// Privilege levels.
const (
	LevelAnonymous Level = "anonymous"
	LevelUser      Level = "user"
	LevelAdmin     Level = "admin"
)

// Identity represents the authenticated caller of a request.
type Identity struct {
	userID int64
	level  Level
}

// Anonymous returns the identity of an unauthenticated caller.
func Anonymous() Identity {
	return Identity{level: LevelAnonymous}
}

// New creates an Identity for a known user.
func New(userID int64, level Level) Identity {
	return Identity{userID: userID, level: level}
}

// UserID returns the caller's user id (0 for anonymous).
func (i Identity) UserID() int64 { return i.userID }

// Level returns the caller's privilege level.
func (i Identity) Level() Level { return i.level }

// IsAdmin returns true for admin callers.
func (i Identity) IsAdmin() bool { return i.level == LevelAdmin }

// IsAnonymous returns true for unauthenticated callers.
func (i Identity) IsAnonymous() bool { return i.level == LevelAnonymous || i.level == "" }

// CanSeeObject reports whether the caller may see an object with the given
// owner and publication state. Admins see everything; users additionally see
// their own unpublished objects; anonymous callers see only published ones.
func (i Identity) CanSeeObject(ownerID int64, published bool) bool {
	if i.IsAdmin() {
		return true
	}
	if published {
		return true
	}
	return !i.IsAnonymous() && i.userID == ownerID
}

// CanSeeTag reports whether the caller may see a tag with the given
// publication state. Non-admins see only published tags.
func (i Identity) CanSeeTag(published bool) bool {
	return i.IsAdmin() || published
}
