package session

import (
	"fmt"
	"strconv"
)

// RoleAdmin is the role literal the server assigns to administrators.
const RoleAdmin = "admin"

// Profile is the authenticated user's profile as returned by the server.
// The server owns the field set, so the profile is kept as a map and the
// well-known fields get typed accessors. Whatever the server returns is
// cached wholesale; local code never merges into it.
type Profile map[string]any

func (p Profile) field(key string) string {
	value, ok := p[key]
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		// JSON numbers decode to float64; IDs are commonly numeric.
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ID returns the user identifier as a string.
func (p Profile) ID() string {
	return p.field("id")
}

// Email returns the user's email address.
func (p Profile) Email() string {
	return p.field("email")
}

// Name returns the user's display name.
func (p Profile) Name() string {
	return p.field("name")
}

// Role returns the user's role.
func (p Profile) Role() string {
	return p.field("role")
}
