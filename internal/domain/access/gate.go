package access

// Role is the profile role as stored.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Identity is what the gate needs to know about the caller. Loaded is false
// while the profile is unknown, in which case Features is ignored.
type Identity struct {
	Loaded   bool
	Features []string
	Role     Role
}

// VisibleSections filters the master menu for id.
//
// Settings is always visible. Users is visible exactly when the role is admin,
// whatever the stored feature set says. An unloaded identity is given
// FallbackFeatures rather than an empty menu.
func VisibleSections(id Identity) []Section {
	features := id.Features
	if !id.Loaded {
		features = FallbackFeatures
	}

	enabled := make(map[string]struct{}, len(features))
	for _, f := range features {
		enabled[f] = struct{}{}
	}

	out := make([]Section, 0, len(masterMenu))
	for _, s := range masterMenu {
		switch s.ID {
		case SectionSettings:
			out = append(out, s)
		case SectionUsers:
			if id.Role == RoleAdmin {
				out = append(out, s)
			}
		default:
			if _, ok := enabled[s.ID]; ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// Allows reports whether section is part of the visible menu for id.
func Allows(id Identity, section string) bool {
	for _, s := range VisibleSections(id) {
		if s.ID == section {
			return true
		}
	}
	return false
}

// IDs flattens sections to their identifiers.
func IDs(sections []Section) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.ID
	}
	return out
}
