package reference

import "errors"

// ErrNoDefaultRole is returned when the configured default role has no profile.
var ErrNoDefaultRole = errors.New("default role is not declared")

// Registry resolves target-role labels to role profiles.
type Registry struct {
	profiles map[string]RoleProfile
	names    []string
	fallback RoleProfile
}

// NewRegistry indexes the roles of data.
func NewRegistry(data *Data) (*Registry, error) {
	if data == nil {
		data = Default()
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}

	r := &Registry{
		profiles: make(map[string]RoleProfile, len(data.Roles)),
		names:    make([]string, 0, len(data.Roles)),
	}
	for _, role := range data.Roles {
		r.profiles[roleKey(role.Name)] = role.clone()
		r.names = append(r.names, role.Name)
	}
	r.fallback = r.profiles[roleKey(data.DefaultRole)]

	return r, nil
}

// ProfileFor returns the profile for role. Matching ignores case and
// surrounding or repeated whitespace; unknown and empty labels get the
// default profile.
func (r *Registry) ProfileFor(role string) RoleProfile {
	if profile, ok := r.Lookup(role); ok {
		return profile
	}
	return r.fallback.clone()
}

// Lookup reports whether role has its own profile.
func (r *Registry) Lookup(role string) (RoleProfile, bool) {
	profile, ok := r.profiles[roleKey(role)]
	if !ok {
		return RoleProfile{}, false
	}
	return profile.clone(), true
}

// Default returns the fallback profile.
func (r *Registry) Default() RoleProfile {
	return r.fallback.clone()
}

// Roles lists role names in declaration order.
func (r *Registry) Roles() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
