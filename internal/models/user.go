package models

// User represents a registered profile in the record store.
// OwnerIdentity is the caller identity that created the profile and is the
// only identity allowed to mutate or delete it.
type User struct {
	ID            string  `json:"id"`
	OwnerIdentity string  `json:"owner_identity"`
	Username      string  `json:"username" validate:"required,min=3,max=100"`
	// PasswordHash must survive the JSON round-trip into the durable map;
	// handlers blank it before a record leaves the server.
	PasswordHash  string  `json:"password_hash,omitempty"`
	CreatedAt     uint64  `json:"created_at"`
	UpdatedAt     *uint64 `json:"updated_at,omitempty"`
}

// UserPayload carries the caller-writable fields of a User. Identity,
// ownership and timestamp fields are system-assigned and deliberately
// absent so a payload cannot overwrite them.
type UserPayload struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}

// ApplyTo merges the payload onto an existing record. Only the mutable
// fields are touched; the caller is responsible for stamping UpdatedAt.
// The password is re-hashed by the service before it reaches this point,
// so hashed carries either the new hash or "" for no change.
func (p UserPayload) ApplyTo(user *User, hashed string) {
	user.Username = p.Username
	if hashed != "" {
		user.PasswordHash = hashed
	}
}
