package models

// Watch status values for a logged movie.
const (
	StatusCompleted     = "completed"
	StatusStillWatching = "still_watching"
)

// Movie represents a logged movie in the record store.
// OwnerUserID references the User profile the movie was logged under;
// the reference is advisory, removing the User does not remove the movie.
// OwnerIdentity is the caller identity captured at creation and gates
// update/delete.
type Movie struct {
	ID            string  `json:"id"`
	OwnerUserID   string  `json:"owner_user_id"`
	OwnerIdentity string  `json:"owner_identity"`
	Title         string  `json:"title" validate:"required,max=200"`
	Synopsis      string  `json:"synopsis"`
	Rating        string  `json:"rating"` // personal rating out of ten
	PosterURL     string  `json:"poster_url" validate:"omitempty,url"`
	Status        string  `json:"status" validate:"required,oneof=completed still_watching"`
	ResumePoint   string  `json:"resume_point"` // where to resume when still_watching
	Notes         string  `json:"notes"`
	CreatedAt     uint64  `json:"created_at"`
	UpdatedAt     *uint64 `json:"updated_at,omitempty"`
}

// MoviePayload carries the caller-writable fields of a Movie. Ownership and
// timestamp fields are system-assigned and structurally absent.
type MoviePayload struct {
	Title       string `json:"title" validate:"required,max=200"`
	Synopsis    string `json:"synopsis" validate:"max=2000"`
	Rating      string `json:"rating" validate:"max=20"`
	PosterURL   string `json:"poster_url" validate:"omitempty,url"`
	Status      string `json:"status" validate:"required,oneof=completed still_watching"`
	ResumePoint string `json:"resume_point" validate:"max=200"`
	Notes       string `json:"notes" validate:"max=2000"`
}

// ApplyTo merges the payload onto an existing record, overwriting every
// mutable field and nothing else.
func (p MoviePayload) ApplyTo(movie *Movie) {
	movie.Title = p.Title
	movie.Synopsis = p.Synopsis
	movie.Rating = p.Rating
	movie.PosterURL = p.PosterURL
	movie.Status = p.Status
	movie.ResumePoint = p.ResumePoint
	movie.Notes = p.Notes
}
