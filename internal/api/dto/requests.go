package dto

// CreateRequest is the payload for creating a reminder. Title and time are
// required; the time value is stored as given and parsed at scan time.
type CreateRequest struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message"`
	Time    string `json:"time" validate:"required"`
}

// UpdateRequest is the payload for a partial reminder update. Nil fields
// are left unchanged.
type UpdateRequest struct {
	Title   *string `json:"title"`
	Message *string `json:"message"`
	Time    *string `json:"time"`
}
