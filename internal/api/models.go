package api

// InsertResponse mirrors the driver's insert acknowledgement shape the
// paired front end consumes.
type InsertResponse struct {
	InsertedID string `json:"insertedId"`
}

// DeleteResponse mirrors the driver's delete acknowledgement shape.
type DeleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// UpdateStatusRequest is the body of PATCH /service-application/{id}.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SessionResponse acknowledges session cookie changes.
type SessionResponse struct {
	Success bool `json:"success"`
}
