package domain

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationStatus represents the review state of an application.
type ApplicationStatus string

// Possible application status values.
const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// ParseStatus validates a raw status string.
// Returns ErrInvalidStatus for anything outside the known set.
func ParseStatus(raw string) (ApplicationStatus, error) {
	switch s := ApplicationStatus(raw); s {
	case StatusPending, StatusApproved, StatusRejected:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

// CanTransitionTo reports whether a status change is allowed.
// Applications move out of pending exactly once; writing the current
// status again is permitted so retried requests stay idempotent.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s == next {
		return true
	}
	return s == StatusPending
}

// ServiceSnapshot carries the service fields copied onto an application at
// read time. It is never persisted; a dangling service reference simply
// leaves the application without one.
type ServiceSnapshot struct {
	ServiceTitle     string `json:"serviceTitle,omitempty"`
	CompanyName      string `json:"companyName,omitempty"`
	ServiceImage     string `json:"serviceImage,omitempty"`
	Category         string `json:"category,omitempty"`
	ApplicationCount int    `json:"applicationCount"`
}

// Application represents a user's application to a Service.
type Application struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	ServiceID      string             `bson:"service_id,omitempty"`
	ApplicantEmail string             `bson:"applicant_email,omitempty"`
	Status         ApplicationStatus  `bson:"status,omitempty"`

	// Extra holds applicant-supplied fields the system does not interpret.
	Extra map[string]interface{} `bson:",inline"`

	// Enrichment is populated at read time from the referenced Service
	// when the reference resolves. Never stored.
	Enrichment *ServiceSnapshot `bson:"-"`
}

// Validate checks the fields required at creation time.
func (a *Application) Validate() error {
	if a.ServiceID == "" {
		return ErrMissingServiceID
	}
	if a.Status != "" {
		if _, err := ParseStatus(string(a.Status)); err != nil {
			return err
		}
	}
	return nil
}

var applicationFieldNames = map[string]bool{
	"_id":             true,
	"service_id":      true,
	"applicant_email": true,
	"status":          true,
}

// MarshalJSON flattens Extra and the read-time enrichment into the
// top-level object, matching the document shape the paired front end
// consumes.
func (a Application) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(a.Extra)+9)
	for k, v := range a.Extra {
		if !applicationFieldNames[k] {
			out[k] = v
		}
	}
	if !a.ID.IsZero() {
		out["_id"] = a.ID.Hex()
	}
	if a.ServiceID != "" {
		out["service_id"] = a.ServiceID
	}
	if a.ApplicantEmail != "" {
		out["applicant_email"] = a.ApplicantEmail
	}
	if a.Status != "" {
		out["status"] = a.Status
	}
	if a.Enrichment != nil {
		out["serviceTitle"] = a.Enrichment.ServiceTitle
		out["companyName"] = a.Enrichment.CompanyName
		out["serviceImage"] = a.Enrichment.ServiceImage
		out["category"] = a.Enrichment.Category
		out["applicationCount"] = a.Enrichment.ApplicationCount
	}
	return json.Marshal(out)
}

// UnmarshalJSON splits an incoming object into the named fields and Extra.
func (a *Application) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if hex, ok := raw["_id"].(string); ok {
		if id, err := primitive.ObjectIDFromHex(hex); err == nil {
			a.ID = id
			delete(raw, "_id")
		}
	}
	a.ServiceID = popString(raw, "service_id")
	a.ApplicantEmail = popString(raw, "applicant_email")
	a.Status = ApplicationStatus(popString(raw, "status"))

	if len(raw) > 0 {
		a.Extra = raw
	} else {
		a.Extra = nil
	}
	return nil
}

// Snapshot builds the enrichment view of a service.
func (s *Service) Snapshot() *ServiceSnapshot {
	return &ServiceSnapshot{
		ServiceTitle:     s.ServiceTitle,
		CompanyName:      s.CompanyName,
		ServiceImage:     s.ServiceImage,
		Category:         s.Category,
		ApplicationCount: s.ApplicationCount,
	}
}
