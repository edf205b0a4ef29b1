package domain

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service represents an offering a provider posts for review and application.
// Beyond the fields the system itself reads, providers may attach arbitrary
// fields; those are preserved verbatim in Extra and round-trip through both
// BSON and JSON untouched.
type Service struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserEmail    string             `bson:"userEmail,omitempty"`
	ServiceTitle string             `bson:"serviceTitle,omitempty"`
	CompanyName  string             `bson:"companyName,omitempty"`
	ServiceImage string             `bson:"serviceImage,omitempty"`
	Category     string             `bson:"category,omitempty"`

	// ApplicationCount tracks how many applications have been created
	// against this service. Absent in the store is read as zero. Mutated
	// only through ServiceStore.IncrementApplicationCount.
	ApplicationCount int `bson:"applicationCount,omitempty"`

	// Extra holds provider-supplied fields the system does not interpret.
	Extra map[string]interface{} `bson:",inline"`
}

// serviceFieldNames are the JSON/BSON keys owned by the named struct fields.
// Keys outside this set belong to Extra.
var serviceFieldNames = map[string]bool{
	"_id":              true,
	"userEmail":        true,
	"serviceTitle":     true,
	"companyName":      true,
	"serviceImage":     true,
	"category":         true,
	"applicationCount": true,
}

// MarshalJSON flattens Extra into the top-level object so clients see the
// exact document shape they stored, with _id as a hex string.
func (s Service) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(s.Extra)+7)
	for k, v := range s.Extra {
		if !serviceFieldNames[k] {
			out[k] = v
		}
	}
	if !s.ID.IsZero() {
		out["_id"] = s.ID.Hex()
	}
	if s.UserEmail != "" {
		out["userEmail"] = s.UserEmail
	}
	if s.ServiceTitle != "" {
		out["serviceTitle"] = s.ServiceTitle
	}
	if s.CompanyName != "" {
		out["companyName"] = s.CompanyName
	}
	if s.ServiceImage != "" {
		out["serviceImage"] = s.ServiceImage
	}
	if s.Category != "" {
		out["category"] = s.Category
	}
	// Always present so the front end can render a zero count.
	out["applicationCount"] = s.ApplicationCount
	return json.Marshal(out)
}

// UnmarshalJSON splits an incoming object into the named fields and Extra.
// An _id value is accepted only as a valid ObjectID hex string; anything
// else is left untouched in Extra for the store layer to reject or ignore.
func (s *Service) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if hex, ok := raw["_id"].(string); ok {
		if id, err := primitive.ObjectIDFromHex(hex); err == nil {
			s.ID = id
			delete(raw, "_id")
		}
	}
	s.UserEmail = popString(raw, "userEmail")
	s.ServiceTitle = popString(raw, "serviceTitle")
	s.CompanyName = popString(raw, "companyName")
	s.ServiceImage = popString(raw, "serviceImage")
	s.Category = popString(raw, "category")
	s.ApplicationCount = popInt(raw, "applicationCount")

	if len(raw) > 0 {
		s.Extra = raw
	} else {
		s.Extra = nil
	}
	return nil
}

// popString removes key from raw and returns it when it is a string.
func popString(raw map[string]interface{}, key string) string {
	if v, ok := raw[key].(string); ok {
		delete(raw, key)
		return v
	}
	return ""
}

// popInt removes key from raw and returns it when it is numeric.
// encoding/json decodes all numbers as float64.
func popInt(raw map[string]interface{}, key string) int {
	if v, ok := raw[key].(float64); ok {
		delete(raw, key)
		return int(v)
	}
	return 0
}
