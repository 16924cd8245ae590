package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MissingFields returns the names in required that are absent from body.
// A key that is present counts even when its value is empty.
func MissingFields(body map[string]interface{}, required []string) []string {
	var missing []string
	for _, field := range required {
		if _, ok := body[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// CheckFieldsExist reports whether every required field is present.
func CheckFieldsExist(body map[string]interface{}, required []string) error {
	if missing := MissingFields(body, required); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	return nil
}

// ExtractFields copies the allow-listed keys of body into a new map.
func ExtractFields(body map[string]interface{}, expected []string) map[string]interface{} {
	out := make(map[string]interface{}, len(expected))
	for _, field := range expected {
		if v, ok := body[field]; ok {
			out[field] = v
		}
	}
	return out
}

// FilterObject drops keys holding null.
func FilterObject(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if v == nil {
			continue
		}
		out[k] = v
	}
	return out
}

// DecodeFields copies a loose field map onto a typed struct through its json tags.
// Values of the wrong JSON type are reported as a validation error.
func DecodeFields(fields map[string]interface{}, dst interface{}) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &ValidationError{Fields: []string{typeErr.Field}}
		}
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// ParseObjectID converts a hex id, reporting ErrInvalidID for anything malformed.
func ParseObjectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}

// IDFromBody reads the "_id" key of a request body.
func IDFromBody(body map[string]interface{}) (primitive.ObjectID, error) {
	raw, ok := body["_id"].(string)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%w: _id is not a string", ErrInvalidID)
	}
	return ParseObjectID(raw)
}

// UpdateSet builds a $set document holding, for every key in fields, the
// value that key has on the merged document. Keys the encoding omits as empty
// are set to the value sent, so an empty string clears an optional field.
func UpdateSet(merged interface{}, fields map[string]interface{}) (bson.M, error) {
	raw, err := bson.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encode update: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode update: %w", err)
	}

	set := bson.M{}
	for k := range fields {
		if k == "_id" {
			continue
		}
		if v, ok := doc[k]; ok {
			set[k] = v
			continue
		}
		// omitempty dropped the key, so the caller sent the zero value; store it to clear the field
		set[k] = fields[k]
	}
	return set, nil
}
