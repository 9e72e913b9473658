package validate

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the only accepted form for a patient's date of birth.
const dateLayout = "2006-01-02"

// allowedGenders are the accepted values for the 'gender' field.
var allowedGenders = []string{"male", "female", "other"}

// ValidationError reports field input that is missing, empty where required, or
// violates a domain constraint such as the date format or the gender value set.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TypeError reports field input of the wrong dynamic type, for example a JSON
// number where a string is expected.
type TypeError struct {
	Message string
}

func (e *TypeError) Error() string {
	return e.Message
}

// OptionalString distinguishes a field that was not supplied at all from one
// that was explicitly set to null. Merging a partial update must not collapse
// the two: an absent field keeps its previous value, an explicit null clears it.
type OptionalString struct {
	Present bool
	Value   *string
}

// Fields is the result of normalizing raw field input. The required fields are
// nil if they were not part of the input (possible in update mode only).
// Address and Phone carry the full absent/null/value distinction.
type Fields struct {
	Name        *string
	DateOfBirth *string
	Gender      *string
	Address     OptionalString
	Phone       OptionalString
}

// Normalize converts a mapping of raw field values into validated, normalized
// field values. With requireAll set (creation mode), all required fields are
// validated whether or not they appear in the input, and absent optional fields
// come out as explicit nulls. Without it (update mode), only the fields present
// in the input are validated and everything else is left absent so that a merge
// preserves prior values. The input map is never modified.
func Normalize(raw map[string]any, requireAll bool) (Fields, error) {
	var fields Fields
	if value, ok := raw["name"]; ok || requireAll {
		name, err := sanitizeRequiredString("Name", value)
		if err != nil {
			return Fields{}, err
		}
		fields.Name = &name
	}
	if value, ok := raw["date_of_birth"]; ok || requireAll {
		dob, err := sanitizeDate(value)
		if err != nil {
			return Fields{}, err
		}
		fields.DateOfBirth = &dob
	}
	if value, ok := raw["gender"]; ok || requireAll {
		gender, err := sanitizeGender(value)
		if err != nil {
			return Fields{}, err
		}
		fields.Gender = &gender
	}
	var err error
	fields.Address, err = sanitizeOptionalString("Address", raw, "address", requireAll)
	if err != nil {
		return Fields{}, err
	}
	fields.Phone, err = sanitizeOptionalString("Phone", raw, "phone", requireAll)
	if err != nil {
		return Fields{}, err
	}
	return fields, nil
}

// sanitizeRequiredString checks that the value is a string and that it is not
// empty after trimming surrounding whitespace.
func sanitizeRequiredString(field string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", &TypeError{Message: field + " must be a string"}
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", &ValidationError{Message: field + " is required."}
	}
	return trimmed, nil
}

// sanitizeOptionalString normalizes a nullable string field. An explicit null
// passes through as null. An absent key becomes an explicit null in creation
// mode and stays absent in update mode.
func sanitizeOptionalString(field string, raw map[string]any, key string, requireAll bool) (OptionalString, error) {
	value, ok := raw[key]
	if !ok {
		if requireAll {
			return OptionalString{Present: true}, nil
		}
		return OptionalString{}, nil
	}
	if value == nil {
		return OptionalString{Present: true}, nil
	}
	s, isString := value.(string)
	if !isString {
		return OptionalString{}, &TypeError{Message: field + " must be a string"}
	}
	trimmed := strings.TrimSpace(s)
	return OptionalString{Present: true, Value: &trimmed}, nil
}

// sanitizeDate checks that the value is a non-empty string holding a real
// calendar date in YYYY-MM-DD form and returns it re-serialized canonically.
// Parsing alone is not enough because time.Parse accepts unpadded months and
// days; comparing against the re-serialized form enforces the exact mask.
func sanitizeDate(value any) (string, error) {
	s, ok := value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", &ValidationError{Message: "Date of birth is required."}
	}
	trimmed := strings.TrimSpace(s)
	parsed, err := time.Parse(dateLayout, trimmed)
	if err != nil || parsed.Format(dateLayout) != trimmed {
		return "", &ValidationError{Message: "Date of birth must follow the format YYYY-MM-DD."}
	}
	return parsed.Format(dateLayout), nil
}

// sanitizeGender checks that the value is a non-empty string and a member of
// the allowed gender set, normalized to lowercase.
func sanitizeGender(value any) (string, error) {
	s, ok := value.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", &ValidationError{Message: "Gender is required."}
	}
	gender := strings.ToLower(strings.TrimSpace(s))
	if !contains(allowedGenders, gender) {
		return "", &ValidationError{
			Message: fmt.Sprintf("Gender must be one of: %s.", strings.Join(allowedGenders, ", ")),
		}
	}
	return gender, nil
}

// contains returns true if a string is present in a slice.
func contains(slice []string, str string) bool {
	for _, v := range slice {
		if v == str {
			return true
		}
	}
	return false
}
