package types

import (
	"strings"
	"time"
)

// Gender is the optional gender attribute of a person.
type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender accepts the usual spellings (case insensitive). Unknown values
// leave the gender unset.
func ParseGender(value string) Gender {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	default:
		return GenderUnset
	}
}

// Name holds the structured name of a person.
type Name struct {
	Formatted  string `json:"formatted,omitempty" yaml:"formatted,omitempty"`
	GivenName  string `json:"givenName,omitempty" yaml:"given_name,omitempty"`
	FamilyName string `json:"familyName,omitempty" yaml:"family_name,omitempty"`
}

// Display returns the formatted name, falling back to the given and family
// parts.
func (n Name) Display() string {
	if n.Formatted != "" {
		return n.Formatted
	}
	return strings.TrimSpace(n.GivenName + " " + n.FamilyName)
}

// Address is a postal address attached to a person.
type Address struct {
	Type          string `json:"type,omitempty" yaml:"type,omitempty"`
	StreetAddress string `json:"streetAddress,omitempty" yaml:"street_address,omitempty"`
	Locality      string `json:"locality,omitempty" yaml:"locality,omitempty"`
	Region        string `json:"region,omitempty" yaml:"region,omitempty"`
	PostalCode    string `json:"postalCode,omitempty" yaml:"postal_code,omitempty"`
	Country       string `json:"country,omitempty" yaml:"country,omitempty"`
}

// Person is a member of the community.
type Person struct {
	ID              string     `json:"id" yaml:"id"`
	DisplayName     string     `json:"displayName,omitempty" yaml:"display_name,omitempty"`
	Name            Name       `json:"name" yaml:"name"`
	Gender          Gender     `json:"gender,omitempty" yaml:"gender,omitempty"`
	Birthday        *time.Time `json:"birthday,omitempty" yaml:"birthday,omitempty"`
	Addresses       []Address  `json:"addresses,omitempty" yaml:"addresses,omitempty"`
	LanguagesSpoken []string   `json:"languagesSpoken,omitempty" yaml:"languages_spoken,omitempty"`
	HasApp          bool       `json:"hasApp" yaml:"has_app"`
}

// Clone returns a deep copy so callers can mutate the result freely.
func (p Person) Clone() Person {
	clone := p
	if p.Birthday != nil {
		b := *p.Birthday
		clone.Birthday = &b
	}
	if len(p.Addresses) > 0 {
		clone.Addresses = append([]Address(nil), p.Addresses...)
	}
	if len(p.LanguagesSpoken) > 0 {
		clone.LanguagesSpoken = append([]string(nil), p.LanguagesSpoken...)
	}
	return clone
}
