// Package friend defines the Friend record returned by the friends API.
// Every profile field except the ID is optional and is represented as a nil
// pointer when absent.
package friend

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// UnknownInitials is shown in place of an avatar when a friend has no name.
const UnknownInitials = "??"

// Friend is a profile of another user connected to the current user.
type Friend struct {
	ID               string  `json:"_id"`
	FullName         *string `json:"fullName,omitempty"`
	Location         *string `json:"location,omitempty"`
	NativeLanguage   *string `json:"nativeLanguage,omitempty"`
	LearningLanguage *string `json:"learningLanguage,omitempty"`
	Bio              *string `json:"bio,omitempty"`
	ProfilePic       *string `json:"profilePic,omitempty"`
}

// Text returns a pointer to s, for building optional fields.
func Text(s string) *string {
	return &s
}

// Value reports the content of an optional field and whether it is present.
// Empty strings count as absent.
func Value(p *string) (string, bool) {
	if p == nil || *p == "" {
		return "", false
	}
	return *p, true
}

// Name returns the display name, or "" when the friend has none.
func (f Friend) Name() string {
	s, _ := Value(f.FullName)
	return s
}

// UnmarshalJSON accepts both "_id" and "id" for the identifier and treats
// empty strings in optional fields as absent.
func (f *Friend) UnmarshalJSON(data []byte) error {
	type alias Friend
	aux := struct {
		*alias
		AltID string `json:"id"`
	}{alias: (*alias)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if f.ID == "" {
		f.ID = aux.AltID
	}
	for _, p := range []**string{&f.FullName, &f.Location, &f.NativeLanguage, &f.LearningLanguage, &f.Bio, &f.ProfilePic} {
		if *p != nil && **p == "" {
			*p = nil
		}
	}
	return nil
}

// Initials derives a two-letter avatar label from a full name: the first
// letter of up to the first two whitespace-separated parts, upper-cased.
func Initials(fullName *string) string {
	name, ok := Value(fullName)
	if !ok {
		return UnknownInitials
	}
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return UnknownInitials
	}
	var b strings.Builder
	for _, p := range parts[:min(2, len(parts))] {
		r, _ := utf8.DecodeRuneInString(p)
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}
