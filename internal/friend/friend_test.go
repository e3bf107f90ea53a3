package friend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want string
	}{
		{"two parts", Text("Ana Gomez"), "AG"},
		{"single part", Text("bo"), "B"},
		{"three parts keeps first two", Text("maria del carmen"), "MD"},
		{"extra whitespace", Text("  Bo   Lee "), "BL"},
		{"absent", nil, UnknownInitials},
		{"empty", Text(""), UnknownInitials},
		{"blank", Text("   "), UnknownInitials},
		{"non ascii", Text("élodie ñandú"), "ÉÑ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(tt.in))
		})
	}
}

func TestValue(t *testing.T) {
	_, ok := Value(nil)
	assert.False(t, ok)
	_, ok = Value(Text(""))
	assert.False(t, ok)
	s, ok := Value(Text("Lisbon"))
	assert.True(t, ok)
	assert.Equal(t, "Lisbon", s)
}

func TestUnmarshalJSON_IDAndEmptyFields(t *testing.T) {
	data := []byte(`[
		{"_id": "1", "fullName": "Ana Gomez", "location": "", "bio": null},
		{"id": "2", "fullName": "Bo Lee", "nativeLanguage": "Korean"}
	]`)
	var got []Friend
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)

	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "Ana Gomez", got[0].Name())
	assert.Nil(t, got[0].Location, "empty location should decode as absent")
	assert.Nil(t, got[0].Bio)

	assert.Equal(t, "2", got[1].ID)
	lang, ok := Value(got[1].NativeLanguage)
	assert.True(t, ok)
	assert.Equal(t, "Korean", lang)
}

func TestMarshalJSON_RoundTripsThroughUnmarshal(t *testing.T) {
	in := Friend{ID: "42", FullName: Text("Ana"), ProfilePic: Text("https://example.com/a.png")}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"_id":"42"`)
	assert.NotContains(t, string(data), "location")

	var out Friend
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
