package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     PasswordReport
	}{
		{
			name:     "too short",
			password: "short",
			want:     PasswordReport{Valid: false, MinLength: false, HasLower: true},
		},
		{
			name:     "length only still valid",
			password: "abcdef",
			want:     PasswordReport{Valid: true, MinLength: true, HasLower: true},
		},
		{
			name:     "all flags",
			password: "Abc123!x",
			want: PasswordReport{
				Valid: true, MinLength: true,
				HasUpper: true, HasLower: true, HasNumber: true, HasSpecial: true,
			},
		},
		{
			name:     "digits and specials only",
			password: "123!@#",
			want:     PasswordReport{Valid: true, MinLength: true, HasNumber: true, HasSpecial: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPassword(tt.password))
		})
	}
}

// Strength flags never affect validity; only the length gate blocks.
func TestPasswordValidityIgnoresStrengthFlags(t *testing.T) {
	r := CheckPassword("aaaaaa")
	assert.True(t, r.Valid)
	assert.False(t, r.HasUpper)
	assert.False(t, r.HasNumber)
	assert.False(t, r.HasSpecial)
}

func TestPasswordStrength(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name         string
		password     string
		wantScore    int
		wantStrength string
		wantFeedback int
	}{
		{"empty", "", 0, StrengthWeak, 5},
		{"lowercase short", "abc", 1, StrengthWeak, 4},
		{"length and lower", "abcdef", 2, StrengthMedium, 3},
		{"four flags", "Abcdef1", 4, StrengthStrong, 1},
		{"all five", "Abcdef1!", 5, StrengthStrong, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := e.PasswordStrength(tt.password)
			assert.Equal(t, tt.wantScore, s.Score)
			assert.Equal(t, tt.wantStrength, s.Strength)
			assert.Len(t, s.Feedback, tt.wantFeedback)
		})
	}
}
