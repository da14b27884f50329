package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.co", true},
		{"user.name+tag@example.com", true},
		{"not-an-email", false},
		{"a@b", false}, // no TLD
		{"@example.com", false},
		{"user@.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateEmail(tt.email))
		})
	}
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+1 (403) 555-0199"))
	assert.True(t, ValidatePhone("04035550199"))
	assert.False(t, ValidatePhone("555"))
	assert.False(t, ValidatePhone("not a phone"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		wantScore int
		wantValid bool
	}{
		{"short lowercase", "abc", 1, false},
		{"all rules", "Abcdef1!", 5, true},
		{"no special", "Abcdefg1", 4, true},
		{"only length and lower", "abcdefgh", 2, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidatePassword(tt.password)
			assert.Equal(t, tt.wantScore, res.Score)
			assert.Equal(t, tt.wantValid, res.Valid)
			// One message per failed rule.
			assert.Len(t, res.Messages, 5-tt.wantScore)
		})
	}
}

func TestValidatePasswordMessageOrder(t *testing.T) {
	// Rule order is fixed: length, digit, lowercase, uppercase, special.
	res := ValidatePassword("")
	require.Len(t, res.Messages, 5)
	assert.Contains(t, res.Messages[0], "at least 8 characters")
	assert.Contains(t, res.Messages[1], "number")
	assert.Contains(t, res.Messages[2], "lowercase")
	assert.Contains(t, res.Messages[3], "uppercase")
	assert.Contains(t, res.Messages[4], "special")
}

func TestValidateFile(t *testing.T) {
	t.Run("oversized file is rejected with a size violation", func(t *testing.T) {
		res := ValidateFile(6*1024*1024, "image/png", FileOptions{})
		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "5MB")
	})

	t.Run("small png is accepted", func(t *testing.T) {
		res := ValidateFile(2*1024*1024, "image/png", FileOptions{})
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("disallowed type is rejected", func(t *testing.T) {
		res := ValidateFile(1024, "application/zip", FileOptions{})
		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "application/zip")
	})

	t.Run("oversized and disallowed reports both rules", func(t *testing.T) {
		res := ValidateFile(10*1024*1024, "text/plain", FileOptions{})
		assert.False(t, res.Valid)
		assert.Len(t, res.Errors, 2)
	})

	t.Run("custom options override defaults", func(t *testing.T) {
		res := ValidateFile(100, "text/csv", FileOptions{MaxSize: 50, AllowedTypes: []string{"text/csv"}})
		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
	})
}

func TestSanitizeHTML(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;alert(&#039;x&#039;)&lt;/script&gt;", SanitizeHTML("<script>alert('x')</script>"))
	assert.Equal(t, "a &amp; b", SanitizeHTML("a & b"))
	assert.Equal(t, "", SanitizeHTML(""))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("  hello  "))
	assert.Equal(t, "scriptalert(1)/script", SanitizeInput("<script>alert(1)</script>"))
}

func TestRandomString(t *testing.T) {
	a, err := RandomString(16)
	require.NoError(t, err)
	b, err := RandomString(16)
	require.NoError(t, err)
	assert.Len(t, a, 32) // hex doubles the byte count
	assert.NotEqual(t, a, b)
}

func TestHashString(t *testing.T) {
	// SHA-256 of the empty string is a fixed vector.
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", HashString(""))
	assert.Equal(t, HashString("remit"), HashString("remit"))
	assert.NotEqual(t, HashString("remit"), HashString("remit2"))
}
