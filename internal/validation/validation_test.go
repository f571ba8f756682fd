package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFields(t *testing.T) {
	t.Run("valid names pass", func(t *testing.T) {
		assert.Empty(t, UserFields("Testy", "Testerson"))
		assert.Empty(t, UserFields("a", strings.Repeat("b", 32)))
	})

	t.Run("both violations are collected", func(t *testing.T) {
		got := UserFields("", strings.Repeat("x", 33))
		require.Len(t, got, 2)
		assert.Equal(t, MsgFirstNameLength, got[0].Message)
		assert.Equal(t, MsgLastNameLength, got[1].Message)
		assert.Equal(t, SeverityBlocking, got[0].Severity)
	})

	t.Run("whitespace-only counts as blank", func(t *testing.T) {
		got := UserFields("   ", "Testerson")
		require.Len(t, got, 1)
		assert.Equal(t, "first_name", got[0].Field)
	})
}

func TestTagName(t *testing.T) {
	t.Run("valid unique name passes", func(t *testing.T) {
		assert.Empty(t, TagName("sports", []string{"news"}))
	})

	t.Run("collision is a warning", func(t *testing.T) {
		got := TagName("sports", []string{"news", "sports"})
		require.Len(t, got, 1)
		assert.Equal(t, MsgTagExists, got[0].Message)
		assert.Equal(t, SeverityWarning, got[0].Severity)
	})

	t.Run("comparison is case-sensitive", func(t *testing.T) {
		assert.Empty(t, TagName("Sports", []string{"sports"}))
	})

	t.Run("blank and overlong names are blocking", func(t *testing.T) {
		got := TagName("", nil)
		require.Len(t, got, 1)
		assert.Equal(t, MsgTagNameLength, got[0].Message)
		assert.Equal(t, SeverityBlocking, got[0].Severity)

		got = TagName(strings.Repeat("x", 33), nil)
		require.Len(t, got, 1)
		assert.Equal(t, MsgTagNameLength, got[0].Message)
	})

	t.Run("length and collision can both be reported", func(t *testing.T) {
		long := strings.Repeat("x", 33)
		got := TagName(long, []string{long})
		assert.Len(t, got, 2)
	})
}

func TestPostTitle(t *testing.T) {
	assert.Empty(t, PostTitle("Test Post"))

	got := PostTitle("")
	require.Len(t, got, 1)
	assert.Equal(t, MsgPostTitle, got[0].Message)
}

func TestAsError(t *testing.T) {
	assert.Nil(t, AsError(nil))
	assert.Nil(t, AsError([]Violation{}))

	err := AsError([]Violation{
		{Field: "first_name", Message: MsgFirstNameLength, Severity: SeverityBlocking},
		{Field: "last_name", Message: MsgLastNameLength, Severity: SeverityBlocking},
	})
	require.Error(t, err)
	assert.Equal(t, MsgFirstNameLength+"; "+MsgLastNameLength, err.Error())
}
