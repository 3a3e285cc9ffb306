package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryLookups(t *testing.T) {
	dir := DefaultDirectory()

	t.Run("by id is case-insensitive", func(t *testing.T) {
		member, ok := dir.FindByID("HUZAIFA")
		require.True(t, ok)
		assert.Equal(t, "huzaifa@nyrix.co", member.Email)
	})

	t.Run("by name is case-insensitive", func(t *testing.T) {
		member, ok := dir.FindByName("sarim")
		require.True(t, ok)
		assert.Equal(t, "sarim@nyrix.co", member.Email)
	})

	t.Run("by email is exact", func(t *testing.T) {
		_, ok := dir.FindByEmail("HUZAIFA@NYRIX.CO")
		assert.False(t, ok)

		member, ok := dir.FindByEmail("huzaifa@nyrix.co")
		require.True(t, ok)
		assert.Equal(t, "Huzaifa", member.Name)
	})

	t.Run("absence is not an error", func(t *testing.T) {
		_, ok := dir.FindByID("nobody")
		assert.False(t, ok)
		_, ok = dir.FindByName("nobody")
		assert.False(t, ok)
		_, ok = dir.FindByEmail("nobody@nyrix.co")
		assert.False(t, ok)
	})
}

func TestDirectoryOrderAndIsolation(t *testing.T) {
	members := []Member{
		{ID: "a", Name: "Alpha", Email: "a@x.co", Initials: "A"},
		{ID: "b", Name: "Beta", Email: "b@x.co", Initials: "B"},
	}
	dir := NewDirectory(members)

	// Mutating the input or the returned slice must not touch the
	// directory.
	members[0].Email = "mutated"
	got := dir.Members()
	require.Len(t, got, 2)
	assert.Equal(t, "a@x.co", got[0].Email)

	got[1].Email = "mutated"
	again := dir.Members()
	assert.Equal(t, "b@x.co", again[1].Email)
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "H", Initials("Huzaifa"))
	assert.Equal(t, "JD", Initials("Jane Doe"))
	assert.Equal(t, "JD", Initials("Jane Doe Smith"))
	assert.Equal(t, "?", Initials(""))
}
