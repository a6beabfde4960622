// ABOUTME: Tests for the label factory and the repeating field list operations
// ABOUTME: Checks default filling and that list operations never mutate their input

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLabel_Defaults(t *testing.T) {
	a := NewLabel(nil)
	b := NewLabel(&Label{})

	assert.NotEmpty(t, a.ID)
	assert.NotEmpty(t, b.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "", a.Title)
}

func TestNewLabel_KeepsGivenValues(t *testing.T) {
	l := NewLabel(&Label{ID: "fixed", Title: "Work"})
	assert.Equal(t, Label{ID: "fixed", Title: "Work"}, l)

	l = NewLabel(&Label{Title: "Home"})
	assert.Equal(t, "Home", l.Title)
	assert.NotEmpty(t, l.ID)
}

func TestNewContactEmail(t *testing.T) {
	c := NewContactEmail(nil)
	assert.Equal(t, "", c.Email)
	assert.NotEmpty(t, c.Label.ID)

	c = NewContactEmail(&ContactEmail{Email: "a@b.co", Label: Label{Title: "Work"}})
	assert.Equal(t, "a@b.co", c.Email)
	assert.Equal(t, "Work", c.Label.Title)
}

func TestReplace(t *testing.T) {
	in := []string{"a", "b", "c"}
	out := Replace(in, 1, "x")

	assert.Equal(t, []string{"a", "x", "c"}, out)
	assert.Equal(t, []string{"a", "b", "c"}, in)
	assert.Equal(t, in, Replace(in, 5, "x"))
}

func TestRemove(t *testing.T) {
	in := []string{"a", "b", "c"}

	assert.Equal(t, []string{"a", "c"}, Remove(in, 1))
	assert.Equal(t, []string{"b", "c"}, Remove(in, 0))
	assert.Equal(t, []string{"a", "b"}, Remove(in, 2))
	assert.Equal(t, []string{"a", "b", "c"}, in)
	assert.Equal(t, in, Remove(in, -1))
}

func TestAppend(t *testing.T) {
	in := make([]string, 1, 4)
	in[0] = "a"
	out := Append(in, "b")
	out[0] = "changed"

	assert.Equal(t, []string{"a"}, in)
	assert.Equal(t, []string{"changed", "b"}, out)
}

func TestCanRemove(t *testing.T) {
	assert.False(t, CanRemove([]int{}))
	assert.False(t, CanRemove([]int{1}))
	assert.True(t, CanRemove([]int{1, 2}))
}
