// ABOUTME: Label and contact email models with default-filling factories
// ABOUTME: Given values are kept; missing ones get defaults such as a fresh unique ID

package models

import "github.com/google/uuid"

// Label tags a contact entry
type Label struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// NewLabel returns a label built from partial data. An empty ID is replaced
// with a new unique ID.
func NewLabel(data *Label) Label {
	var l Label
	if data != nil {
		l = *data
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return l
}

// ContactEmail is one row of the contact email list
type ContactEmail struct {
	Email string `json:"email"`
	Label Label  `json:"label"`
}

// NewContactEmail returns a contact email built from partial data
func NewContactEmail(data *ContactEmail) ContactEmail {
	var c ContactEmail
	if data != nil {
		c = *data
	}
	c.Label = NewLabel(&c.Label)
	return c
}
