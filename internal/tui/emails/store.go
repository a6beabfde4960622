// ABOUTME: Persistence for the contact email list
// ABOUTME: Stored as JSON in the same key/value store as the session

package emails

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Ratatouille99337/CryptoQA/internal/models"
	"github.com/Ratatouille99337/CryptoQA/internal/session"
)

// Key is the storage key of the contact email list
const Key = "contactEmails"

// Load reads the stored list. A missing list is empty.
func Load(ctx context.Context, store session.Store) ([]models.ContactEmail, error) {
	raw, err := store.Get(ctx, Key)
	if errors.Is(err, session.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load contact emails: %w", err)
	}

	var list []models.ContactEmail
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to decode contact emails: %w", err)
	}
	for i := range list {
		list[i] = models.NewContactEmail(&list[i])
	}
	return list, nil
}

// Save writes the list
func Save(ctx context.Context, store session.Store, list []models.ContactEmail) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode contact emails: %w", err)
	}
	if err := store.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("failed to save contact emails: %w", err)
	}
	return nil
}
