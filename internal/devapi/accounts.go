// ABOUTME: In-memory account directory for the dev Auth API
// ABOUTME: Stores bcrypt password hashes keyed by normalized email

package devapi

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	errEmailTaken      = errors.New("email already registered")
	errBadCredentials  = errors.New("invalid credentials")
	errAccountNotFound = errors.New("account not found")
)

type account struct {
	ID           string
	Email        string
	DisplayName  string
	Domain       string
	Phone        string
	Role         string
	PasswordHash []byte
}

type accounts struct {
	mu      sync.RWMutex
	byEmail map[string]*account
	cost    int
	dummy   []byte
}

func newAccounts(cost int) *accounts {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("cryptoqa-dummy"), cost)
	return &accounts{byEmail: make(map[string]*account), cost: cost, dummy: dummy}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (a *accounts) create(acct account, password string) (*account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	key := normalizeEmail(acct.Email)
	if _, exists := a.byEmail[key]; exists {
		return nil, errEmailTaken
	}
	acct.ID = uuid.NewString()
	acct.PasswordHash = hash
	a.byEmail[key] = &acct
	out := acct
	return &out, nil
}

func (a *accounts) lookup(email string) (*account, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	acct, ok := a.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, false
	}
	out := *acct
	return &out, true
}

func (a *accounts) authenticate(email, password string) (*account, error) {
	acct, ok := a.lookup(email)
	if !ok {
		// Spend the same work as a real check so timing does not reveal unknown emails
		bcrypt.CompareHashAndPassword(a.dummy, []byte(password))
		return nil, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password)); err != nil {
		return nil, errBadCredentials
	}
	return acct, nil
}

func (a *accounts) setPassword(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	acct, ok := a.byEmail[normalizeEmail(email)]
	if !ok {
		return errAccountNotFound
	}
	acct.PasswordHash = hash
	return nil
}
