package cards

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
)

var (
	// ErrCardNotFound reports a lookup for a card number the store has
	// never issued.
	ErrCardNotFound = errors.New("card not found")
	// ErrAccountNotFound reports a lookup for an unknown rider account.
	ErrAccountNotFound = errors.New("account not found")
	// ErrNotCardOwner refuses a card operation by a non-owning account.
	ErrNotCardOwner = errors.New("account does not own this card")
	// ErrSingleCard refuses removing an account's only card.
	ErrSingleCard = errors.New("cannot remove an account's only card")
)

// Account is the owning side of one or more cards. Riders themselves
// (names, credentials) live outside this engine.
type Account struct {
	ID          string   `json:"id"`
	CardNumbers []string `json:"cardNumbers"`
}

// Store is the in-memory card and account registry the engine operates on.
// Persistence belongs to the surrounding system.
type Store struct {
	mu       sync.RWMutex
	cards    map[string]*Card
	accounts map[string]*Account
}

// NewStore returns an empty registry.
func NewStore() *Store {
	return &Store{
		cards:    make(map[string]*Card),
		accounts: make(map[string]*Account),
	}
}

// Card looks up a card by number.
func (s *Store) Card(number string) (*Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.cards[number]
	if !ok {
		return nil, ErrCardNotFound
	}
	return card, nil
}

// Account looks up an account by id.
func (s *Store) Account(id string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return s.copyAccount(account), nil
}

// copyAccount snapshots an account so callers read it without the lock.
func (s *Store) copyAccount(a *Account) *Account {
	out := &Account{ID: a.ID}
	out.CardNumbers = append(out.CardNumbers, a.CardNumbers...)
	return out
}

// EnsureAccount returns the account with the given id, creating an empty
// one if needed. Account creation proper (registration, login) is outside
// the engine; this keeps the card side consistent regardless.
func (s *Store) EnsureAccount(id string) *Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		account = &Account{ID: id}
		s.accounts[id] = account
	}
	return s.copyAccount(account)
}

// IssueCard creates a new activated card for the account with the given
// opening balance and registers it.
func (s *Store) IssueCard(accountID string, balance float64) *Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		account = &Account{ID: accountID}
		s.accounts[accountID] = account
	}

	number := s.newCardNumber()
	card := NewCard(number, accountID, balance)
	s.cards[number] = card
	account.CardNumbers = append(account.CardNumbers, number)
	return card
}

// newCardNumber generates an unused 12-digit card number. Callers hold s.mu.
func (s *Store) newCardNumber() string {
	for {
		var b strings.Builder
		for i := 0; i < 12; i++ {
			b.WriteByte(byte('0' + rand.Intn(10)))
		}
		number := b.String()
		if _, taken := s.cards[number]; !taken {
			return number
		}
	}
}

// CardsForAccount returns all cards currently attached to the account.
func (s *Store) CardsForAccount(accountID string) ([]*Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	out := make([]*Card, 0, len(account.CardNumbers))
	for _, number := range account.CardNumbers {
		out = append(out, s.cards[number])
	}
	return out, nil
}

// RemoveCard detaches a card from its account, moving its balance (or debt)
// to another card. The removed card is deactivated and dropped from the
// store, so later lookups fail and a pending load-value against it cannot
// settle. Refused when it is the account's only card or when the account
// does not own it.
func (s *Store) RemoveCard(accountID, number, transferTo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	card, ok := s.cards[number]
	if !ok {
		return ErrCardNotFound
	}
	if card.AccountID() != accountID {
		return ErrNotCardOwner
	}
	if len(account.CardNumbers) == 1 {
		return ErrSingleCard
	}
	target, ok := s.cards[transferTo]
	if !ok {
		return ErrCardNotFound
	}

	amount := card.Balance()
	target.AddBalance(amount)
	card.AddBalance(-amount)
	card.SetActivated(false)
	delete(s.cards, number)

	kept := account.CardNumbers[:0]
	for _, n := range account.CardNumbers {
		if n != number {
			kept = append(kept, n)
		}
	}
	account.CardNumbers = kept
	return nil
}
