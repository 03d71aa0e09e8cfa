package auth

import "errors"

// ErrLoginRequired is returned by Guard.Check when no credential is stored.
var ErrLoginRequired = errors.New("not logged in")

// Guard gates protected views and commands on credential presence.
type Guard struct {
	store Store
}

// NewGuard returns a guard reading store.
func NewGuard(store Store) Guard {
	return Guard{store: store}
}

// Allow reports whether a protected view may be entered.
func (g Guard) Allow() bool {
	_, ok := g.store.Get()
	return ok
}

// Check returns ErrLoginRequired when Allow is false.
func (g Guard) Check() error {
	if !g.Allow() {
		return ErrLoginRequired
	}
	return nil
}
