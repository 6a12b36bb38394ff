// Package collection holds the client-side snapshot of the remote investment
// collection: at most one fetched page plus the request parameters that
// produced it. State is a value type and every transition returns a new
// State, which keeps the loading rules testable without any networking.
package collection

import "github.com/rsaniceto14/investctl/internal/model"

// Token identifies one load generation. A fetch result must present the token
// minted when it was issued; results carrying a stale token are dropped, so
// the most recently issued load wins regardless of network completion order.
type Token int

// State is the collection snapshot. Page is the 1-based page the client asked
// the service for; Records holds that page's contents, already deleted-from
// locally when the user removed entries.
type State struct {
	Records  []model.Investment
	Err      error
	Page     int
	PageSize int
	gen      Token
	Loading  bool
}

// NewState returns an empty state positioned on page 1.
func NewState(pageSize int) State {
	return State{Page: 1, PageSize: pageSize}
}

// BeginLoad marks the state loading and mints the token the eventual result
// must carry. A lingering error from an earlier load is cleared right away so
// the view stops blocking on it.
func (s State) BeginLoad() (State, Token) {
	s.gen++
	s.Loading = true
	s.Err = nil
	return s, s.gen
}

// ApplyLoad folds a fetch result into the state. Results whose token is not
// the newest minted one are ignored outright. A failed load keeps the
// previously loaded records but sets Err; the view treats Err as blocking, so
// those records stay invisible until a later load succeeds.
func (s State) ApplyLoad(tok Token, records []model.Investment, err error) State {
	if tok != s.gen {
		return s
	}
	s.Loading = false
	if err != nil {
		s.Err = err
		return s
	}
	s.Records = records
	return s
}

// Remove drops the record with the given id from the in-memory page. It runs
// only after a confirmed remote delete; there is no re-fetch, so the page is
// not backfilled and Page stays where it was even if the remaining records no
// longer reach it.
func (s State) Remove(id int64) State {
	records := make([]model.Investment, 0, len(s.Records))
	for _, rec := range s.Records {
		if rec.ID != id {
			records = append(records, rec)
		}
	}
	s.Records = records
	return s
}

// WithPage positions the state on the given 1-based page. Callers clamp
// first; WithPage stores what it is given.
func (s State) WithPage(page int) State {
	s.Page = page
	return s
}
