// Package session models the browser session's view state as an explicit
// struct with pure transition functions: browsing the catalog, composing a
// new listing, or viewing one listing's detail.
package session

import (
	"sync"

	"github.com/recircle/marketplace/internal/catalog/domain"
)

type View string

const (
	ViewBrowse  View = "browse"
	ViewSell    View = "sell"
	ViewProduct View = "product"
)

// State is the session's mutable UI state. Transitions return a new State;
// an illegal transition returns its input unchanged.
type State struct {
	View     View            `json:"view"`
	Selected *domain.Listing `json:"selected,omitempty"`
	Draft    domain.Draft    `json:"draft"`
}

func NewState() State {
	return State{
		View:  ViewBrowse,
		Draft: domain.NewDraft(),
	}
}

// GoSell enters the listing form. Only reachable from browse.
func GoSell(s State) State {
	if s.View != ViewBrowse {
		return s
	}
	s.View = ViewSell
	return s
}

// GoProduct opens one listing's detail, carrying the full record forward.
// Only reachable from browse.
func GoProduct(s State, l *domain.Listing) State {
	if s.View != ViewBrowse || l == nil {
		return s
	}
	s.View = ViewProduct
	s.Selected = l
	return s
}

// BackToBrowse leaves the detail view.
func BackToBrowse(s State) State {
	if s.View != ViewProduct {
		return s
	}
	s.View = ViewBrowse
	s.Selected = nil
	return s
}

// SetDraft replaces the in-progress form state.
func SetDraft(s State, d domain.Draft) State {
	s.Draft = d
	return s
}

// CompletePost resets the form to its empty defaults after a successful post
// and returns to browsing if the user was on the form.
func CompletePost(s State) State {
	s.Draft = domain.NewDraft()
	if s.View == ViewSell {
		s.View = ViewBrowse
	}
	return s
}

// Session wraps State for concurrent HTTP handlers. The modeled UI is
// single-threaded; the mutex only serializes handler access.
type Session struct {
	mu    sync.Mutex
	state State
}

func New() *Session {
	return &Session{state: NewState()}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Apply runs a transition against the current state.
func (s *Session) Apply(transition func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = transition(s.state)
	return s.state
}
