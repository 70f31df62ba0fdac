package query

import (
	"net/url"
	"sync"
	"time"

	"github.com/renanvonb/nomo-backend/internal/domain"
	"github.com/renanvonb/nomo-backend/internal/period"
)

// Synchronizer owns the period selection and search string and mirrors every
// change into a canonical URL-encoded representation through the commit
// callback. Mode and range edits commit synchronously; search input echoes
// in memory immediately and commits through the debouncer, so the canonical
// state is only rewritten once typing pauses.
type Synchronizer struct {
	mu        sync.Mutex
	resolver  *period.Resolver
	search    string
	commit    func(url.Values)
	debouncer *Debouncer
}

// NewSynchronizer builds a Synchronizer from the initial URL query
// parameters, falling back to the current month when they are absent.
// Malformed range parameters are recovered locally; an unknown mode token is
// an error the caller must surface.
func NewSynchronizer(initial url.Values, now time.Time, debounce time.Duration, commit func(url.Values)) (*Synchronizer, error) {
	selection, err := ParseSelection(initial, now)
	if err != nil {
		return nil, err
	}

	s := &Synchronizer{
		resolver: period.Restore(selection),
		search:   initial.Get(ParamSearch),
		commit:   commit,
	}
	s.debouncer = NewDebouncer(debounce, func(string) { s.commitNow() })
	return s, nil
}

// Selection returns the current period selection
func (s *Synchronizer) Selection() domain.PeriodSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolver.Selection()
}

// Search returns the current in-memory search string, which may not have
// been committed yet
func (s *Synchronizer) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// SetMode switches the period mode, snaps the range to the current period
// anchored at now, and commits synchronously
func (s *Synchronizer) SetMode(mode domain.PeriodMode, now time.Time) error {
	s.mu.Lock()
	if err := s.resolver.SetMode(mode, now); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	s.commitNow()
	return nil
}

// SetRange stores an explicit range, degrades the mode to custom, and
// commits synchronously
func (s *Synchronizer) SetRange(rng domain.DateRange) {
	s.mu.Lock()
	s.resolver.SetCustomRange(rng)
	s.mu.Unlock()
	s.commitNow()
}

// SetSearch updates the in-memory search string immediately and schedules a
// debounced commit; a new call before the delay elapses restarts the timer
func (s *Synchronizer) SetSearch(text string) {
	s.mu.Lock()
	s.search = text
	s.mu.Unlock()
	s.debouncer.Set(text)
}

// Flush commits any pending search text immediately
func (s *Synchronizer) Flush() {
	s.debouncer.Flush()
}

// Close cancels any pending debounced commit
func (s *Synchronizer) Close() {
	s.debouncer.Stop()
}

func (s *Synchronizer) commitNow() {
	s.mu.Lock()
	values := Encode(s.resolver.Selection(), s.search)
	s.mu.Unlock()
	s.commit(values)
}
