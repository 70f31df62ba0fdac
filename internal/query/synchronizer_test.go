package query

import (
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renanvonb/nomo-backend/internal/domain"
)

// urlRecorder collects committed url.Values safely across goroutines
type urlRecorder struct {
	mu      sync.Mutex
	commits []url.Values
}

func (r *urlRecorder) record(v url.Values) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commits = append(r.commits, v)
}

func (r *urlRecorder) last() url.Values {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.commits) == 0 {
		return nil
	}
	return r.commits[len(r.commits)-1]
}

func (r *urlRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.commits)
}

func TestNewSynchronizer_RestoresFromURL(t *testing.T) {
	initial := url.Values{
		ParamPeriodMode: {"custom"},
		ParamRangeFrom:  {"2024-02-01T00:00:00Z"},
		ParamRangeTo:    {"2024-02-14T00:00:00Z"},
		ParamSearch:     {"mercado"},
	}

	s, err := NewSynchronizer(initial, now, DefaultDebounce, func(url.Values) {})
	require.NoError(t, err)
	defer s.Close()

	selection := s.Selection()
	assert.Equal(t, domain.PeriodModeCustom, selection.Mode)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), selection.Range.Start)
	assert.Equal(t, "mercado", s.Search())
}

func TestNewSynchronizer_UnknownModeSurfaces(t *testing.T) {
	initial := url.Values{ParamPeriodMode: {"quarter"}}

	_, err := NewSynchronizer(initial, now, DefaultDebounce, func(url.Values) {})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriodMode)
}

func TestSynchronizer_SetModeCommitsImmediately(t *testing.T) {
	rec := &urlRecorder{}
	s, err := NewSynchronizer(url.Values{}, now, DefaultDebounce, rec.record)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SetMode(domain.PeriodModeWeek, now))

	require.Equal(t, 1, rec.count())
	assert.Equal(t, "week", rec.last().Get(ParamPeriodMode))
}

func TestSynchronizer_SetModeInvalidDoesNotCommit(t *testing.T) {
	rec := &urlRecorder{}
	s, err := NewSynchronizer(url.Values{}, now, DefaultDebounce, rec.record)
	require.NoError(t, err)
	defer s.Close()

	err = s.SetMode(domain.PeriodMode("quarter"), now)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriodMode)
	assert.Equal(t, 0, rec.count())
}

func TestSynchronizer_SetRangeDegradesToCustomAndCommits(t *testing.T) {
	rec := &urlRecorder{}
	s, err := NewSynchronizer(url.Values{}, now, DefaultDebounce, rec.record)
	require.NoError(t, err)
	defer s.Close()

	s.SetRange(domain.DateRange{
		Start: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
	})

	require.Equal(t, 1, rec.count())
	committed := rec.last()
	assert.Equal(t, "custom", committed.Get(ParamPeriodMode))
	assert.Equal(t, "2024-03-05T00:00:00Z", committed.Get(ParamRangeFrom))
	assert.Equal(t, "2024-03-20T00:00:00Z", committed.Get(ParamRangeTo))
}

func TestSynchronizer_SearchEchoesImmediatelyCommitsDebounced(t *testing.T) {
	rec := &urlRecorder{}
	s, err := NewSynchronizer(url.Values{}, now, 20*time.Millisecond, rec.record)
	require.NoError(t, err)
	defer s.Close()

	s.SetSearch("mer")
	s.SetSearch("mercado")

	// In-memory value is current before any commit happens
	assert.Equal(t, "mercado", s.Search())
	assert.Equal(t, 0, rec.count())

	time.Sleep(80 * time.Millisecond)

	require.Equal(t, 1, rec.count())
	assert.Equal(t, "mercado", rec.last().Get(ParamSearch))
}

func TestSynchronizer_FlushCommitsPendingSearch(t *testing.T) {
	rec := &urlRecorder{}
	s, err := NewSynchronizer(url.Values{}, now, time.Hour, rec.record)
	require.NoError(t, err)
	defer s.Close()

	s.SetSearch("padaria")
	s.Flush()

	require.Equal(t, 1, rec.count())
	assert.Equal(t, "padaria", rec.last().Get(ParamSearch))
}

func TestSynchronizer_ModeChangeKeepsSearch(t *testing.T) {
	rec := &urlRecorder{}
	initial := url.Values{ParamSearch: {"aluguel"}}
	s, err := NewSynchronizer(initial, now, DefaultDebounce, rec.record)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SetMode(domain.PeriodModeYear, now))

	committed := rec.last()
	assert.Equal(t, "year", committed.Get(ParamPeriodMode))
	assert.Equal(t, "aluguel", committed.Get(ParamSearch))
}
