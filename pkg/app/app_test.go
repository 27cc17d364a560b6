package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/byxorna/stopover/pkg/config"
	"github.com/byxorna/stopover/pkg/itinerary"
	"github.com/byxorna/stopover/pkg/plugins/gemini"
	v1 "github.com/byxorna/stopover/pkg/types/v1"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	stops   []v1.Stop
	saves   int
	clears  int
	loadErr error
	events  chan struct{}
}

func newMemStore(stops []v1.Stop) *memStore {
	return &memStore{stops: stops, events: make(chan struct{}, 1)}
}

func (s *memStore) Load() ([]v1.Stop, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	cp := make([]v1.Stop, len(s.stops))
	copy(cp, s.stops)
	return cp, nil
}

func (s *memStore) Save(stops []v1.Stop) error {
	s.saves++
	s.stops = stops
	return nil
}

func (s *memStore) Clear() error {
	s.clears++
	s.stops = nil
	return nil
}

func (s *memStore) Events() <-chan struct{} { return s.events }
func (s *memStore) Path() string            { return "mem" }
func (s *memStore) Status() v1.SyncStatus   { return v1.StatusOK }
func (s *memStore) Close() error            { return nil }

type fakeAdvisor struct {
	calls int
	text  string
	err   error
}

func (a *fakeAdvisor) RequestTips(ctx context.Context, stops []v1.Stop) (string, error) {
	a.calls++
	return a.text, a.err
}

func newTestApp(t *testing.T, stops []v1.Stop, advisor Advisor) (Application, *memStore) {
	t.Helper()
	cfg := config.Default
	store := newMemStore(stops)
	m, err := New(context.Background(), &cfg, store, advisor)
	require.NoError(t, err)
	return m, store
}

func stopFixture(t *testing.T, title, date string, status v1.Status, order int) v1.Stop {
	t.Helper()
	dt, err := v1.NewDateTime(date, "09:00")
	require.NoError(t, err)
	return v1.Stop{
		ID:       v1.NewID(),
		Title:    title,
		Address:  "somewhere",
		DateTime: dt,
		Status:   status,
		Order:    order,
	}
}

func TestEmptyItineraryNeverCallsAdvisor(t *testing.T) {
	advisor := &fakeAdvisor{text: "three tips"}
	m, _ := newTestApp(t, nil, advisor)

	msg := m.requestTips(m.itin.Stops())()
	tips, ok := msg.(tipsMsg)
	require.True(t, ok)
	assert.Equal(t, gemini.Placeholder, tips.text)
	assert.Zero(t, advisor.calls)
}

func TestTipsFallbackOnAdvisorFailure(t *testing.T) {
	advisor := &fakeAdvisor{err: fmt.Errorf("quota exceeded")}
	stops := []v1.Stop{stopFixture(t, "louvre", "2026-06-01", v1.StatusPlanned, 0)}
	m, _ := newTestApp(t, stops, advisor)

	msg := m.requestTips(m.itin.Stops())()
	tips, ok := msg.(tipsMsg)
	require.True(t, ok)
	assert.Equal(t, gemini.Fallback, tips.text)
	assert.Error(t, tips.err)
	assert.Equal(t, 1, advisor.calls)

	// the error never becomes a user-facing error state
	next, _ := m.Update(tips)
	assert.NoError(t, next.(Application).err)
	assert.Equal(t, gemini.Fallback, next.(Application).tips)
}

func TestTipsWithoutAdvisorDegradesToFallback(t *testing.T) {
	stops := []v1.Stop{stopFixture(t, "louvre", "2026-06-01", v1.StatusPlanned, 0)}
	m, _ := newTestApp(t, stops, nil)

	msg := m.requestTips(m.itin.Stops())()
	tips, ok := msg.(tipsMsg)
	require.True(t, ok)
	assert.Equal(t, gemini.Fallback, tips.text)
}

func TestLastTipsResponseWins(t *testing.T) {
	stops := []v1.Stop{stopFixture(t, "louvre", "2026-06-01", v1.StatusPlanned, 0)}
	m, _ := newTestApp(t, stops, &fakeAdvisor{text: "x"})

	next, _ := m.Update(tipsMsg{text: "first"})
	next, _ = next.(Application).Update(tipsMsg{text: "second"})
	assert.Equal(t, "second", next.(Application).tips)
}

func (f *form) fill(title, address, date, clock, cost string) {
	f.inputs[fieldTitle].SetValue(title)
	f.inputs[fieldAddress].SetValue(address)
	f.inputs[fieldDate].SetValue(date)
	f.inputs[fieldClock].SetValue(clock)
	f.inputs[fieldCost].SetValue(cost)
}

func TestSubmitFormAddsAndSaves(t *testing.T) {
	m, store := newTestApp(t, nil, &fakeAdvisor{text: "tips"})
	m.mode = modeAdd
	m.form.fill("Louvre", "Rue de Rivoli", "2026-06-01", "10:30", "17.50")

	next, cmd := m.submitForm()
	got := next.(Application)

	assert.Equal(t, modeBrowse, got.mode)
	assert.Equal(t, 1, got.itin.Len())
	assert.Equal(t, 1, store.saves)
	require.NotNil(t, cmd)
}

func TestSubmitFormRejectsMissingTitle(t *testing.T) {
	m, store := newTestApp(t, nil, nil)
	m.mode = modeAdd
	m.form.fill("", "Rue de Rivoli", "2026-06-01", "10:30", "")

	next, _ := m.submitForm()
	got := next.(Application)

	assert.Equal(t, modeAdd, got.mode)
	assert.Zero(t, got.itin.Len())
	assert.Zero(t, store.saves)
	assert.ErrorIs(t, got.form.err, itinerary.ErrMissingTitle)
}

func TestEleventhAddResetsEverything(t *testing.T) {
	stops := make([]v1.Stop, itinerary.MaxStops)
	for i := range stops {
		stops[i] = stopFixture(t, fmt.Sprintf("stop %d", i), "2026-06-01", v1.StatusPlanned, i)
	}
	m, store := newTestApp(t, stops, &fakeAdvisor{text: "tips"})
	m.mode = modeAdd
	m.form.fill("one too many", "nowhere", "2026-06-02", "10:30", "")

	next, cmd := m.submitForm()
	got := next.(Application)

	assert.Equal(t, modeAlert, got.mode)
	assert.NotEmpty(t, got.alert)
	assert.Zero(t, got.itin.Len())
	assert.Equal(t, 1, store.clears)
	assert.Zero(t, store.saves)

	// the follow-up tips request short-circuits to the placeholder
	require.NotNil(t, cmd)
	msg := cmd()
	tips, ok := msg.(tipsMsg)
	require.True(t, ok)
	assert.Equal(t, gemini.Placeholder, tips.text)

	// any key acknowledges the alert
	after, _ := got.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	assert.Equal(t, modeBrowse, after.(Application).mode)
	assert.Empty(t, after.(Application).alert)
}

func TestToggleKeyPersists(t *testing.T) {
	stops := []v1.Stop{stopFixture(t, "louvre", "2026-06-01", v1.StatusPlanned, 0)}
	m, store := newTestApp(t, stops, nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := next.(Application)

	assert.Equal(t, v1.StatusVisited, got.itin.Stops()[0].Status)
	assert.Equal(t, 1, store.saves)

	next, _ = got.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, v1.StatusPlanned, next.(Application).itin.Stops()[0].Status)
}

func TestSkipAndDeleteKeys(t *testing.T) {
	stops := []v1.Stop{
		stopFixture(t, "a", "2026-06-01", v1.StatusPlanned, 0),
		stopFixture(t, "b", "2026-06-02", v1.StatusPlanned, 1),
	}
	m, store := newTestApp(t, stops, nil)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	got := next.(Application)
	assert.Equal(t, v1.StatusSkipped, got.itin.Sorted()[0].Status)

	next, _ = got.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	got = next.(Application)
	assert.Equal(t, 1, got.itin.Len())
	assert.Equal(t, "b", got.itin.Stops()[0].Title)
	assert.Equal(t, 1, got.itin.Stops()[0].Order)
	assert.Equal(t, 2, store.saves)
}

func TestClockTickStopsWhenQuitting(t *testing.T) {
	m, _ := newTestApp(t, nil, nil)

	_, cmd := m.Update(tickMsg{})
	assert.NotNil(t, cmd)

	m.quitting = true
	_, cmd = m.Update(tickMsg{})
	assert.Nil(t, cmd)
}

func TestStoreChangeReloads(t *testing.T) {
	m, store := newTestApp(t, nil, nil)
	store.stops = []v1.Stop{stopFixture(t, "external", "2026-06-01", v1.StatusPlanned, 0)}

	next, cmd := m.Update(storeChangedMsg{})
	assert.Equal(t, 1, next.(Application).itin.Len())
	// keeps watching
	assert.NotNil(t, cmd)
}

func TestFilterNarrowsVisibleStops(t *testing.T) {
	stops := []v1.Stop{
		stopFixture(t, "Louvre", "2026-06-01", v1.StatusPlanned, 0),
		stopFixture(t, "Bondi Beach", "2026-06-02", v1.StatusPlanned, 1),
	}
	m, _ := newTestApp(t, stops, nil)

	m.filter.SetValue("bondi")
	visible := m.visibleStops()
	require.Len(t, visible, 1)
	assert.Equal(t, "Bondi Beach", visible[0].Title)
}
