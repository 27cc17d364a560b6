// Package app is the single page of the program: the itinerary list,
// the add-stop form, the tips pane and the capacity alert, all one
// bubbletea model.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/byxorna/stopover/pkg/config"
	"github.com/byxorna/stopover/pkg/db"
	"github.com/byxorna/stopover/pkg/db/fs"
	"github.com/byxorna/stopover/pkg/itinerary"
	"github.com/byxorna/stopover/pkg/plugins/gemini"
	"github.com/byxorna/stopover/pkg/text"
	v1 "github.com/byxorna/stopover/pkg/types/v1"
	"github.com/byxorna/stopover/pkg/ui"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeTips
	modeFilter
	modeAlert
)

// Advisor produces free-form travel tips for a stop list. Satisfied by
// gemini.Client; tests swap in a fake.
type Advisor interface {
	RequestTips(ctx context.Context, stops []v1.Stop) (string, error)
}

type Application struct {
	*config.Config

	ctx     context.Context
	store   db.Store
	advisor Advisor

	itin itinerary.Itinerary

	mode    mode
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	form    form
	filter  textinput.Model

	tips        string
	tipsPending bool

	alert string

	clock    time.Time
	cursor   int
	width    int
	height   int
	quitting bool
	err      error
}

// NewFromConfigFile wires up the whole application from a config path.
// A missing config file falls back to defaults; a missing API key just
// means tips degrade to the fallback copy.
func NewFromConfigFile(ctx context.Context, path, apiKey string) (Application, error) {
	cfg, err := config.NewFromFile(path)
	if err != nil {
		return Application{}, fmt.Errorf("unable to load configuration: %w", err)
	}

	store, err := fs.New(cfg.Directory, true)
	if err != nil {
		return Application{}, fmt.Errorf("unable to open itinerary storage: %w", err)
	}

	var advisor Advisor
	if apiKey != "" {
		g, err := gemini.New(ctx, apiKey, cfg.Model, cfg.Language)
		if err != nil {
			log.Printf("travel tips disabled: %v", err)
		} else {
			advisor = g
		}
	}

	return New(ctx, cfg, store, advisor)
}

// New loads the itinerary once from the store and builds the model.
func New(ctx context.Context, cfg *config.Config, store db.Store, advisor Advisor) (Application, error) {
	stops, err := store.Load()
	if err != nil {
		return Application{}, fmt.Errorf("unable to load itinerary: %w", err)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.SpinnerStyle

	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter stops"

	m := Application{
		Config:  cfg,
		ctx:     ctx,
		store:   store,
		advisor: advisor,
		itin:    itinerary.New(stops),
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		form:    newForm(),
		filter:  filter,
		clock:   time.Now(),
	}
	m.tipsPending = m.itin.Len() > 0
	return m, nil
}

func (m Application) Init() tea.Cmd {
	return tea.Batch(
		clockTickCmd(),
		m.requestTips(m.itin.Stops()),
		waitForStoreCmd(m.store),
		m.spinner.Tick,
	)
}

func (m Application) Close() error {
	return m.store.Close()
}

func (m Application) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.clock = time.Time(msg)
		if m.quitting {
			return m, nil
		}
		return m, clockTickCmd()

	case spinner.TickMsg:
		if !m.tipsPending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tipsMsg:
		// No sequencing between overlapping requests; whatever lands
		// last is what we show.
		if msg.err != nil {
			log.Printf("tips request failed: %v", msg.err)
		}
		m.tips = msg.text
		m.tipsPending = false
		return m, nil

	case storeChangedMsg:
		stops, err := m.store.Load()
		if err != nil {
			m.err = err
			return m, waitForStoreCmd(m.store)
		}
		m.itin = itinerary.New(stops)
		m.clampCursor()
		return m, waitForStoreCmd(m.store)

	case errMsg:
		m.err = msg.err
		log.Printf("error: %v", msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Application) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeAlert:
		// blocking alert: any key acknowledges
		m.alert = ""
		m.mode = modeBrowse
		return m, nil

	case modeAdd:
		return m.updateForm(msg)

	case modeTips:
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Tips), key.Matches(msg, m.keys.Quit):
			m.mode = modeBrowse
		}
		return m, nil

	case modeFilter:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.filter.Reset()
			m.filter.Blur()
			m.mode = modeBrowse
			m.cursor = 0
			return m, nil
		case msg.String() == "enter":
			m.filter.Blur()
			m.mode = modeBrowse
			m.clampCursor()
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.clampCursor()
		return m, cmd
	}

	// browse
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visibleStops())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.form = newForm()
		return m, m.form.focusCmd()

	case key.Matches(msg, m.keys.Tips):
		m.mode = modeTips
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		m.cursor = 0
		return m, m.filter.Focus()

	case key.Matches(msg, m.keys.Back):
		if m.filter.Value() != "" {
			m.filter.Reset()
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if s, ok := m.selectedStop(); ok {
			m.itin = m.itin.ToggleStatus(s.ID)
			m = m.persist()
		}
		return m, nil

	case key.Matches(msg, m.keys.Skip):
		if s, ok := m.selectedStop(); ok {
			m.itin = m.itin.SetStatus(s.ID, v1.StatusSkipped)
			m = m.persist()
		}
		return m, nil

	case key.Matches(msg, m.keys.Plan):
		if s, ok := m.selectedStop(); ok {
			m.itin = m.itin.SetStatus(s.ID, v1.StatusPlanned)
			m = m.persist()
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if s, ok := m.selectedStop(); ok {
			m.itin = m.itin.Delete(s.ID)
			m = m.persist()
			m.clampCursor()
		}
		return m, nil

	case key.Matches(msg, m.keys.Map):
		if s, ok := m.selectedStop(); ok {
			return m, openMapCmd(s)
		}
		return m, nil
	}

	return m, nil
}

func (m Application) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeBrowse
		m.form = newForm()
		return m, nil
	}

	if msg.String() == "enter" && m.form.onLastField() {
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// submitForm runs the add operation, then the post-insert capacity
// check: the 11th stop goes in, the cap trips, and the whole itinerary
// (new stop included) is wiped and the user alerted.
func (m Application) submitForm() (tea.Model, tea.Cmd) {
	next, _, err := m.itin.Add(m.form.params())
	if err != nil {
		m.form.err = err
		return m, nil
	}

	m.form = newForm()
	m.mode = modeBrowse

	if next.OverCapacity() {
		m.itin = itinerary.New(nil)
		if err := m.store.Clear(); err != nil {
			m.err = err
			log.Printf("unable to clear itinerary: %v", err)
		}
		m.alert = fmt.Sprintf("Your itinerary hit the %d stop limit and has been reset.", itinerary.MaxStops)
		m.mode = modeAlert
		m.cursor = 0
		return m, m.requestTips(m.itin.Stops())
	}

	m.itin = next
	m = m.persist()
	if m.advisor != nil {
		m.tipsPending = true
	}
	return m, tea.Batch(m.requestTips(m.itin.Stops()), m.spinner.Tick)
}

func (m Application) persist() Application {
	if err := m.store.Save(m.itin.Stops()); err != nil {
		m.err = err
		log.Printf("unable to save itinerary: %v", err)
	}
	return m
}

// visibleStops is the chronologically sorted itinerary, narrowed by the
// fuzzy filter when one is active.
func (m Application) visibleStops() []v1.Stop {
	sorted := m.itin.Sorted()
	needle := m.filter.Value()
	if needle == "" {
		return sorted
	}

	haystacks := make([]string, len(sorted))
	for i := range sorted {
		haystacks[i] = sorted[i].FilterValue()
	}

	visible := []v1.Stop{}
	for _, i := range text.FilterIndexes(needle, haystacks) {
		visible = append(visible, sorted[i])
	}
	return visible
}

func (m Application) selectedStop() (v1.Stop, bool) {
	visible := m.visibleStops()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return v1.Stop{}, false
	}
	return visible[m.cursor], true
}

func (m *Application) clampCursor() {
	if n := len(m.visibleStops()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
