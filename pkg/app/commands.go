package app

import (
	"context"
	"os/exec"
	goruntime "runtime"
	"time"

	"github.com/byxorna/stopover/pkg/db"
	"github.com/byxorna/stopover/pkg/plugins/gemini"
	v1 "github.com/byxorna/stopover/pkg/types/v1"
	tea "github.com/charmbracelet/bubbletea"
)

const tipsTimeout = 30 * time.Second

type tickMsg time.Time

type storeChangedMsg struct{}

type tipsMsg struct {
	text string
	err  error
}

type errMsg struct{ err error }

func clockTickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// requestTips fires an advisory request for the given stops. Fire and
// forget: nothing waits on it, overlapping requests are not deduplicated,
// and failure degrades to fixed fallback copy. An empty itinerary short
// circuits to the placeholder without touching the gateway at all.
func (m Application) requestTips(stops []v1.Stop) tea.Cmd {
	if len(stops) == 0 {
		return func() tea.Msg {
			return tipsMsg{text: gemini.Placeholder}
		}
	}

	advisor := m.advisor
	parent := m.ctx
	if parent == nil {
		parent = context.Background()
	}

	return func() tea.Msg {
		if advisor == nil {
			return tipsMsg{text: gemini.Fallback}
		}

		ctx, cancel := context.WithTimeout(parent, tipsTimeout)
		defer cancel()

		text, err := advisor.RequestTips(ctx, stops)
		if err != nil {
			return tipsMsg{text: gemini.Fallback, err: err}
		}
		return tipsMsg{text: text}
	}
}

// waitForStoreCmd delivers the next external change to the persisted
// itinerary. Re-issued after every delivery.
func waitForStoreCmd(store db.Store) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-store.Events(); !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// openMapCmd hands the stop's map link to the OS. We only ever construct
// the URL; the browser does the rest.
func openMapCmd(s v1.Stop) tea.Cmd {
	url := s.MapURL()
	return func() tea.Msg {
		opener := "xdg-open"
		if goruntime.GOOS == "darwin" {
			opener = "open"
		}
		if err := exec.Command(opener, url).Start(); err != nil {
			return errMsg{err}
		}
		return nil
	}
}
