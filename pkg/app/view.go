package app

import (
	"fmt"
	"strings"

	"github.com/byxorna/stopover/pkg/text"
	v1 "github.com/byxorna/stopover/pkg/types/v1"
	"github.com/byxorna/stopover/pkg/ui"
	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/enescakir/emoji"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

const (
	minListWidth = 40
)

func (m Application) View() string {
	if m.quitting {
		return "Safe travels!\n"
	}

	switch m.mode {
	case modeAdd:
		return ui.AppStyle.Render(m.form.View())
	case modeTips:
		return ui.AppStyle.Render(m.headerView() + "\n\n" + m.tipsView())
	case modeAlert:
		return ui.AppStyle.Render(m.alertView())
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	b.WriteString(m.listView())
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return ui.AppStyle.Render(b.String())
}

func (m Application) headerView() string {
	// measure before styling; ANSI sequences would throw the math off
	rawTitle := "Stopover " + emoji.Airplane.String()
	rawClock := m.clock.Format("15:04:05")
	rawDate := m.clock.Format("Mon 02 Jan 2006")
	holiday := holidayNote(m.clock)

	rawRight := rawDate + "  " + rawClock
	if holiday != "" {
		rawRight = rawDate + " (" + holiday + ")  " + rawClock
	}

	gap := m.width - ui.AppStyle.GetHorizontalPadding() - runewidth.StringWidth(rawTitle) - runewidth.StringWidth(rawRight)
	if gap < 2 {
		gap = 2
	}

	right := ui.BrightGrayFg.Render(rawDate)
	if holiday != "" {
		right += " " + ui.HolidayFg.Render("("+holiday+")")
	}
	right += "  " + ui.ClockFg.Render(rawClock)

	return ui.GradientTitle("Stopover") + " " + emoji.Airplane.String() + strings.Repeat(" ", gap) + right
}

func (m Application) listView() string {
	visible := m.visibleStops()

	if m.mode == modeFilter || m.filter.Value() != "" {
		header := m.filter.View()
		if len(visible) == 0 {
			return header + "\n\n" + ui.DimNormalFg.Render("Nothing matches.")
		}
		return header + "\n\n" + m.stopsView(visible)
	}

	if len(visible) == 0 {
		return ui.DimNormalFg.Render("No stops yet. Press 'a' to plan your first one.")
	}
	return m.stopsView(visible)
}

func (m Application) stopsView(visible []v1.Stop) string {
	width := m.width - ui.AppStyle.GetHorizontalPadding()
	if width < minListWidth {
		width = minListWidth
	}
	truncateTo := uint(width - 6)

	var b strings.Builder
	for i, s := range visible {
		m.stopItemView(&b, i, s, truncateTo)
		if i < len(visible)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func (m Application) stopItemView(b *strings.Builder, index int, s v1.Stop, truncateTo uint) {
	var (
		gutter  string
		icon    = s.Icon()
		title   = truncate.StringWithTail(s.Title, truncateTo, text.Ellipsis)
		summary = text.RelativeTime(s.DateTime.Time)
	)

	if s.Cost > 0 {
		summary += " • " + m.Currency + humanize.Commaf(s.Cost)
	}
	if h := holidayNote(s.DateTime.Time); h != "" {
		summary += " • " + h
	}

	statusStyle := ui.PlannedFg
	switch s.Status {
	case v1.StatusVisited:
		statusStyle = ui.VisitedFg
	case v1.StatusSkipped:
		statusStyle = ui.SkippedFg
	}

	isSelected := index == m.cursor && m.mode != modeFilter

	if isSelected {
		gutter = ui.DullFuchsiaFg.Render(ui.VerticalLine)
		if needle := m.filter.Value(); needle != "" {
			st := termenv.Style{}.Foreground(termenv.ColorProfile().Color("#EE6FF8"))
			title = ui.StyleFilteredText(title, ui.MatchedIndexes(s.Title, needle), st, st.Underline())
		} else {
			title = ui.FuchsiaFg.Render(title)
		}
		summary = ui.DullFuchsiaFg.Render(summary)
	} else {
		gutter = " "
		title = statusStyle.Render(title)
		summary = ui.DimBrightGrayFg.Render(summary)
	}

	fmt.Fprintf(b, "%s %s %s\n", gutter, icon, title)
	fmt.Fprintf(b, "%s    %s", gutter, summary)
}

func (m Application) footerView() string {
	var b strings.Builder

	total := fmt.Sprintf("total %s%s", m.Currency, humanize.Commaf(m.itin.TotalCost()))
	parts := []string{ui.GreenFg.Render(total)}

	if next, ok := m.itin.Next(); ok {
		parts = append(parts, ui.NormalFg.Render("next: "+next.Title)+" "+ui.DimNormalFg.Render(text.RelativeTime(next.DateTime.Time)))
	}
	if visited := len(m.itin.Completed()); visited > 0 {
		parts = append(parts, ui.SemiDimGreenFg.Render(fmt.Sprintf("%d visited", visited)))
	}
	if skipped := len(m.itin.Skipped()); skipped > 0 {
		parts = append(parts, ui.BrightGrayFg.Render(fmt.Sprintf("%d skipped", skipped)))
	}
	if m.tipsPending {
		parts = append(parts, m.spinner.View()+ui.DimNormalFg.Render("fetching tips"))
	}

	b.WriteString(strings.Join(parts, ui.DimBrightGrayFg.Render("  •  ")))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	if m.err != nil {
		b.WriteString("\n" + ui.FaintRedFg.Render(m.err.Error()))
	}
	return b.String()
}

func (m Application) tipsView() string {
	width := m.width - ui.AppStyle.GetHorizontalPadding() - 4
	if width < minListWidth {
		width = minListWidth
	}

	title := ui.GradientTitle("Travel tips")

	if m.tipsPending {
		pending := m.spinner.View() + " fetching fresh tips for your itinerary..."
		return title + "\n" + ui.TipsStyle.Width(width+2).Render(pending) + "\n" + ui.HelpStyle.Render("esc back")
	}

	body := m.tips
	if body == "" {
		body = "No tips yet."
	}

	// the model tends to answer in markdown, so render it as such
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(width))
	if err == nil {
		if out, rerr := r.Render(body); rerr == nil {
			body = out
		}
	}

	return title + "\n" + ui.TipsStyle.Width(width+2).Render(body) + "\n" + ui.HelpStyle.Render("esc back")
}

func (m Application) alertView() string {
	msg := ui.RedFg.Render(m.alert) + "\n\n" + ui.HelpStyle.Render("press any key to continue")
	return ui.AlertStyle.Render(msg)
}
