package ui

import (
	"strings"

	"github.com/byxorna/stopover/pkg/text"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

const (
	VerticalLine = "│"
)

var (
	NormalFg    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"})
	DimNormalFg = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"})

	BrightGrayFg    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#847A85", Dark: "#979797"})
	DimBrightGrayFg = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C2B8C2", Dark: "#4D4D4D"})

	GreenFg        = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	SemiDimGreenFg = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#35D79C", Dark: "#036B46"})

	FuchsiaFg     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"})
	DullFuchsiaFg = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#F793FF", Dark: "#AD58B4"})

	RedFg      = lipgloss.NewStyle().Foreground(lipgloss.Color("#ED567A"))
	FaintRedFg = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF6F91", Dark: "#C74665"})

	YellowFg = lipgloss.NewStyle().Foreground(lipgloss.Color("#ECFD65"))

	// Stop status colors.
	PlannedFg = FuchsiaFg
	VisitedFg = GreenFg
	SkippedFg = BrightGrayFg.Strikethrough(true)

	ClockFg   = YellowFg
	HolidayFg = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C"))

	HelpStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"})

	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	AlertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ED567A")).
			Padding(1, 3)

	TipsStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#AD58B4", Dark: "#AD58B4"}).
			Padding(0, 1)

	SpinnerStyle = FuchsiaFg
)

// GradientTitle colors a string rune by rune along a Luv blend, the way
// the old glow logo did it.
func GradientTitle(s string) string {
	from, _ := colorful.Hex("#F25D94")
	to, _ := colorful.Hex("#643AFF")

	runes := []rune(s)
	if len(runes) < 2 {
		return FuchsiaFg.Render(s)
	}

	b := strings.Builder{}
	for i, r := range runes {
		c := from.BlendLuv(to, float64(i)/float64(len(runes)-1))
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}

// StyleFilteredText renders haystack with the runes matched by the
// filter underlined.
func StyleFilteredText(haystack string, matchedIndexes []int, defaultStyle, matchedStyle termenv.Style) string {
	if len(matchedIndexes) == 0 {
		return defaultStyle.Styled(haystack)
	}

	matched := map[int]bool{}
	for _, mi := range matchedIndexes {
		matched[mi] = true
	}

	b := strings.Builder{}
	for i, r := range []rune(haystack) {
		if matched[i] {
			b.WriteString(matchedStyle.Styled(string(r)))
		} else {
			b.WriteString(defaultStyle.Styled(string(r)))
		}
	}
	return b.String()
}

// MatchedIndexes returns the rune indexes of haystack matched by needle,
// for use with StyleFilteredText.
func MatchedIndexes(haystack, needle string) []int {
	if needle == "" {
		return nil
	}
	normalized, err := text.Normalize(haystack)
	if err != nil {
		normalized = haystack
	}
	idx := text.MatchIndexes(needle, normalized)
	return idx
}
