package text

import (
	"math"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	Ellipsis = "…"
)

var (
	transformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// RelativeTime renders a time relative to now, in either direction; trip
// stops are usually in the future. Far-away times fall back to an
// absolute format.
func RelativeTime(then time.Time) string {
	now := time.Now()
	d := now.Sub(then)
	if d < 0 {
		d = -d
	}
	if d < time.Minute {
		return "right about now"
	} else if d < humanize.Month {
		return humanize.CustomRelTime(then, now, "ago", "from now", magnitudes)
	}
	return then.Format("02 Jan 2006 15:04")
}

// Magnitudes for relative time.
var magnitudes = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "now", DivBy: time.Second},
	{D: 2 * time.Second, Format: "1 second %s", DivBy: 1},
	{D: time.Minute, Format: "%d seconds %s", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: humanize.Day, Format: "%d hours %s", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "1 day %s", DivBy: 1},
	{D: humanize.Week, Format: "%d days %s", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "1 week %s", DivBy: 1},
	{D: humanize.Month, Format: "%d weeks %s", DivBy: humanize.Week},
	{D: math.MaxInt64, Format: "a long while %s", DivBy: 1},
}

// Normalize strips diacritics so fuzzy matching ignores them.
func Normalize(in string) (string, error) {
	out, _, err := transform.String(transformer, in)
	return out, err
}

// MatchIndexes returns the character indexes of haystack matched by
// needle, or nil when nothing matches.
func MatchIndexes(needle, haystack string) []int {
	matches := fuzzy.Find(needle, []string{haystack})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}

// FilterIndexes fuzzy-matches needle against the haystacks and returns
// the indexes of matching entries, best match first. An empty needle
// matches everything, in order.
func FilterIndexes(needle string, haystacks []string) []int {
	if needle == "" {
		idx := make([]int, len(haystacks))
		for i := range haystacks {
			idx[i] = i
		}
		return idx
	}

	normalized := make([]string, len(haystacks))
	for i, h := range haystacks {
		n, err := Normalize(h)
		if err != nil {
			n = h
		}
		normalized[i] = n
	}

	matches := fuzzy.Find(needle, normalized)
	idx := make([]int, 0, len(matches))
	for _, m := range matches {
		idx = append(idx, m.Index)
	}
	return idx
}
