// Package prompt builds the campaign generation prompt sent to the
// chat-completions API.
package prompt

import (
	"fmt"
	"strings"
)

// Tone is the writing register requested from the model. Only the values
// returned by Tones are accepted.
type Tone string

const (
	ToneUpbeat       Tone = "upbeat"
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneFormal       Tone = "formal"
	ToneFriendly     Tone = "friendly"
)

// Tones returns every accepted tone, in help-text order.
func Tones() []Tone {
	return []Tone{ToneUpbeat, ToneProfessional, ToneCasual, ToneFormal, ToneFriendly}
}

// ToneList renders the accepted tones as a comma-separated string for help
// and error text.
func ToneList() string {
	all := Tones()
	parts := make([]string, len(all))
	for i, t := range all {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// ParseTone validates a user-supplied tone label. Matching is
// case-insensitive; the returned Tone is the canonical lowercase form.
func ParseTone(s string) (Tone, error) {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tones() {
		if t == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("invalid tone %q (choose from: %s)", s, ToneList())
}

// Build renders the generation prompt. Pure: identical inputs always produce
// the identical string.
func Build(event, date string, tone Tone) string {
	return fmt.Sprintf(
		"Write five fundraising emails and four social captions for the %s on %s in a %s tone.",
		event, date, tone,
	)
}
