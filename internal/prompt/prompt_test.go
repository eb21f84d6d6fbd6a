package prompt

import (
	"strings"
	"testing"
)

func TestBuild_Deterministic(t *testing.T) {
	a := Build("Annual Gala", "2024-03-15", ToneUpbeat)
	b := Build("Annual Gala", "2024-03-15", ToneUpbeat)
	if a != b {
		t.Errorf("Build is not deterministic:\n%s\n%s", a, b)
	}
	if a == "" {
		t.Error("Build returned an empty prompt")
	}
}

func TestBuild_ContainsInputs(t *testing.T) {
	tests := []struct {
		name  string
		event string
		date  string
		tone  Tone
	}{
		{"upbeat gala", "Annual Gala", "2024-03-15", ToneUpbeat},
		{"formal ball", "Charity Ball", "2025-12-01", ToneFormal},
		{"casual 5k", "Fun Run 5K", "2024-06-30", ToneCasual},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.event, tt.date, tt.tone)
			for _, want := range []string{tt.event, tt.date, string(tt.tone)} {
				if !strings.Contains(got, want) {
					t.Errorf("prompt %q does not contain %q", got, want)
				}
			}
		})
	}
}

func TestParseTone_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  Tone
	}{
		{"upbeat", ToneUpbeat},
		{"professional", ToneProfessional},
		{"casual", ToneCasual},
		{"formal", ToneFormal},
		{"friendly", ToneFriendly},
		{"Formal", ToneFormal},
		{"  FRIENDLY  ", ToneFriendly},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTone(tt.input)
			if err != nil {
				t.Fatalf("ParseTone(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTone_Invalid(t *testing.T) {
	for _, input := range []string{"", "sarcastic", "up beat", "formal!"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseTone(input); err == nil {
				t.Errorf("ParseTone(%q) accepted an invalid tone", input)
			}
		})
	}
}
