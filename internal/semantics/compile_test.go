package semantics

import (
	"strings"
	"testing"
)

func f(v float64) *float64 { return &v }

func TestCompileProfileTextBioOnly(t *testing.T) {
	snap := ProfileSnapshot{Bio: "I like quiet mornings"}
	got := CompileProfileText(snap)
	if got != "Bio: I like quiet mornings" {
		t.Fatalf("CompileProfileText(bio-only)=%q, want single Bio segment", got)
	}
}

func TestCompileProfileTextEmptySnapshot(t *testing.T) {
	if got := CompileProfileText(ProfileSnapshot{}); got != "" {
		t.Fatalf("CompileProfileText(empty)=%q, want empty string", got)
	}
}

func TestCompileProfileTextSectionOrder(t *testing.T) {
	snap := ProfileSnapshot{
		Bio:        "bio text",
		Interests:  "climbing",
		Occupation: "nurse",
		Education:  "bachelors",
		Drinking:   "socially",
		Smoking:    "never",
		Children:   "wants",
		Psych: &PsychSnapshot{
			Sociability:        f(8),
			Spontaneity:        f(2),
			Adventurousness:    f(6),
			RelationshipGoal:   "long_term",
			ConflictStyle:      "collaborative",
			CommunicationStyle: "direct",
			LoveLanguages:      map[string]float64{"words": 3, "time": 7, "gifts": 0, "acts": 7, "touch": 1},
		},
		Answers: []AnswerSnapshot{
			{Value: "yes", Label: "Loves dogs", Tag: "pets"},
			{Value: "no", Label: "", Tag: "gym"}, // no label: omitted
		},
		ExistingTags: []string{"foodie", "planner"},
	}

	got := CompileProfileText(snap)
	want := strings.Join([]string{
		"Bio: bio text",
		"Interests: climbing",
		"Occupation: nurse",
		"Education: bachelors",
		"Drinking: socially",
		"Smoking: never",
		"Children: wants",
		"Personality: extraverted, methodical, adventurous",
		"Looking for: long_term",
		"Conflict style: collaborative",
		"Communication style: direct",
		"Primary love language: quality time",
		"Secondary love language: acts of service",
		"pets: Loves dogs",
		"Tags: foodie, planner",
	}, ". ")
	if got != want {
		t.Fatalf("CompileProfileText mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestCompileProfileTextAdjectiveMidpoint(t *testing.T) {
	// Exactly 5 sits on the low side of the midpoint rule.
	snap := ProfileSnapshot{Psych: &PsychSnapshot{Sociability: f(5)}}
	got := CompileProfileText(snap)
	if got != "Personality: introverted" {
		t.Fatalf("CompileProfileText(sociability=5)=%q, want introverted", got)
	}
}

func TestRankLoveLanguages(t *testing.T) {
	cases := []struct {
		name          string
		scores        map[string]float64
		wantPrimary   string
		wantSecondary string
	}{
		{
			name:          "distinct_scores",
			scores:        map[string]float64{"words": 1, "time": 9, "gifts": 4, "acts": 2, "touch": 3},
			wantPrimary:   "quality time",
			wantSecondary: "receiving gifts",
		},
		{
			name:          "tie_broken_by_source_order",
			scores:        map[string]float64{"words": 5, "time": 5, "gifts": 5, "acts": 5, "touch": 5},
			wantPrimary:   "words of affirmation",
			wantSecondary: "quality time",
		},
		{
			name:          "zero_scores_omitted",
			scores:        map[string]float64{"words": 0, "time": 0, "gifts": 0, "acts": 4, "touch": 0},
			wantPrimary:   "acts of service",
			wantSecondary: "",
		},
		{
			name:          "empty",
			scores:        nil,
			wantPrimary:   "",
			wantSecondary: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			primary, secondary := rankLoveLanguages(tc.scores)
			if primary != tc.wantPrimary || secondary != tc.wantSecondary {
				t.Fatalf("rankLoveLanguages(%v)=(%q, %q), want (%q, %q)",
					tc.scores, primary, secondary, tc.wantPrimary, tc.wantSecondary)
			}
		})
	}
}

func TestCompileProfileTextDeterministic(t *testing.T) {
	snap := ProfileSnapshot{
		Bio: "same bio",
		Psych: &PsychSnapshot{
			LoveLanguages: map[string]float64{"words": 2, "time": 8, "gifts": 1, "acts": 5, "touch": 5},
		},
	}
	first := CompileProfileText(snap)
	for i := 0; i < 50; i++ {
		if got := CompileProfileText(snap); got != first {
			t.Fatalf("CompileProfileText not deterministic on run %d: %q vs %q", i, got, first)
		}
	}
}
