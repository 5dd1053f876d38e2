package semantics

import (
	"sort"
	"strings"
)

// loveLanguageOrder is the tie-break order for love-language ranking. It is a
// behavioral contract: changing it changes compiled text, which changes
// fingerprints and silently invalidates every cached embedding.
var loveLanguageOrder = []struct {
	Key   string
	Label string
}{
	{"words", "words of affirmation"},
	{"time", "quality time"},
	{"gifts", "receiving gifts"},
	{"acts", "acts of service"},
	{"touch", "physical touch"},
}

// midpoint adjectives, one per scale, at the 0-10 midpoint of 5.
type scaleAdjective struct {
	High string
	Low  string
}

var (
	sociabilityAdjective     = scaleAdjective{High: "extraverted", Low: "introverted"}
	spontaneityAdjective     = scaleAdjective{High: "spontaneous", Low: "methodical"}
	adventurousnessAdjective = scaleAdjective{High: "adventurous", Low: "cautious"}
)

// CompileProfileText renders a ProfileSnapshot into the canonical semantic
// profile string. Pure and total: absent fields are omitted, never defaulted.
// Section order is fixed; the fingerprint is computed over this exact text,
// so reordering sections without bumping FingerprintVersion falsely
// invalidates (or worse, falsely preserves) cached embeddings.
func CompileProfileText(snap ProfileSnapshot) string {
	var parts []string

	if snap.Bio != "" {
		parts = append(parts, "Bio: "+snap.Bio)
	}
	if snap.Interests != "" {
		parts = append(parts, "Interests: "+snap.Interests)
	}
	if snap.Occupation != "" {
		parts = append(parts, "Occupation: "+snap.Occupation)
	}
	if snap.Education != "" {
		parts = append(parts, "Education: "+snap.Education)
	}
	if snap.Drinking != "" {
		parts = append(parts, "Drinking: "+snap.Drinking)
	}
	if snap.Smoking != "" {
		parts = append(parts, "Smoking: "+snap.Smoking)
	}
	if snap.Children != "" {
		parts = append(parts, "Children: "+snap.Children)
	}

	if p := snap.Psych; p != nil {
		var adjectives []string
		if p.Sociability != nil {
			adjectives = append(adjectives, pickAdjective(*p.Sociability, sociabilityAdjective))
		}
		if p.Spontaneity != nil {
			adjectives = append(adjectives, pickAdjective(*p.Spontaneity, spontaneityAdjective))
		}
		if p.Adventurousness != nil {
			adjectives = append(adjectives, pickAdjective(*p.Adventurousness, adventurousnessAdjective))
		}
		if len(adjectives) > 0 {
			parts = append(parts, "Personality: "+strings.Join(adjectives, ", "))
		}

		if p.RelationshipGoal != "" {
			parts = append(parts, "Looking for: "+p.RelationshipGoal)
		}
		if p.ConflictStyle != "" {
			parts = append(parts, "Conflict style: "+p.ConflictStyle)
		}
		if p.CommunicationStyle != "" {
			parts = append(parts, "Communication style: "+p.CommunicationStyle)
		}

		primary, secondary := rankLoveLanguages(p.LoveLanguages)
		if primary != "" {
			parts = append(parts, "Primary love language: "+primary)
		}
		if secondary != "" {
			parts = append(parts, "Secondary love language: "+secondary)
		}
	}

	for _, answer := range snap.Answers {
		if answer.Label != "" && answer.Tag != "" {
			parts = append(parts, answer.Tag+": "+answer.Label)
		}
	}

	if len(snap.ExistingTags) > 0 {
		parts = append(parts, "Tags: "+strings.Join(snap.ExistingTags, ", "))
	}

	return strings.Join(parts, ". ")
}

func pickAdjective(score float64, adj scaleAdjective) string {
	if score > 5 {
		return adj.High
	}
	return adj.Low
}

// rankLoveLanguages returns the top-two love-language labels by score, ties
// broken by the loveLanguageOrder source order. Languages scoring zero (or
// missing) are never emitted.
func rankLoveLanguages(scores map[string]float64) (primary, secondary string) {
	if len(scores) == 0 {
		return "", ""
	}

	type ranked struct {
		sourceIdx int
		label     string
		score     float64
	}
	var entries []ranked
	for i, ll := range loveLanguageOrder {
		if score, ok := scores[ll.Key]; ok && score > 0 {
			entries = append(entries, ranked{sourceIdx: i, label: ll.Label, score: score})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].sourceIdx < entries[j].sourceIdx
	})

	if len(entries) > 0 {
		primary = entries[0].label
	}
	if len(entries) > 1 {
		secondary = entries[1].label
	}
	return primary, secondary
}
