package semantics

import (
	"fmt"
	"strings"
)

// MaxTags caps the derived tag set.
const MaxTags = 20

// bioKeywordTags is scanned in order against the lower-cased bio and
// interests text. The order is a behavioral contract (it decides tag priority
// when the cap truncates), so it is an explicit slice rather than a map.
var bioKeywordTags = []struct {
	Tag      string
	Keywords []string
}{
	{"traveler", []string{"travel", "backpack", "wanderlust"}},
	{"fitness-enthusiast", []string{"fitness", "gym", "workout", "running"}},
	{"music-lover", []string{"music", "concert", "vinyl"}},
	{"nature-lover", []string{"nature", "hiking", "outdoor", "camping"}},
	{"foodie", []string{"food", "cooking", "baking", "restaurant"}},
	{"bookworm", []string{"reading", "books", "literature"}},
	{"film-buff", []string{"film", "movies", "cinema"}},
}

// relationshipGoalTags maps the categorical relationship goal onto a tag.
var relationshipGoalTags = map[string]string{
	"marriage":  "marriage-minded",
	"long_term": "serious-dater",
	"casual":    "casual-dater",
	"friends":   "friendship-first",
}

// DeriveTags extracts a bounded, deduplicated, order-preserving tag set from
// the snapshot. Independent of the embedding; used for filtering and
// human-readable explanation. No failure mode: less data just means fewer
// tags, down to none.
func DeriveTags(snap ProfileSnapshot) []string {
	var tags []string

	if p := snap.Psych; p != nil {
		if p.Sociability != nil {
			if *p.Sociability > 7 {
				tags = append(tags, "social-butterfly")
			} else if *p.Sociability < 4 {
				tags = append(tags, "homebody")
			}
		}
		if p.Adventurousness != nil && *p.Adventurousness > 7 {
			tags = append(tags, "adventurer")
		}
		if p.Spontaneity != nil {
			if *p.Spontaneity > 7 {
				tags = append(tags, "spontaneous")
			} else if *p.Spontaneity < 4 {
				tags = append(tags, "planner")
			}
		}
		if goalTag, ok := relationshipGoalTags[p.RelationshipGoal]; ok {
			tags = append(tags, goalTag)
		}
		if p.FamilyImportance != nil && *p.FamilyImportance > 7 {
			tags = append(tags, "family-oriented")
		}
		if p.CareerImportance != nil && *p.CareerImportance > 7 {
			tags = append(tags, "career-driven")
		}
	}

	bioText := strings.ToLower(snap.Bio + " " + snap.Interests)
	for _, entry := range bioKeywordTags {
		for _, keyword := range entry.Keywords {
			if strings.Contains(bioText, keyword) {
				tags = append(tags, entry.Tag)
				break
			}
		}
	}

	for _, answer := range snap.Answers {
		if answer.Tag != "" {
			tags = append(tags, fmt.Sprintf("%s-%s", answer.Tag, answer.Value))
		}
	}

	return dedupeAndCap(tags, MaxTags)
}

func dedupeAndCap(tags []string, limit int) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
		if len(out) == limit {
			break
		}
	}
	return out
}
