package querybuilder

import "strings"

// Formal/occasion vocabulary. A match re-weights lexical boosts toward
// title and description and steers the embedding input toward the formal
// sense of the query.
var formalVocabulary = []string{
	"wedding", "formal", "gala", "ceremony", "bridal", "tuxedo",
	"black tie", "black-tie", "prom", "cocktail party", "reception",
	"graduation", "evening wear", "dress shoes",
}

// Footwear vocabulary. Formal context plus footwear triggers the athletic
// exclusion below.
var footwearVocabulary = []string{
	"shoes", "shoe", "heels", "footwear", "loafers", "oxfords",
	"pumps", "sandals", "flats",
}

// athleticExclusions is the must-not vocabulary applied when formal and
// footwear vocabulary co-occur. This is a targeted precision fix for
// casual sneakers surfacing under formal footwear queries; it is a
// documented special case, not a general rule mechanism.
var athleticExclusions = []string{
	"sneakers", "running", "athletic", "trainers", "gym", "jogging", "sporty",
}

// formalContextWords augment the embedding input under formal context.
const formalContextWords = "formal elegant occasion dress"

func hasFormalContext(text string) bool {
	return containsAny(strings.ToLower(text), formalVocabulary)
}

func hasFootwearContext(text string) bool {
	return containsAny(strings.ToLower(text), footwearVocabulary)
}

func containsAny(text string, vocabulary []string) bool {
	for _, w := range vocabulary {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
