package shopping

import (
	"regexp"
	"strings"
)

const maxKeyLength = 100

// Leading amounts: integers, decimals (both separators), fractions,
// ranges and unicode fraction glyphs, e.g. "200", "1,5", "1/2", "2-3".
var quantityPattern = regexp.MustCompile(`^[0-9¼½¾⅓⅔⅛]+(?:[.,/][0-9]+)?(?:\s*[-–]\s*[0-9]+(?:[.,/][0-9]+)?)?\s*[x×]?\s*`)

// Unit tokens that may follow an amount, German first, English
// equivalents after. Matched as whole words only.
var unitTokens = map[string]struct{}{
	"g": {}, "gr": {}, "gramm": {}, "kg": {}, "mg": {},
	"ml": {}, "l": {}, "liter": {},
	"el": {}, "tl": {}, "esslöffel": {}, "teelöffel": {},
	"prise": {}, "prisen": {}, "msp": {},
	"bund": {}, "dose": {}, "dosen": {}, "glas": {}, "gläser": {},
	"packung": {}, "packungen": {}, "päckchen": {}, "pck": {}, "pkt": {},
	"becher": {}, "tasse": {}, "tassen": {}, "handvoll": {},
	"stück": {}, "stk": {}, "scheibe": {}, "scheiben": {},
	"zehe": {}, "zehen": {}, "würfel": {}, "blatt": {}, "blätter": {},
	"cup": {}, "cups": {}, "tbsp": {}, "tsp": {},
	"oz": {}, "lb": {}, "lbs": {}, "pound": {}, "ounce": {},
	"gram": {}, "grams": {}, "kilogram": {}, "litre": {},
	"piece": {}, "pieces": {}, "clove": {}, "cloves": {},
	"can": {}, "cans": {}, "slice": {}, "slices": {},
}

// Hedging noise that carries no meaning for deduplication.
var fillerPrefixes = []string{
	"ca.", "ca ", "etwa ", "evtl.", "evtl ", "ggf.", "ggf ",
	"optional:", "optional ", "nach belieben", "nach bedarf", "nach geschmack",
	"approximately ", "approx.", "approx ", "about ", "roughly ",
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// Normalize maps a raw ingredient line onto its deduplication key:
// lower-cased, quantities, units and hedging prefixes stripped,
// whitespace collapsed, truncated to 100 runes. It is a pure function
// and never fails; input that consists only of amounts and units
// normalizes to the empty string, which the Aggregator excludes.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))

	// Strip filler prefixes before amounts: "ca. 200g Mehl".
	s = stripFiller(s)

	// Amounts and units can repeat ("2 x 400 g dose tomaten"), so keep
	// stripping from the front until the line stabilizes.
	for {
		before := s
		s = strings.TrimLeft(s, " -,.")
		s = quantityPattern.ReplaceAllString(s, "")
		s = stripLeadingUnit(s)
		s = stripFiller(s)
		if s == before {
			break
		}
	}

	s = whitespacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	return truncateRunes(s, maxKeyLength)
}

func stripFiller(s string) string {
	for changed := true; changed; {
		changed = false
		for _, prefix := range fillerPrefixes {
			if strings.HasPrefix(s, prefix) {
				s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
				changed = true
			}
		}
	}
	return s
}

func stripLeadingUnit(s string) string {
	word := s
	rest := ""
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		word, rest = s[:i], s[i+1:]
	}
	word = strings.TrimSuffix(word, ".")
	if _, ok := unitTokens[word]; ok {
		return strings.TrimSpace(rest)
	}
	return s
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
