package extractor

import (
	"strconv"
	"strings"

	"qmatch/models"
)

// sectionMarkers locate the seller list inside the full page text.
// Tried in priority order; the first one present wins. When none is
// found the whole text is scanned.
var sectionMarkers = []string{
	"販売ショップ一覧",
	"販売店一覧",
	"価格を比較",
	"ショップリスト",
}

// officialMarker opens the narrower official-shop section that
// precedes the general seller list.
const officialMarker = "公式ショップ"

// scanLines folds classified lines into candidates with a single
// current-name slot. A price line flushes the held name (if any) and
// clears the slot; a name line overwrites the slot; noise and
// ambiguous lines leave it untouched. The design assumes a seller
// name immediately precedes its price line, tolerating interleaved
// noise but never a second name.
func scanLines(c *Classifier, lines []string) []models.Candidate {
	var candidates []models.Candidate
	held := ""
	hasName := false

	for _, line := range lines {
		token := c.Classify(line)
		switch token.Kind {
		case TokenPrice:
			if hasName {
				candidates = append(candidates, models.Candidate{
					Name:  held,
					Price: token.Price,
				})
				held = ""
				hasName = false
			}
		case TokenName:
			held = token.Name
			hasName = true
		default:
			// noise or ambiguous: slot unchanged
		}
	}

	return candidates
}

// textSection cuts the seller-list section out of the page text. The
// section runs from the first marker found to the end of the text;
// without a marker the whole text is returned.
func textSection(text string) string {
	for _, marker := range sectionMarkers {
		if idx := strings.Index(text, marker); idx >= 0 {
			return text[idx+len(marker):]
		}
	}
	return text
}

// officialSection cuts the official-shop section: the region between
// the official marker and the first general section marker after it.
func officialSection(text string) (string, bool) {
	start := strings.Index(text, officialMarker)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(officialMarker):]
	end := len(rest)
	for _, marker := range sectionMarkers {
		if idx := strings.Index(rest, marker); idx >= 0 && idx < end {
			end = idx
		}
	}
	return rest[:end], true
}

// textSectionCandidates runs the single-slot scan over the general
// seller section, then over the official section, merging official
// results that are not already present by exact name and price.
func textSectionCandidates(c *Classifier, content *PageContent) []models.Candidate {
	candidates := scanLines(c, splitLines(textSection(content.Text)))

	if section, ok := officialSection(content.Text); ok {
		seen := make(map[string]bool, len(candidates))
		for _, cand := range candidates {
			seen[offerKey(cand)] = true
		}
		for _, cand := range scanLines(c, splitLines(section)) {
			if !seen[offerKey(cand)] {
				candidates = append(candidates, cand)
				seen[offerKey(cand)] = true
			}
		}
	}

	return candidates
}

// wholeBodyCandidates is the final fallback: the same single-slot
// scan applied to the entire page text with no section bound.
func wholeBodyCandidates(c *Classifier, content *PageContent) []models.Candidate {
	return scanLines(c, content.Lines())
}

func offerKey(cand models.Candidate) string {
	return cand.Name + "\x00" + strconv.Itoa(cand.Price)
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
