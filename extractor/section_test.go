package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"qmatch/models"
)

func TestScanLinesPairsNameWithNextPrice(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	lines := []string{
		"ShopA",
		"メガポ時", // promotional chrome between name and price
		"1,200円",
		"ShopB",
		"2,000円",
	}

	candidates := scanLines(c, lines)
	assert.Equal(t, []models.Candidate{
		{Name: "ShopA", Price: 1200},
		{Name: "ShopB", Price: 2000},
	}, candidates)
}

func TestScanLinesPriceWithoutNameIsDropped(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	candidates := scanLines(c, []string{"1,200円", "ShopA", "2,000円"})
	assert.Equal(t, []models.Candidate{{Name: "ShopA", Price: 2000}}, candidates)
}

func TestScanLinesSecondNameOverwritesFirst(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	candidates := scanLines(c, []string{"ShopA", "ShopB", "1,200円"})
	assert.Equal(t, []models.Candidate{{Name: "ShopB", Price: 1200}}, candidates)
}

func TestScanLinesPriceFlushClearsSlot(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	// The second price has no name of its own and produces nothing.
	candidates := scanLines(c, []string{"ShopA", "1,200円", "1,500円"})
	assert.Equal(t, []models.Candidate{{Name: "ShopA", Price: 1200}}, candidates)
}

func TestTextSectionStartsAtMarker(t *testing.T) {
	text := "ヘッダー\nNoiseShop\n900円\n販売ショップ一覧\nShopA\n1,200円\n"

	section := textSection(text)
	assert.NotContains(t, section, "NoiseShop")
	assert.Contains(t, section, "ShopA")
}

func TestTextSectionFallsBackToWholeText(t *testing.T) {
	text := "ShopA\n1,200円\n"
	assert.Equal(t, text, textSection(text))
}

func TestTextSectionCandidatesMergesOfficialSection(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	text := "ページヘッダー\n" +
		"公式ショップ\n" +
		"【公式】ShopX\n" +
		"1,000円\n" +
		"販売ショップ一覧\n" +
		"ShopA\n" +
		"1,200円\n"

	candidates := textSectionCandidates(c, NewPageContent(text, ""))
	assert.ElementsMatch(t, []models.Candidate{
		{Name: "ShopA", Price: 1200},
		{Name: "ShopX", Price: 1000},
	}, candidates)
}

func TestTextSectionCandidatesOfficialDuplicateNotRepeated(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	text := "公式ショップ\n" +
		"ShopA\n" +
		"1,200円\n" +
		"販売ショップ一覧\n" +
		"ShopA\n" +
		"1,200円\n"

	candidates := textSectionCandidates(c, NewPageContent(text, ""))
	assert.Equal(t, []models.Candidate{{Name: "ShopA", Price: 1200}}, candidates)
}

func TestWholeBodyCandidates(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	content := NewPageContent("前置き\nShopA\n1,200円\n後書き\n", "")
	candidates := wholeBodyCandidates(c, content)
	assert.Equal(t, []models.Candidate{{Name: "ShopA", Price: 1200}}, candidates)
}
