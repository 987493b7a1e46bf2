package extractor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"qmatch/models"
)

func TestDomCandidatesExtractsSellerRows(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	html := `<html><body><ul>
		<li><a href="/g/ABC123">ShopA</a> 1,200円</li>
		<li><a href="/g/XYZ789">ShopB</a> 2,000円</li>
	</ul></body></html>`

	candidates, err := domCandidates(c, NewPageContent("", html))
	assert.NoError(t, err)
	assert.Equal(t, []models.Candidate{
		{Name: "ShopA", Price: 1200, ItemCode: "ABC123"},
		{Name: "ShopB", Price: 2000, ItemCode: "XYZ789"},
	}, candidates)
}

func TestDomCandidatesGoodsCodeQueryParam(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	html := `<html><body><ul>
		<li><a href="https://example.com/item?goodscode=GD42">ShopA</a> 980円</li>
	</ul></body></html>`

	candidates, err := domCandidates(c, NewPageContent("", html))
	assert.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, "GD42", candidates[0].ItemCode)
}

func TestDomCandidatesSkipsNoiseOnlyRows(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	// After deleting the price match and the noise vocabulary nothing
	// plausible remains.
	html := `<html><body><ul>
		<li>送料無料 クーポン 1,200円</li>
	</ul></body></html>`

	candidates, err := domCandidates(c, NewPageContent("", html))
	assert.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestDomCandidatesSkipsOversizedElements(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	long := strings.Repeat("とても長い商品説明テキスト ", 30)
	html := `<html><body><ul><li>ShopA ` + long + ` 1,200円</li></ul></body></html>`

	candidates, err := domCandidates(c, NewPageContent("", html))
	assert.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestDomCandidatesSkipsLayoutContainers(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	var rows []string
	for i := 0; i < 15; i++ {
		rows = append(rows, "<span>item</span>")
	}
	html := `<html><body><div>` + strings.Join(rows, "") + ` ShopA 1,200円</div></body></html>`

	candidates, err := domCandidates(c, NewPageContent("", html))
	assert.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestDomCandidatesSkipsRowsWithoutPrice(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	html := `<html><body><ul><li>ShopA</li></ul></body></html>`

	candidates, err := domCandidates(c, NewPageContent("", html))
	assert.NoError(t, err)
	assert.Empty(t, candidates)
}
