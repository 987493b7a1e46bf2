package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"qmatch/models"
)

const (
	// Containers with more children than this are page-level layout,
	// not individual seller rows.
	maxElementChildren = 12
	// Seller rows are short fragments; longer text means the element
	// wraps a whole region.
	maxElementTextLen = 220
)

// domContainerSelector matches the generic container types a seller
// row may live in.
const domContainerSelector = "li, tr, section, div"

// domCandidates scans generic DOM containers for seller rows. An
// element qualifies when it is small enough, carries an in-range
// price, and leaves a plausible seller name after the price match and
// all noise vocabulary are deleted from its text.
func domCandidates(c *Classifier, content *PageContent) ([]models.Candidate, error) {
	doc, err := content.Doc()
	if err != nil {
		return nil, err
	}

	var candidates []models.Candidate
	doc.Find(domContainerSelector).Each(func(_ int, s *goquery.Selection) {
		if s.Children().Length() > maxElementChildren {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text == "" || len(text) > maxElementTextLen {
			return
		}

		price, matched, ok := c.FindPrice(text)
		if !ok {
			return
		}

		residual := strings.Replace(text, matched, " ", 1)
		residual = collapseWhitespace(c.StripNoise(residual))
		name, ok := c.CleanName(residual)
		if !ok {
			return
		}

		candidates = append(candidates, models.Candidate{
			Name:     name,
			Price:    price,
			ItemCode: itemCodeFromLinks(s),
		})
	})

	return candidates, nil
}

// itemCodeFromLinks pulls a goods code out of the element's links.
func itemCodeFromLinks(s *goquery.Selection) string {
	code := ""
	s.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if m := goodsCodeRe.FindStringSubmatch(href); m != nil {
			code = m[1]
			return false
		}
		if m := goodsPathRe.FindStringSubmatch(href); m != nil {
			code = m[1]
			return false
		}
		return true
	})
	return code
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
