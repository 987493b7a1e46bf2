package extractor

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"qmatch/models"
)

// Patterns for seller data embedded in the page: script-tag JSON
// fragments and inline data attributes. The page serializes its
// seller list under a handful of key spellings.
var (
	scriptPairRes = []*regexp.Regexp{
		regexp.MustCompile(`"[Ss]eller[Nn]ame"\s*:\s*"([^"]+)"[^}]*"[Pp]rice"\s*:\s*"?(\d+)`),
		regexp.MustCompile(`"[Ss]hop[Nn]ame"\s*:\s*"([^"]+)"[^}]*"[Ss]ell[Pp]rice"\s*:\s*"?(\d+)`),
		regexp.MustCompile(`"sellerNick"\s*:\s*"([^"]+)"[^}]*"goodsPrice"\s*:\s*"?(\d+)`),
	}
	dataAttrRe = regexp.MustCompile(`data-price="(\d+)"[^>]*data-seller="([^"]+)"`)

	goodsCodeRe = regexp.MustCompile(`(?i)goodscode=([A-Za-z0-9]+)`)
	goodsPathRe = regexp.MustCompile(`(?i)/g/([A-Za-z0-9]+)`)
)

// scriptCandidates mines seller/price pairs out of embedded script
// bodies and data attributes. Prices outside the plausible range are
// dropped here so they never reach the merge step.
func scriptCandidates(c *Classifier, content *PageContent) ([]models.Candidate, error) {
	doc, err := content.Doc()
	if err != nil {
		return nil, err
	}

	var candidates []models.Candidate
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		body := s.Text()
		for _, re := range scriptPairRes {
			for _, m := range re.FindAllStringSubmatch(body, -1) {
				price, ok := c.ParseAmount(m[2])
				if !ok {
					continue
				}
				name, ok := c.CleanName(m[1])
				if !ok {
					continue
				}
				candidates = append(candidates, models.Candidate{Name: name, Price: price})
			}
		}
	})

	for _, m := range dataAttrRe.FindAllStringSubmatch(content.HTML, -1) {
		price, ok := c.ParseAmount(m[1])
		if !ok {
			continue
		}
		name, ok := c.CleanName(m[2])
		if !ok {
			continue
		}
		candidates = append(candidates, models.Candidate{Name: name, Price: price})
	}

	return candidates, nil
}
