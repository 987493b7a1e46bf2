package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

// TokenKind is the classification of a text fragment.
type TokenKind int

const (
	// TokenSkip marks an ambiguous fragment: neither price, noise nor
	// a plausible name. Line scans ignore it without touching state.
	TokenSkip TokenKind = iota
	// TokenPrice is a currency-marked numeral within the plausible
	// retail range.
	TokenPrice
	// TokenNoise is layout or promotional chrome.
	TokenNoise
	// TokenName is a seller name candidate.
	TokenName
)

// Token is the result of classifying one fragment.
type Token struct {
	Kind  TokenKind
	Price int
	Name  string
}

var (
	yenSuffixRe = regexp.MustCompile(`([0-9][0-9,]*)\s*円`)
	yenPrefixRe = regexp.MustCompile(`[¥￥]\s*([0-9][0-9,]*)`)
)

// DefaultDenylist is the layout and promotional vocabulary of the
// Qoo10 catalog page: shipping badges, point and coupon labels,
// review-count phrases and navigation chrome. Matching is by
// substring.
var DefaultDenylist = []string{
	"送料無料", "送料", "配送料",
	"メガ割", "メガポ", "タイムセール", "共同購入", "今日の特価",
	"クーポン", "ポイント", "Qポイント", "キャッシュバック",
	"レビュー", "件)", "評価",
	"カートに入れる", "カート", "お気に入り", "ほしい物リスト",
	"ランキング", "カテゴリ", "検索結果", "もっと見る", "ショップへ",
	"翌日発送", "あす着", "発送日", "お届け",
	"販売価格", "割引率", "広告",
}

// defaultOfficialPrefixes are markers stripped from a name candidate
// before its length is measured.
var defaultOfficialPrefixes = []string{"【公式】", "公式ショップ", "公式"}

// ClassifierConfig controls token classification. Zero-valued fields
// fall back to defaults.
type ClassifierConfig struct {
	MinPrice         int // lowest plausible price, inclusive (default 100)
	MaxPrice         int // highest plausible price, inclusive (default 500000)
	MinNameLen       int // inclusive, in runes (default 2)
	MaxNameLen       int // inclusive, in runes (default 50)
	Denylist         []string
	OfficialPrefixes []string
}

// Classifier decides whether a text fragment is a price token, a
// noise token or a seller-name candidate. It is pure: classification
// depends only on the fragment and the configuration.
type Classifier struct {
	minPrice         int
	maxPrice         int
	minNameLen       int
	maxNameLen       int
	denylist         []string
	officialPrefixes []string
}

// NewClassifier builds a classifier from cfg, applying defaults for
// unset fields.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	c := &Classifier{
		minPrice:         cfg.MinPrice,
		maxPrice:         cfg.MaxPrice,
		minNameLen:       cfg.MinNameLen,
		maxNameLen:       cfg.MaxNameLen,
		denylist:         cfg.Denylist,
		officialPrefixes: cfg.OfficialPrefixes,
	}
	if c.minPrice <= 0 {
		c.minPrice = 100
	}
	if c.maxPrice <= 0 {
		c.maxPrice = 500000
	}
	if c.minNameLen <= 0 {
		c.minNameLen = 2
	}
	if c.maxNameLen <= 0 {
		c.maxNameLen = 50
	}
	if c.denylist == nil {
		c.denylist = DefaultDenylist
	}
	if c.officialPrefixes == nil {
		c.officialPrefixes = defaultOfficialPrefixes
	}
	return c
}

// Classify assigns a token kind to one fragment. A fragment carrying
// a currency-marked numeral outside the plausible range is ambiguous
// and classified as TokenSkip, never as a name.
func (c *Classifier) Classify(fragment string) Token {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return Token{Kind: TokenSkip}
	}

	if price, _, ok := c.FindPrice(fragment); ok {
		return Token{Kind: TokenPrice, Price: price}
	}
	if hasCurrencyMarker(fragment) {
		return Token{Kind: TokenSkip}
	}

	if c.IsNoise(fragment) {
		return Token{Kind: TokenNoise}
	}

	if name, ok := c.CleanName(fragment); ok {
		return Token{Kind: TokenName, Name: name}
	}

	return Token{Kind: TokenSkip}
}

// FindPrice returns the first in-range price found in the fragment,
// together with the matched substring. Both the 円-suffixed and the
// ¥-prefixed forms are recognized; thousands separators are ignored.
func (c *Classifier) FindPrice(fragment string) (int, string, bool) {
	for _, re := range []*regexp.Regexp{yenSuffixRe, yenPrefixRe} {
		for _, m := range re.FindAllStringSubmatch(fragment, -1) {
			value, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
			if err != nil {
				continue
			}
			if c.InRange(value) {
				return value, m[0], true
			}
		}
	}
	return 0, "", false
}

// ParseAmount parses a bare numeral that is already known to be a
// price, e.g. a data attribute or a feed field. Thousands separators
// are stripped.
func (c *Classifier) ParseAmount(s string) (int, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return value, c.InRange(value)
}

// InRange reports whether a value falls within the plausible retail
// range. Values of 50 or below are always rejected; they are more
// likely ratings or counts than prices.
func (c *Classifier) InRange(value int) bool {
	if value <= 50 {
		return false
	}
	return value >= c.minPrice && value <= c.maxPrice
}

// IsNoise reports whether the fragment matches the denylist, exactly
// or as a substring.
func (c *Classifier) IsNoise(fragment string) bool {
	for _, entry := range c.denylist {
		if strings.Contains(fragment, entry) {
			return true
		}
	}
	return false
}

// CleanName strips official-shop markers and validates the length
// bounds of a name candidate.
func (c *Classifier) CleanName(fragment string) (string, bool) {
	name := strings.TrimSpace(fragment)
	for _, prefix := range c.officialPrefixes {
		name = strings.TrimSpace(strings.TrimPrefix(name, prefix))
	}
	runes := len([]rune(name))
	if runes < c.minNameLen || runes > c.maxNameLen {
		return "", false
	}
	return name, true
}

// StripNoise removes every denylist entry from the text. The DOM
// strategy uses it to carve a seller name out of a mixed fragment.
func (c *Classifier) StripNoise(text string) string {
	for _, entry := range c.denylist {
		text = strings.ReplaceAll(text, entry, " ")
	}
	return text
}

func hasCurrencyMarker(fragment string) bool {
	return strings.ContainsAny(fragment, "¥￥") || strings.Contains(fragment, "円")
}
