package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPrices(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	tests := []struct {
		fragment string
		want     int
	}{
		{"1,200円", 1200},
		{"980円", 980},
		{"¥2,480", 2480},
		{"￥150", 150},
		{"価格: 3,980円(税込)", 3980},
		{"500,000円", 500000},
		{"100円", 100},
	}

	for _, tt := range tests {
		token := c.Classify(tt.fragment)
		assert.Equal(t, TokenPrice, token.Kind, "fragment %q", tt.fragment)
		assert.Equal(t, tt.want, token.Price, "fragment %q", tt.fragment)
	}
}

func TestClassifyOutOfRangeCurrencyIsAmbiguous(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	// A currency marker with an implausible amount is never promoted
	// to a seller name.
	for _, fragment := range []string{"30円", "50円", "99円", "500,001円", "¥12"} {
		token := c.Classify(fragment)
		assert.Equal(t, TokenSkip, token.Kind, "fragment %q", fragment)
	}
}

func TestClassifyNoise(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	for _, fragment := range []string{
		"送料無料",
		"クーポン適用価格",
		"レビュー(1,024件)",
		"カートに入れる",
		"メガポ時",
	} {
		token := c.Classify(fragment)
		assert.Equal(t, TokenNoise, token.Kind, "fragment %q", fragment)
	}
}

func TestClassifyNames(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	tests := []struct {
		fragment string
		want     string
	}{
		{"ShopA", "ShopA"},
		{"  Qoo10公式ストア  ", "Qoo10公式ストア"},
		{"【公式】コスメランド", "コスメランド"},
		{"公式ショップABC", "ABC"},
	}

	for _, tt := range tests {
		token := c.Classify(tt.fragment)
		assert.Equal(t, TokenName, token.Kind, "fragment %q", tt.fragment)
		assert.Equal(t, tt.want, token.Name, "fragment %q", tt.fragment)
	}
}

func TestClassifyNameLengthBounds(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	assert.Equal(t, TokenSkip, c.Classify("A").Kind)
	assert.Equal(t, TokenSkip, c.Classify("").Kind)

	long := make([]rune, 51)
	for i := range long {
		long[i] = 'x'
	}
	assert.Equal(t, TokenSkip, c.Classify(string(long)).Kind)

	exact := make([]rune, 50)
	for i := range exact {
		exact[i] = 'x'
	}
	assert.Equal(t, TokenName, c.Classify(string(exact)).Kind)
}

func TestInRangeBoundaries(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	tests := []struct {
		value int
		want  bool
	}{
		{50, false},
		{51, false},
		{99, false},
		{100, true},
		{500000, true},
		{500001, false},
		{-100, false},
		{0, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.InRange(tt.value), "value %d", tt.value)
	}
}

func TestInRangeCustomBounds(t *testing.T) {
	c := NewClassifier(ClassifierConfig{MinPrice: 500, MaxPrice: 1000})

	assert.False(t, c.InRange(499))
	assert.True(t, c.InRange(500))
	assert.True(t, c.InRange(1000))
	assert.False(t, c.InRange(1001))
	// The floor below 50 holds regardless of configuration.
	lowCfg := NewClassifier(ClassifierConfig{MinPrice: 1, MaxPrice: 1000})
	assert.False(t, lowCfg.InRange(50))
	assert.True(t, lowCfg.InRange(51))
}

func TestParseAmount(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	price, ok := c.ParseAmount("1,500")
	assert.True(t, ok)
	assert.Equal(t, 1500, price)

	_, ok = c.ParseAmount("abc")
	assert.False(t, ok)

	_, ok = c.ParseAmount("30")
	assert.False(t, ok)
}

func TestFindPricePicksFirstInRangeMatch(t *testing.T) {
	c := NewClassifier(ClassifierConfig{})

	// The leading out-of-range numeral is passed over.
	price, matched, ok := c.FindPrice("30円 1,200円")
	assert.True(t, ok)
	assert.Equal(t, 1200, price)
	assert.Equal(t, "1,200円", matched)
}
