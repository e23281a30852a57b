package textmine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhitespaceKeepsTokensAsWritten(t *testing.T) {
	tokens := Whitespace{}.Tokenize("  Bad   service\tbad\nfood! ")
	assert.Equal(t, []string{"Bad", "service", "bad", "food!"}, tokens)
}

func TestNormalizerBasic(t *testing.T) {
	n := NewNormalizer(NewStoplist([]string{"the", "a", "and", "of"}), false)

	tokens := n.Tokenize("The delivery was late and the box was damaged")
	assert.Equal(t, []string{"delivery", "was", "late", "box", "was", "damaged"}, tokens)
}

func TestNormalizerCaseFolding(t *testing.T) {
	n := NewNormalizer(nil, false)

	for _, tok := range n.Tokenize("TERRIBLE Refund POLICY") {
		assert.Equal(t, strings.ToLower(tok), tok, "token should be case folded")
	}
}

func TestNormalizerStopwordCaseInsensitive(t *testing.T) {
	n := NewNormalizer(NewStoplist([]string{"THE", "App"}), false)

	tokens := n.Tokenize("The app crashed, the APP froze")
	assert.Equal(t, []string{"crashed", "froze"}, tokens)
}

func TestNormalizerPunctuationAndNumbers(t *testing.T) {
	n := NewNormalizer(nil, false)

	tokens := n.Tokenize("waited 45 minutes!!! 5g signal... covid-19 -- x")
	assert.Equal(t, []string{"waited", "minutes", "5g", "signal", "covid-19"}, tokens)
}

func TestNormalizerHyphens(t *testing.T) {
	n := NewNormalizer(nil, false)

	tokens := n.Tokenize("-over-priced- follow--up")
	assert.Equal(t, []string{"over-priced", "follow-up"}, tokens)
}

func TestNormalizerApostrophes(t *testing.T) {
	n := NewNormalizer(NewStoplist([]string{"don't"}), false)

	tokens := n.Tokenize("Don't buy, it's 'broken'")
	assert.Equal(t, []string{"buy", "it's", "broken"}, tokens)
}

func TestNormalizerStripsMarkup(t *testing.T) {
	n := NewNormalizer(nil, true)

	tokens := n.Tokenize("<p>Rude <b>staff</b> &amp; cold food</p><script>var x = 1</script>")
	assert.Equal(t, []string{"rude", "staff", "cold", "food"}, tokens)
}

func TestNormalizerUnicode(t *testing.T) {
	n := NewNormalizer(nil, false)

	tokens := n.Tokenize("Café STRASSE naïve")
	require.Len(t, tokens, 3)
	assert.Equal(t, "café", tokens[0])
}

func TestNormalizerEmptyInput(t *testing.T) {
	n := NewNormalizer(nil, true)

	assert.Empty(t, n.Tokenize(""))
	assert.Empty(t, n.Tokenize("   \t\n "), "whitespace-only input")
}

func TestStoplistAddRemove(t *testing.T) {
	stops := NewStoplist([]string{"the"})
	n := NewNormalizer(stops, false)

	assert.Equal(t, []string{"cat"}, n.Tokenize("the cat"))
	assert.Equal(t, 1, stops.Len())

	stops.Remove(" The ")
	assert.Equal(t, []string{"the", "cat"}, n.Tokenize("the cat"))
	assert.Equal(t, 0, stops.Len())

	stops.Add(" THE ")
	assert.Equal(t, []string{"cat"}, n.Tokenize("the cat"))
	assert.True(t, stops.Contains("The"))
}

func TestStripMarkupPlainText(t *testing.T) {
	assert.Equal(t, "no markup here", StripMarkup("no markup here"))
	assert.Equal(t, "fish & chips", StripMarkup("fish &amp; chips"), "entities are decoded")
}
