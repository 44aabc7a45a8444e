package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatClauseBreaksAndChunks(t *testing.T) {
	in := "Cầu xin chư vị tôn thần phù hộ độ trì, gia đạo bình an."
	want := "Cầu xin chư vị\ntôn thần phù hộ\nđộ trì,\ngia đạo bình an.\n"
	assert.Equal(t, want, Format(in))
}

func TestFormatLongWordClosesChunkEarly(t *testing.T) {
	in := "alpha verylongword beta gamma delta epsilon"
	assert.Equal(t, "alpha verylongword\nbeta gamma delta epsilon", Format(in))
}

func TestFormatLongWordUsesPlainLength(t *testing.T) {
	// "^abcdef" is 7 bytes but displays 6 runes, so it does not close early
	in := "x ^abcdef y z w v"
	assert.Equal(t, "x ^abcdef y z\nw v", Format(in))

	in = "x ^abcdefg y z w v"
	assert.Equal(t, "x ^abcdefg\ny z w v", Format(in))
}

func TestFormatCountsRunesNotBytes(t *testing.T) {
	// "NGUYỄN" is six runes but more than six bytes
	in := "a NGUYỄN b c d e"
	assert.Equal(t, "a NGUYỄN b c\nd e", Format(in))
}

func TestFormatShortLinesUntouched(t *testing.T) {
	assert.Equal(t, "một hai ba bốn năm", Format("một hai ba bốn năm"))
}

func TestFormatPreformatted(t *testing.T) {
	in := "Phục dĩ\nTài thần, giáng phúc rất nhiều lắm lắm lắm lắm"
	assert.Equal(t, in, Format(in))
	assert.Equal(t, "", Format(""))
}

func TestMarkBold(t *testing.T) {
	assert.Equal(t, "^NGUYỄN ^VĂN ^A", MarkBold("  NGUYỄN VĂN   A "))
	assert.Equal(t, "", MarkBold("   "))
}

func TestStripClausePunct(t *testing.T) {
	assert.Equal(t, "Cầu an gia đạo hưng long", StripClausePunct("Cầu an, gia đạo; hưng long."))
}

func TestTokenize(t *testing.T) {
	got := Tokenize("Phục\tDĩ ^NAM {{TAB}} ^")
	want := Line{
		{Kind: Word, Text: "Phục"},
		{Kind: Blank},
		{Kind: Word, Text: "Dĩ"},
		{Kind: Word, Text: "NAM", Bold: true},
		{Kind: Blank},
		{Kind: Blank},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 3, got.Words())
}

func TestTokenizeConsecutiveTabs(t *testing.T) {
	got := Tokenize("\t\t\tPhục Dĩ")
	require.Len(t, got, 5)
	for _, tok := range got[:3] {
		assert.Equal(t, Blank, tok.Kind)
	}
}

func TestBoldSurvivesFormatAndParse(t *testing.T) {
	lines := Parse(MarkBold("Việt Nam Quốc Hà Nội Ba Đình Phường"))
	require.NotEmpty(t, lines)

	var words []Token
	for _, l := range lines {
		words = append(words, l...)
	}
	require.Len(t, words, 8)
	assert.Equal(t, Token{Kind: Word, Text: "Việt", Bold: true}, words[0])
	for _, w := range words {
		assert.True(t, w.Bold)
		assert.NotContains(t, w.Text, BoldMarker)
	}
}

func TestLineMarkupRoundTrip(t *testing.T) {
	src := "Thiên Vận {{TAB}} ^LỄ ^PHẬT"
	assert.Equal(t, src, Tokenize(src).Markup())
}

func TestLinesEmpty(t *testing.T) {
	assert.Nil(t, Lines(""))
	lines := Lines("a\n\nb")
	require.Len(t, lines, 3)
	assert.Empty(t, lines[1])
}
