package accession

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatterns_NamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Patterns() {
		require.False(t, seen[p.Name], "重复的 pattern：%s", p.Name)
		seen[p.Name] = true
	}
}

func TestPattern_Extract(t *testing.T) {
	cases := []struct {
		p      Pattern
		in     string
		want   string
		wantOK bool
	}{
		{swissProtPattern, "SP|P12345|BLA_HUMAN", "P12345", true},
		{swissProtPattern, "TRM|Q8C7X2-3|X", "Q8C7X2", true},
		{swissProtPattern, "P12345 DESCRIPTION", "P12345", true},
		{swissProtPattern, "GI|12345|", "", false},
		{swissProtPattern, "P12345-2", "P12345", true},
		{swissProtPattern, "A0A024R161 UNCHARACTERIZED PROTEIN", "", false},
		{swissProtPattern, "TR|A0A024R161|A0A024R161_HUMAN", "", false},
		{giPattern, "GI|12345|REF", "12345", true},
		{giPattern, "GI 12345 TEXT", "12345", true},
		{giPattern, "REF|12345|", "", false},
		{middlePipePattern, "A|B|C", "B", true},
		{middlePipePattern, "A|B|C|D", "C", true},
		{middlePipePattern, "A|B", "", false},
		{uniRefPattern, "UNIREF100_P12345", "P12345", true},
		{uniRefPattern, "UNIREFP12345", "P12345", true},
		{uniRefPattern, "UNIREF100_P12345-2", "", false},
		{ipiPattern, "IPI00P12345", "P12345", true},
		{ipiPattern, "IPI00012345", "", false},
	}
	for _, tc := range cases {
		got, ok := tc.p.Extract(tc.in)
		require.Equal(t, tc.wantOK, ok, "%s(%q)", tc.p.Name, tc.in)
		require.Equal(t, tc.want, got, "%s(%q)", tc.p.Name, tc.in)
	}
}

func TestPattern_MatchIsWholeString(t *testing.T) {
	require.True(t, simpleSwissProtPattern.Match("O34528"))
	require.False(t, simpleSwissProtPattern.Match("O34528X"))
	require.False(t, simpleSwissProtPattern.Match("o34528"))
	require.True(t, fractionPattern.Match("12/34"))
	require.False(t, fractionPattern.Match("a12/34"))
}

func TestOptions_ValidGI(t *testing.T) {
	o := DefaultOptions()
	require.True(t, o.ValidGI("1000"))
	require.False(t, o.ValidGI("999"))
	require.False(t, o.ValidGI("12a"))
	require.False(t, o.ValidGI("99999999999999999999"))
	require.True(t, Options{MinGI: 10}.ValidGI("10"))
	// 零值 Options 使用默认阈值。
	require.False(t, Options{}.ValidGI("999"))
}
