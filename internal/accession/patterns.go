package accession

import "regexp"

// Pattern 是一条命名的正则 + “哪个捕获组是 accession” 的约定。
//
// 所有 Pattern 都在包初始化时编译一次，之后只读；多个 goroutine 并发使用是安全的。
type Pattern struct {
	Name  string
	RE    *regexp.Regexp
	Group int
}

func newPattern(name, expr string, group int) Pattern {
	return Pattern{Name: name, RE: regexp.MustCompile(expr), Group: group}
}

// Match 判断 s 是否整体匹配。
func (p Pattern) Match(s string) bool {
	return p.RE.MatchString(s)
}

// Extract 在整体匹配时返回约定的捕获组。
func (p Pattern) Extract(s string) (string, bool) {
	m := p.RE.FindStringSubmatch(s)
	if m == nil || p.Group >= len(m) {
		return "", false
	}
	return m[p.Group], true
}

// swissProtCore 是 SwissProt/TrEMBL 的 6 位 accession 形态，例如 P12345、Q8C7X2。
const swissProtCore = `[A-Z][0-9][A-Z0-9]{3}[0-9]`

// 所有表达式都以 ^...$ 锚定：语义是“整串匹配”，不是“包含”。
var (
	// sp|P12345|BLA_HUMAN、TR|Q8C7X2-2|...、P12345 description ...
	// 核心 6 位之后必须是 isoform、'|'、空白或结尾，否则 A0A024R161 会被截成 A0A024。
	swissProtPattern = newPattern("swissprot",
		`^(?:SP|TR|TRM)? ?\|? ?(`+swissProtCore+`)(?:-[0-9]+)?(?:[|\s].*)?$`, 1)

	// gi|1234234|BLA、GI 1234234 ...、1234234 description ...
	giPattern = newPattern("gi", `^(?:GI)? ?\|? ?([0-9]+)\|?.*$`, 1)

	simpleSwissProtPattern = newPattern("swissprot-simple", `^`+swissProtCore+`$`, 0)

	// xxx|bla|yyy：取最后两个 '|' 之间的字段。
	middlePipePattern = newPattern("middle-pipe", `^.*\|(.*)\|.*$`, 1)

	uniRefPattern = newPattern("uniref", `^UNIREF[0-9]*_?(`+swissProtCore+`)$`, 1)

	ipiPattern = newPattern("ipi", `^IPI[0-9]*([OPQ][0-9A-Z]*-?[0-9A-Z]*)$`, 1)

	// 12/34 这种纯分数从来不是 accession。
	fractionPattern = newPattern("fraction", `^[0-9]+/[0-9]+$`, 0)
)

// Patterns 返回内置的 pattern 表（副本），供诊断与测试使用。
func Patterns() []Pattern {
	return []Pattern{
		swissProtPattern,
		giPattern,
		simpleSwissProtPattern,
		middlePipePattern,
		uniRefPattern,
		ipiPattern,
		fractionPattern,
	}
}
