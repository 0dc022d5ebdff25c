package accession

import "strings"

// malformedSuffix 是观察到的畸形 SwissProt 变体，例如 Q8C7X2-00-00-00。
const malformedSuffix = "-00-00-00"

// extractHeader 把“accession + 描述文本”收敛为 accession 本身。
//
// 含空格时按 SwissProt -> GI -> 首个单词 的顺序尝试；
// 之所以先认 SP/GI，是为了避免把 "gi 1234234 ..." 之类截成无意义的首词。
func extractHeader(s *state) bool {
	if strings.HasSuffix(s.acc, malformedSuffix) {
		s.acc = s.acc[:strings.Index(s.acc, malformedSuffix)]
	}

	if i := strings.IndexByte(s.acc, ' '); i > 0 {
		upper := strings.ToUpper(s.acc)
		if m, ok := swissProtPattern.Extract(upper); ok {
			s.acc = m
		} else if m, ok := giPattern.Extract(upper); ok {
			// 形似 GI 但数值不可信：整条判无效，而不是退回首词。
			if !s.opts.ValidGI(m) {
				return false
			}
			s.acc = m
		} else {
			s.acc = strings.TrimSpace(s.acc[:i])
		}
	}

	if i := strings.IndexByte(s.acc, ','); i > 0 {
		s.acc = strings.TrimSpace(s.acc[:i])
	}
	return true
}

// resolvePipe 从 FASTA 风格的 '|' 分隔头中挑出真正的 accession。
// 优先级：SP/TR > GI > 中间字段 > 首字段（SP 形态）> 去掉首字段。
func resolvePipe(s *state) bool {
	i := strings.IndexByte(s.acc, '|')
	if i <= 0 {
		return true
	}

	upper := strings.ToUpper(s.acc)
	if m, ok := swissProtPattern.Extract(upper); ok {
		s.acc = m
		return true
	}
	if m, ok := giPattern.Extract(upper); ok && s.opts.ValidGI(m) {
		s.acc = m
		return true
	}
	if mid, ok := middlePipePattern.Extract(upper); ok {
		if simpleSwissProtPattern.Match(mid) || s.opts.ValidGI(mid) {
			s.acc = mid
			return true
		}
	}
	// O34528|yrvN
	if head := s.acc[:i]; simpleSwissProtPattern.Match(head) {
		s.acc = head
		return true
	}

	s.acc = s.acc[i+1:]
	return true
}

// IPIIPI / IPIUPI / IPI[NXPOQ]... 这类是提交时重复了前缀的畸形 IPI。
var malformedIPIPrefixes = map[string]struct{}{
	"IPII": {},
	"IPIU": {},
	"IPIN": {},
	"IPIX": {},
	"IPIP": {},
	"IPIO": {},
	"IPIQ": {},
}

func normalizeFamily(s *state) bool {
	if m, ok := uniRefPattern.Extract(strings.ToUpper(s.acc)); ok {
		s.acc = m
	}

	if !strings.HasPrefix(s.acc, "IPI") {
		return true
	}
	if len(s.acc) < 4 {
		s.log.Error("invalid IPI accession", "accession", s.acc)
		return false
	}
	if _, bad := malformedIPIPrefixes[s.acc[:4]]; bad {
		s.acc = s.acc[3:]
	}
	if m, ok := ipiPattern.Extract(s.acc); ok {
		s.acc = m
	}
	return true
}

// stripQuotes 去掉首个引号之前、最后一个引号之后的内容；两次裁剪互不依赖。
func stripQuotes(s *state) bool {
	if i := strings.IndexByte(s.acc, '"'); i >= 0 {
		s.acc = s.acc[i+1:]
	}
	if i := strings.LastIndexByte(s.acc, '"'); i > 0 {
		s.acc = s.acc[:i]
	}
	return true
}
