package accession

import (
	"strconv"
	"strings"
)

// splitVersion 把 "AC.N" 拆成 accession + version。
//
// 两种互相冲突的输入都要处理：
//   - IPI0001234..5：版本其实是 5
//   - Tb10.6k15.3810：根本没有版本，'.' 是 accession 的一部分
//
// TAIR 的 AT3G17770.1 整体就是 accession，因此数值合法时也要拼回去。
func splitVersion(s *state) bool {
	if i := strings.IndexByte(s.acc, '.'); i > 0 {
		v := strings.TrimSpace(s.acc[i+1:])
		s.version = &v
		s.acc = strings.TrimSpace(s.acc[:i])
	}
	if s.version == nil {
		return true
	}

	v := *s.version
	if strings.HasPrefix(v, ".") {
		v = v[strings.LastIndexByte(v, '.')+1:]
	}

	if !isVersionNumeral(v) {
		s.acc = s.acc + "." + v
		s.version = nil
		s.log.Info("improper accession version detected, setting it to null", "accession", s.acc)
		return true
	}
	if isTAIR(s.database) {
		s.acc = s.acc + "." + v
		s.version = nil
		return true
	}
	s.version = &v
	return true
}

// isVersionNumeral 要求版本号是 32 位有符号整数。
func isVersionNumeral(v string) bool {
	_, err := strconv.ParseInt(v, 10, 32)
	return err == nil
}

func isTAIR(database string) bool {
	return strings.HasPrefix(strings.ToUpper(database), "TAIR")
}
