package accession

import (
	"strings"
	"unicode/utf8"
)

var (
	// 反向库：除非同时是 _concat（正反拼接库）。
	reversedDatabaseMarkers = []string{"reverse", "_rev"}
	decoyDatabaseMarkers    = []string{"decoy", "dec_", "_dec"}

	// "reverse" 单独处理："reverse sense" 是正常注释，不是反向序列。
	reversedAccessionMarkers = []string{"_rev", "rev_", "###rnd###", "###rev###", ".fasta", "jgi|aspni1"}
)

// checkBlacklist 拒绝 decoy/反向/随机化序列。
// hybrid 库里真假序列混在一起，因此只跳过库名检查，accession 级检查照常执行。
func checkBlacklist(s *state) bool {
	if !s.hybrid {
		db := strings.ToLower(s.database)
		if containsAny(db, reversedDatabaseMarkers) && !strings.Contains(db, "_concat") {
			return false
		}
		if containsAny(db, decoyDatabaseMarkers) {
			return false
		}
	}

	acc := strings.ToLower(s.acc)
	if strings.Contains(acc, "reverse") && !strings.Contains(acc, "reverse sense") {
		return false
	}
	if containsAny(acc, reversedAccessionMarkers) {
		return false
	}
	return !fractionPattern.Match(acc)
}

// checkLength 是最后一道防线：不重置 accession，只把结果标记为不可信。
func checkLength(s *state) bool {
	return utf8.RuneCountInString(s.acc) >= s.opts.MinAccessionLength
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
