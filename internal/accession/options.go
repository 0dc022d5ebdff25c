package accession

import "strconv"

const (
	// DefaultMinGI 是经验阈值：小于它的数字几乎都不是真实 GI，而是松散匹配带来的误报。
	DefaultMinGI int64 = 1000
	// DefaultMinAccessionLength 是经验阈值：更短的串不可能是真实 accession。
	DefaultMinAccessionLength = 5
)

// Options 是解析流程中的可调阈值。零值字段使用默认值。
type Options struct {
	MinGI              int64
	MinAccessionLength int
}

func DefaultOptions() Options {
	return Options{
		MinGI:              DefaultMinGI,
		MinAccessionLength: DefaultMinAccessionLength,
	}
}

func (o Options) withDefaults() Options {
	if o.MinGI == 0 {
		o.MinGI = DefaultMinGI
	}
	if o.MinAccessionLength == 0 {
		o.MinAccessionLength = DefaultMinAccessionLength
	}
	return o
}

// ValidGI 判断 s 是否是可信的 GI：能解析为 int64，且不小于 MinGI。
func (o Options) ValidGI(s string) bool {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return false
	}
	return n >= o.withDefaults().MinGI
}
