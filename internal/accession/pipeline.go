package accession

import (
	"log/slog"

	"github.com/John-Robertt/accres/internal/domain"
)

// state 是单次解析的工作区：只在一次 Resolve 内存在，不跨请求共享。
type state struct {
	opts     Options
	log      *slog.Logger
	database string
	hybrid   bool

	acc     string
	version *string
}

// stage 是流水线中的一步：返回 false 表示判定无效，流水线立即停止。
// rejects=false 的步骤只改写工作值，run 恒返回 true。
type stage struct {
	name    domain.Stage
	run     func(*state) bool
	rejects bool
}

// pipeline 的顺序即语义；任何调整都会改变结果。
var pipeline = []stage{
	{name: domain.StageBlacklist, run: checkBlacklist, rejects: true},
	{name: domain.StageHeader, run: extractHeader, rejects: true},
	{name: domain.StagePipe, run: resolvePipe},
	{name: domain.StageFamily, run: normalizeFamily, rejects: true},
	{name: domain.StageQuote, run: stripQuotes},
	{name: domain.StageVersion, run: splitVersion},
	{name: domain.StageLength, run: checkLength, rejects: true},
}

// Stages 按执行顺序返回流水线各步的名字。
func Stages() []domain.Stage {
	out := make([]domain.Stage, 0, len(pipeline))
	for _, st := range pipeline {
		out = append(out, st.name)
	}
	return out
}

// RejectingStages 按执行顺序返回可能判定无效的步骤（Result.RejectedBy 的全部取值）。
func RejectingStages() []domain.Stage {
	var out []domain.Stage
	for _, st := range pipeline {
		if st.rejects {
			out = append(out, st.name)
		}
	}
	return out
}

// runPipeline 依次执行各步；返回被拒绝的那一步（全部通过时为空串）。
func runPipeline(s *state) domain.Stage {
	for _, st := range pipeline {
		if !st.run(s) {
			return st.name
		}
	}
	return ""
}
