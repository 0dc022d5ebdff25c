package run

import (
	"time"

	"github.com/John-Robertt/accres/internal/config"
	"github.com/John-Robertt/accres/internal/domain"
)

// Observer 用于把“运行进度/条目结果”从核心执行流程中解耦出来。
//
// 约束：
// - run 包只负责发事件，不做任何输出（避免污染 stdout 的 JSON 契约）。
// - Observer 的实现必须并发安全。
type Observer interface {
	// OnStart 在 ExecuteWithObserver 开始时调用。
	OnStart(eff config.EffectiveConfig, total int)
	// OnItemDone 在某条输入解析完成时调用（idx 从 1 开始）。
	OnItemDone(idx, total int, res domain.ItemResult, dur time.Duration)
}
