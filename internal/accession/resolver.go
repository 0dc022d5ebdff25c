package accession

import (
	"context"
	"log/slog"
	"time"

	slogcontext "github.com/veqryn/slog-context"

	"github.com/John-Robertt/accres/internal/domain"
)

// Observer 接收每次解析完成的事件（用于指标等旁路，不影响结果）。
// 实现必须并发安全：Resolver 可能被多个 goroutine 同时使用。
type Observer interface {
	OnResolved(req domain.Request, res domain.Result, dur time.Duration)
}

// Resolver 把提交上来的各种畸形 accession 规范化为 (accession, version, valid)。
//
// Resolver 构造后只读，可并发调用 Resolve。
type Resolver struct {
	opts Options
	obs  Observer
}

func NewResolver(opts Options, obs Observer) Resolver {
	return Resolver{opts: opts.withDefaults(), obs: obs}
}

func (r Resolver) Options() Options { return r.opts }

// Resolve 执行一次完整的解析流水线。
// 任何输入都只会得到一个 Result，不会返回错误，也不会 panic。
func (r Resolver) Resolve(ctx context.Context, req domain.Request) domain.Result {
	started := time.Now()
	logger := slogcontext.FromCtx(ctx)

	s := &state{
		opts:     r.opts,
		log:      logger,
		database: req.Database(),
		hybrid:   req.Hybrid(),
		acc:      req.Accession(),
	}
	if v, ok := req.Version(); ok {
		s.version = &v
	}

	var res domain.Result
	if failed := runPipeline(s); failed != "" {
		res = domain.Result{Accession: s.acc, RejectedBy: failed}
		if logger.Enabled(ctx, slog.LevelDebug) {
			logger.Debug(res.Diagnostic(req),
				slog.String("accession", req.Accession()),
				slog.String("database", req.Database()),
				slog.String("parsed", s.acc),
				slog.String("stage", string(failed)),
			)
		}
	} else {
		res = domain.Result{Accession: s.acc, Version: s.version, Valid: true}
	}

	if r.obs != nil {
		r.obs.OnResolved(req, res, time.Since(started))
	}
	return res
}

// Resolve 是默认阈值下的便捷入口：构造 Request 并解析。
// 只有 accession 或 database 为 nil 时返回错误；database 传空串即“不指定数据库”。
func Resolve(ctx context.Context, accession, version, database *string, hybrid bool) (domain.Result, error) {
	req, err := domain.NewRequest(accession, version, database, hybrid)
	if err != nil {
		return domain.Result{}, err
	}
	return NewResolver(DefaultOptions(), nil).Resolve(ctx, req), nil
}
