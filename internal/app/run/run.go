package run

import (
	"context"
	"log/slog"
	"time"

	slogcontext "github.com/veqryn/slog-context"

	"github.com/John-Robertt/accres/internal/accession"
	"github.com/John-Robertt/accres/internal/config"
	"github.com/John-Robertt/accres/internal/domain"
)

// Input 是一条待解析的原始输入。Accession/Version 为 nil 表示未提供。
type Input struct {
	Accession *string
	Version   *string
}

// Execute 用 eff 中的阈值解析全部输入，并返回对外稳定的 Report。
func Execute(ctx context.Context, eff config.EffectiveConfig, inputs []Input) domain.Report {
	return ExecuteWithObserver(ctx, eff, accession.NewResolver(eff.Options, nil), inputs, nil)
}

// ExecuteWithObserver 与 Execute 相同，但由调用方提供 Resolver（可挂指标等旁路）与 Observer。
//
// 单条输入构造失败（缺 accession）只会变成一条 error 条目，不影响其他条目。
// eff.Database 为空串表示不指定数据库名，照常解析。
func ExecuteWithObserver(ctx context.Context, eff config.EffectiveConfig, r accession.Resolver, inputs []Input, obs Observer) domain.Report {
	started := time.Now().UTC()
	logger := slogcontext.FromCtx(ctx).With(slog.String("database", eff.Database), slog.Bool("hybrid", eff.Hybrid))
	ctx = slogcontext.NewCtx(ctx, logger)

	if obs != nil {
		obs.OnStart(eff, len(inputs))
	}

	rr := domain.Report{
		Database:  eff.Database,
		Hybrid:    eff.Hybrid,
		StartedAt: started,
		Items:     make([]domain.ItemResult, 0, len(inputs)),
	}

	for i, in := range inputs {
		oneStarted := time.Now()
		it := resolveOne(ctx, eff, r, in)
		rr.Items = append(rr.Items, it)
		if obs != nil {
			obs.OnItemDone(i+1, len(inputs), it, time.Since(oneStarted))
		}
	}

	rr.FinishedAt = time.Now().UTC()
	rr.Finalize()
	logger.Debug("run finished",
		slog.Int("valid", rr.Summary.Valid),
		slog.Int("invalid", rr.Summary.Invalid),
		slog.Int("error", rr.Summary.Error),
	)
	return rr
}

func resolveOne(ctx context.Context, eff config.EffectiveConfig, r accession.Resolver, in Input) domain.ItemResult {
	database := eff.Database
	req, err := domain.NewRequest(in.Accession, in.Version, &database, eff.Hybrid)
	if err != nil {
		var input string
		if in.Accession != nil {
			input = *in.Accession
		}
		return domain.ItemResult{
			Input:        input,
			InputVersion: in.Version,
			Status:       domain.StatusError,
			ErrorCode:    domain.Code(err),
			ErrorMsg:     err.Error(),
		}
	}
	return domain.NewItemResult(req, r.Resolve(ctx, req))
}
