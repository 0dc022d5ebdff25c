package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/John-Robertt/accres/internal/accession"
	"github.com/John-Robertt/accres/internal/domain"
)

var _ accession.Observer = (*Recorder)(nil)

const (
	OutcomeValid   = "valid"
	OutcomeInvalid = "invalid"

	// StageNone 是有效结果的 stage label（有效结果不被任何阶段拒绝）。
	StageNone = "none"
)

// Recorder 把解析结果计入 Prometheus 指标。
// 使用私有 Registry：不污染全局 DefaultRegisterer，多个 Recorder 互不影响。
type Recorder struct {
	reg      *prometheus.Registry
	total    *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "accres_resolutions_total",
			Help: "Accession resolutions by outcome and rejecting stage.",
		}, []string{"outcome", "stage"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "accres_resolution_duration_seconds",
			Help:    "Time spent resolving a single accession.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 8),
		}),
	}
	r.reg.MustRegister(r.total, r.duration)

	// 预先初始化所有可能出现的 label 组合：没有发生过的拒绝阶段也输出 0，便于对比。
	// 只改写不拒绝的阶段（pipe/quote/version）不会出现在 invalid 里。
	r.total.WithLabelValues(OutcomeValid, StageNone)
	for _, st := range accession.RejectingStages() {
		r.total.WithLabelValues(OutcomeInvalid, string(st))
	}
	return r
}

func (r *Recorder) OnResolved(req domain.Request, res domain.Result, dur time.Duration) {
	if res.Valid {
		r.total.WithLabelValues(OutcomeValid, StageNone).Inc()
	} else {
		r.total.WithLabelValues(OutcomeInvalid, string(res.RejectedBy)).Inc()
	}
	r.duration.Observe(dur.Seconds())
}

// Registry 暴露底层 Registry（例如挂到 promhttp.HandlerFor）。
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// WriteText 以 Prometheus 文本格式输出当前所有指标。
func (r *Recorder) WriteText(w io.Writer) error {
	mfs, err := r.reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
