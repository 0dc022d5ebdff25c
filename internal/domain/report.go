package domain

import "time"

const (
	StatusValid   = "valid"
	StatusInvalid = "invalid"
	StatusError   = "error"
)

// Report 是对外稳定输出（stdout JSON）的结构。
type Report struct {
	Database string `json:"database"`
	Hybrid   bool   `json:"hybrid"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Summary ReportSummary `json:"summary"`
	Items   []ItemResult  `json:"items"`
}

type ReportSummary struct {
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
	Error   int `json:"error"`
}

type ItemResult struct {
	Input        string  `json:"input"`
	InputVersion *string `json:"input_version"`

	Status     string  `json:"status"`
	Accession  string  `json:"accession"`
	Version    *string `json:"version"`
	RejectedBy Stage   `json:"rejected_by,omitempty"`

	ErrorCode string `json:"error_code,omitempty"`
	ErrorMsg  string `json:"error_msg,omitempty"`
}

// NewItemResult 把一次解析结果转换为 report 条目。
// 无效结果不输出 accession（中间值只进诊断日志，不进对外契约）。
func NewItemResult(req Request, res Result) ItemResult {
	it := ItemResult{
		Input:      req.accession,
		Status:     StatusInvalid,
		RejectedBy: res.RejectedBy,
	}
	if v, ok := req.Version(); ok {
		it.InputVersion = &v
	}
	if res.Valid {
		it.Status = StatusValid
		it.Accession = res.Accession
		it.Version = res.Version
	}
	return it
}

// Finalize 做两件事：
// 1) 时间统一为 UTC（确保 JSON 为 RFC3339 且后缀 Z）
// 2) summary 由 items 计算得出
//
// items 保持输入顺序，不排序：调用方按位置对应输入。
func (r *Report) Finalize() {
	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()

	var s ReportSummary
	for _, it := range r.Items {
		switch it.Status {
		case StatusValid:
			s.Valid++
		case StatusInvalid:
			s.Invalid++
		case StatusError:
			s.Error++
		}
	}
	r.Summary = s
}
