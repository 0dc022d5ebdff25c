package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ErrCodeMissingAccession 表示未提供原始 accession。
	ErrCodeMissingAccession = "missing_accession"
	// ErrCodeMissingDatabase 表示未提供数据库名。
	ErrCodeMissingDatabase = "missing_database"
)

// Stage 是解析流水线中某一步的名字（用于定位“在哪一步被判无效”）。
type Stage string

const (
	StageBlacklist Stage = "blacklist"
	StageHeader    Stage = "header"
	StagePipe      Stage = "pipe"
	StageFamily    Stage = "family"
	StageQuote     Stage = "quote"
	StageVersion   Stage = "version"
	StageLength    Stage = "length"
)

// Request 是一次解析的不可变输入。
//
// 约束：只能通过 NewRequest 构造；accession 与 database 必填（空串合法，nil 才算缺失）。
type Request struct {
	accession string
	version   *string
	database  string
	hybrid    bool
}

// NewRequest 校验必填字段并构造 Request。
// nil 表示未提供：accession/database 为 nil 时返回构造错误；version 为 nil 即没有版本号。
// 空串不是缺失：database="" 表示不指定数据库，accession="" 会在长度检查处被判无效。
func NewRequest(accession, version, database *string, hybrid bool) (Request, error) {
	if accession == nil {
		return Request{}, &Error{Code: ErrCodeMissingAccession, Field: "accession"}
	}
	if database == nil {
		return Request{}, &Error{Code: ErrCodeMissingDatabase, Field: "database"}
	}
	r := Request{
		accession: *accession,
		database:  *database,
		hybrid:    hybrid,
	}
	if version != nil {
		v := *version
		r.version = &v
	}
	return r, nil
}

func (r Request) Accession() string { return r.accession }
func (r Request) Database() string  { return r.database }
func (r Request) Hybrid() bool      { return r.hybrid }

// Version 返回调用方提供的版本号（未提供时 ok=false）。
func (r Request) Version() (string, bool) {
	if r.version == nil {
		return "", false
	}
	return *r.version, true
}

// Result 是一次解析的结果。
//
// Valid=false 时 Accession 仅是被拒绝那一刻的中间值，只用于诊断，调用方不应依赖。
type Result struct {
	Accession  string  `json:"accession"`
	Version    *string `json:"version"`
	Valid      bool    `json:"valid"`
	RejectedBy Stage   `json:"rejected_by,omitempty"`
}

// VersionString 返回版本号；没有版本时返回空串。
func (r Result) VersionString() string {
	if r.Version == nil {
		return ""
	}
	return *r.Version
}

// Diagnostic 渲染无效结果的诊断行：
// INVALID<TAB>原始accession<TAB>原始version<TAB>database<TAB>PARSED ->解析中间值<-
func (r Result) Diagnostic(req Request) string {
	v, ok := req.Version()
	if !ok {
		v = "null"
	}
	var b strings.Builder
	b.WriteString("INVALID\t")
	b.WriteString(req.accession)
	b.WriteByte('\t')
	b.WriteString(v)
	b.WriteByte('\t')
	b.WriteString(req.database)
	b.WriteString("\tPARSED ->")
	b.WriteString(r.Accession)
	b.WriteString("<-")
	return b.String()
}

// Error 是构造 Request 时的结构化错误（带 error_code）。
type Error struct {
	Code  string
	Field string
}

func (e *Error) Error() string {
	if e == nil {
		return "invalid request"
	}
	return fmt.Sprintf("%s：必须提供 %s", e.Code, e.Field)
}

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
