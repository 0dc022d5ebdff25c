package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/John-Robertt/accres/internal/accession"
)

const (
	// ErrCodeNotFound 表示 --config 显式指定的文件不存在。
	ErrCodeNotFound = "config_not_found"
	// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
)

const (
	// DefaultFileName 是 cwd 下自动发现的配置文件名（可选）。
	DefaultFileName = "accres.yaml"
	// DefaultLogLevel 默认只输出 warn 及以上；诊断行需要 --log-level=debug。
	DefaultLogLevel = slog.LevelWarn
)

// CLIArgs 保留“是否显式指定”的信息，保证 CLI 能覆盖配置文件中的任何值
// （例如 --hybrid=false 必须能覆盖 hybrid: true）。
type CLIArgs struct {
	ConfigPath string

	Database    string
	DatabaseSet bool

	Hybrid    bool
	HybridSet bool

	MinGI    int64
	MinGISet bool

	MinAccessionLength    int
	MinAccessionLengthSet bool

	LogLevel    string
	LogLevelSet bool
}

// FileConfig 对应 accres.yaml 的解析结构（YAML 或 JSON 均可）。
type FileConfig struct {
	Database           string `json:"database"`
	Hybrid             *bool  `json:"hybrid"`
	MinGI              *int64 `json:"min_gi"`
	MinAccessionLength *int   `json:"min_accession_length"`
	LogLevel           string `json:"log_level"`
}

// EffectiveConfig 是合并并做最小规范化后的最终配置。
type EffectiveConfig struct {
	// ConfigPath 是实际读取的配置文件；没有读取任何文件时为空。
	ConfigPath string

	Database string
	Hybrid   bool

	Options  accession.Options
	LogLevel slog.Level
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeNotFound:
		return fmt.Sprintf("%s：未找到配置文件 %q", e.Code, e.Path)
	case ErrCodeInvalid:
		if e.Err != nil {
			return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
		}
		return fmt.Sprintf("%s：配置文件 %q 无效", e.Code, e.Path)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 发现并读取配置文件，然后与 CLI 参数合并为最终配置。
//
// 发现规则（固定）：
// 1) CLI 提供 --config：必须存在
// 2) 否则尝试 <cwd>/accres.yaml（可选，不存在不报错）
//
// 覆盖优先级（固定）：CLI（显式指定）> 配置文件 > 内置默认值
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	var (
		cfgPath string
		fc      FileConfig
		exists  bool
	)

	if strings.TrimSpace(cli.ConfigPath) != "" {
		cfgPath = absCleanFrom(cwdAbs, cli.ConfigPath)
		fc, exists, err = readFileConfig(cfgPath)
		if err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
		}
		if !exists {
			return EffectiveConfig{}, &Error{Code: ErrCodeNotFound, Path: cfgPath, Err: os.ErrNotExist}
		}
	} else {
		cfgPath = filepath.Join(cwdAbs, DefaultFileName)
		fc, exists, err = readFileConfig(cfgPath)
		if err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
		}
	}
	if !exists {
		cfgPath = ""
	}

	return merge(cli, fc, cfgPath)
}

func merge(cli CLIArgs, fc FileConfig, cfgPath string) (EffectiveConfig, error) {
	database := strings.TrimSpace(fc.Database)
	if cli.DatabaseSet {
		database = strings.TrimSpace(cli.Database)
	}

	hybrid := false
	if cli.HybridSet {
		hybrid = cli.Hybrid
	} else if fc.Hybrid != nil {
		hybrid = *fc.Hybrid
	}

	opts := accession.DefaultOptions()
	if cli.MinGISet {
		opts.MinGI = cli.MinGI
	} else if fc.MinGI != nil {
		opts.MinGI = *fc.MinGI
	}
	if opts.MinGI < 1 {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("min_gi 必须 >= 1，实际是 %d", opts.MinGI)}
	}

	if cli.MinAccessionLengthSet {
		opts.MinAccessionLength = cli.MinAccessionLength
	} else if fc.MinAccessionLength != nil {
		opts.MinAccessionLength = *fc.MinAccessionLength
	}
	if opts.MinAccessionLength < 1 {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("min_accession_length 必须 >= 1，实际是 %d", opts.MinAccessionLength)}
	}

	levelText := fc.LogLevel
	if cli.LogLevelSet {
		levelText = cli.LogLevel
	}
	level, err := parseLogLevel(levelText)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	return EffectiveConfig{
		ConfigPath: cfgPath,
		Database:   database,
		Hybrid:     hybrid,
		Options:    opts,
		LogLevel:   level,
	}, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultLogLevel, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("log_level 只能是 debug|info|warn|error，实际是 %q", s)
	}
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
func absCleanFrom(base, p string) string {
	p = filepath.Clean(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readFileConfig 读取并解析配置文件。
// 返回值 exists 表示该文件是否存在（不存在不算错误）。
func readFileConfig(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, true, err
	}
	return fc, true, nil
}
