package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/John-Robertt/accres/internal/app/run"
	"github.com/John-Robertt/accres/internal/config"
	"github.com/John-Robertt/accres/internal/domain"
)

var _ run.Observer = (*lineUI)(nil)

// lineUI 是交互终端下的逐条输出：每条输入一行，写到 stderr（或 fallback 到 stdout）。
type lineUI struct {
	w  io.Writer
	mu sync.Mutex
}

func newLineUI(w io.Writer) *lineUI {
	return &lineUI{w: w}
}

func (u *lineUI) OnStart(eff config.EffectiveConfig, total int) {
	u.mu.Lock()
	defer u.mu.Unlock()

	fmt.Fprintln(u.w, "配置（生效）:")
	fmt.Fprintf(u.w, "  database: %s\n", orDash(eff.Database))
	fmt.Fprintf(u.w, "  hybrid: %s\n", onOff(eff.Hybrid))
	fmt.Fprintf(u.w, "  min_gi: %d\n", eff.Options.MinGI)
	fmt.Fprintf(u.w, "  min_accession_length: %d\n", eff.Options.MinAccessionLength)
	fmt.Fprintf(u.w, "  config: %s\n", orDash(eff.ConfigPath))
	fmt.Fprintf(u.w, "  inputs: %d\n\n", total)
}

func (u *lineUI) OnItemDone(idx, total int, res domain.ItemResult, dur time.Duration) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.w, "[%d/%d] %s\n", idx, total, formatItemLine(res))
}

// formatItemLine 渲染单条结果：状态 + 结果 + 原始输入。
func formatItemLine(res domain.ItemResult) string {
	switch res.Status {
	case domain.StatusValid:
		out := res.Accession
		if res.Version != nil {
			out += " v" + *res.Version
		}
		return fmt.Sprintf("OK      %s <- %s", out, displayInput(res.Input))
	case domain.StatusInvalid:
		return fmt.Sprintf("INVALID (%s) %s", res.RejectedBy, displayInput(res.Input))
	default:
		return fmt.Sprintf("ERROR   %s %s", res.ErrorCode, displayInput(res.Input))
	}
}

func displayInput(s string) string {
	if strings.TrimSpace(s) == "" {
		return "<empty>"
	}
	return truncate(s, 80)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "…"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
