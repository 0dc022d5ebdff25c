package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/John-Robertt/accres/internal/accession"
	"github.com/John-Robertt/accres/internal/app/run"
	"github.com/John-Robertt/accres/internal/config"
	"github.com/John-Robertt/accres/internal/domain"
	"github.com/John-Robertt/accres/internal/infra/metrics"
)

const (
	FlagDatabase  = "database"
	FlagVersion   = "version"
	FlagHybrid    = "hybrid"
	FlagConfig    = "config"
	FlagMinGI     = "min-gi"
	FlagMinLength = "min-length"
	FlagLogLevel  = "log-level"
	FlagMetrics   = "metrics"
)

var BuildVersion = "n/a"

func main() {
	if code := execute(os.Args[1:], os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// exitError 携带进程退出码；err 为 nil 时不额外打印。
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// execute 运行命令并返回退出码：
// 0 全部有效；1 存在 invalid/error 条目或运行失败；2 参数错误。
func execute(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "错误：%v\n", ee.err)
		}
		return ee.code
	}
	// cobra 自身的错误（未知参数/命令、参数个数不符）都属于用法错误。
	fmt.Fprintf(stderr, "参数错误：%v\n\n", err)
	_ = root.Usage()
	return 2
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "accres",
		Short:         "Normalize free-form sequence database accessions",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newResolveCmd(), newVersionCmd())
	return root
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <accession>...",
		Short: "Resolve one or more raw accessions into accession/version pairs",
		Example: `  accres resolve "sp|P12345|BLA_HUMAN" --database swissprot
  accres resolve AT3G17770.1 --database TAIR10
  accres resolve "npol_c_46_98 Neisseria polysaccharea (REVERSE SENSE) ORF" --database human-crap-homd_TD.fasta.pro --hybrid`,
		Args: cobra.MinimumNArgs(1),
		RunE: runResolve,
	}

	f := cmd.Flags()
	f.StringP(FlagDatabase, "d", "", "source database name (optional; empty means no database-specific rules)")
	f.String(FlagVersion, "", "raw version applied to every accession")
	f.Bool(FlagHybrid, false, "database mixes target and decoy entries; skip database-level decoy checks")
	f.String(FlagConfig, "", "config file (default: ./"+config.DefaultFileName+" if present)")
	f.Int64(FlagMinGI, accession.DefaultMinGI, "smallest numeric GI accepted")
	f.Int(FlagMinLength, accession.DefaultMinAccessionLength, "shortest accession accepted")
	f.String(FlagLogLevel, "warn", "log level: debug|info|warn|error")
	f.Bool(FlagMetrics, false, "write resolution metrics (Prometheus text format) to stderr")
	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cli, err := cliArgs(cmd)
	if err != nil {
		return &exitError{code: 2, err: err}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return &exitError{code: 1, err: fmt.Errorf("读取当前目录失败：%w", err)}
	}
	eff, err := config.LoadEffective(cwd, cli)
	if err != nil {
		return &exitError{code: 1, err: err}
	}

	logger := slog.New(slogcontext.NewHandler(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: eff.LogLevel}), nil))
	ctx := slogcontext.NewCtx(cmdContext(cmd), logger)

	var version *string
	if cmd.Flags().Changed(FlagVersion) {
		v, _ := cmd.Flags().GetString(FlagVersion)
		version = &v
	}
	inputs := make([]run.Input, 0, len(args))
	for _, a := range args {
		inputs = append(inputs, run.Input{Accession: &a, Version: version})
	}

	withMetrics, _ := cmd.Flags().GetBool(FlagMetrics)
	var rec *metrics.Recorder
	var resObs accession.Observer
	if withMetrics {
		rec = metrics.NewRecorder()
		resObs = rec
	}

	lineW, interactive := pickLineWriter(stdout, stderr)
	var obs run.Observer
	if interactive {
		obs = newLineUI(lineW)
	}

	rr := run.ExecuteWithObserver(ctx, eff, accession.NewResolver(eff.Options, resObs), inputs, obs)
	emitReport(stdout, stderr, rr)

	if rec != nil {
		if err := rec.WriteText(stderr); err != nil {
			return &exitError{code: 1, err: fmt.Errorf("输出 metrics 失败：%w", err)}
		}
	}
	if rr.Summary.Invalid == 0 && rr.Summary.Error == 0 {
		return nil
	}
	return &exitError{code: 1}
}

// cliArgs 读取 flag，并保留“是否显式指定”的信息供配置合并使用。
func cliArgs(cmd *cobra.Command) (config.CLIArgs, error) {
	f := cmd.Flags()
	var (
		a   config.CLIArgs
		err error
	)
	if a.ConfigPath, err = f.GetString(FlagConfig); err != nil {
		return a, err
	}
	if a.Database, err = f.GetString(FlagDatabase); err != nil {
		return a, err
	}
	a.DatabaseSet = f.Changed(FlagDatabase)
	if a.Hybrid, err = f.GetBool(FlagHybrid); err != nil {
		return a, err
	}
	a.HybridSet = f.Changed(FlagHybrid)
	if a.MinGI, err = f.GetInt64(FlagMinGI); err != nil {
		return a, err
	}
	a.MinGISet = f.Changed(FlagMinGI)
	if a.MinAccessionLength, err = f.GetInt(FlagMinLength); err != nil {
		return a, err
	}
	a.MinAccessionLengthSet = f.Changed(FlagMinLength)
	if a.LogLevel, err = f.GetString(FlagLogLevel); err != nil {
		return a, err
	}
	a.LogLevelSet = f.Changed(FlagLogLevel)
	return a, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the accres version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := BuildVersion
			if v == "n/a" {
				if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
					v = bi.Main.Version
				}
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
}

func emitReport(stdout, stderr io.Writer, rr domain.Report) {
	if isTTY(stdout) {
		fmt.Fprintf(stdout, "完成：valid=%d invalid=%d error=%d\n",
			rr.Summary.Valid, rr.Summary.Invalid, rr.Summary.Error,
		)
		for _, it := range rr.Items {
			if it.Status == domain.StatusError {
				fmt.Fprintf(stderr, "%s %s: %s\n", displayInput(it.Input), it.ErrorCode, it.ErrorMsg)
			}
		}
		return
	}

	// stdout 非 TTY：stdout 必须且仅输出一个 Report JSON（日志/摘要走 stderr）。
	enc := json.NewEncoder(stdout)
	_ = enc.Encode(rr)
	fmt.Fprintf(stderr, "完成：valid=%d invalid=%d error=%d\n",
		rr.Summary.Valid, rr.Summary.Invalid, rr.Summary.Error,
	)
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func pickLineWriter(stdout, stderr io.Writer) (io.Writer, bool) {
	// 逐条输出只在交互终端启用；默认走 stderr（不污染 stdout JSON）。
	if isTTY(stderr) {
		return stderr, true
	}
	if isTTY(stdout) {
		return stdout, true
	}
	return nil, false
}
