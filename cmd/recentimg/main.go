package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// exitError 携带进程退出码；错误信息已由命令自身输出。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit %d", e.code) }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(logrus.New())
	if err := root.ExecuteContext(ctx); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			stop()
			os.Exit(ee.code)
		}
		// cobra 的参数/flag 错误：与 AVMC 保持一致，退出码 2。
		fmt.Fprintf(os.Stderr, "参数错误：%v\n\n", err)
		_ = root.Usage()
		stop()
		os.Exit(2)
	}
}

func newRootCmd(log *logrus.Logger) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "recentimg",
		Short: "按修改时间从目录中选出第 N 新的图片，并转换为 image/mask tensor",
		Long: `recentimg 扫描目录（不递归），按扩展名过滤后按修改时间降序排名，
选出 index 对应的图片（0 = 最新），解码为 [1,H,W,3] 的 image 与 [1,H,W] 的 mask。

配置优先级：参数 > recentimg.json > 环境变量 > .env > 默认值。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(log, cmd.ErrOrStderr(), verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出阶段耗时等调试日志")

	root.AddCommand(
		newSelectCmd(log),
		newChangedCmd(),
		newValidateCmd(),
		newNodesCmd(),
		newExecCmd(),
	)
	return root
}

// setupLogger 统一日志格式：全部写 stderr，stdout 只留给报告。
func setupLogger(log *logrus.Logger, w io.Writer, verbose bool) {
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
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
