package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/John-Robertt/recentimg/internal/app/run"
	"github.com/John-Robertt/recentimg/internal/config"
	"github.com/John-Robertt/recentimg/internal/domain"
	"github.com/John-Robertt/recentimg/internal/node"
)

// addSelectionFlags 注册 select/changed/validate 共用的参数。
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("ext", config.DefaultExtensions, "逗号分隔的扩展名（大小写不敏感，可带 '.'）")
	cmd.Flags().Int("index", config.DefaultIndex, "按修改时间排名的下标：0 = 最新")
}

// loadEffective 把位置参数与 flag 合并进配置加载流程。
// 只有显式给出的 flag 才覆盖配置文件/环境变量。
func loadEffective(cmd *cobra.Command, args []string) (config.Effective, error) {
	cli := config.CLIArgs{}
	if len(args) > 0 {
		cli.Folder = args[0]
	}
	if f := cmd.Flags().Lookup("ext"); f != nil && f.Changed {
		cli.Extensions = f.Value.String()
		cli.ExtensionsSet = true
	}
	if cmd.Flags().Changed("index") {
		n, err := cmd.Flags().GetInt("index")
		if err != nil {
			return config.Effective{}, err
		}
		cli.Index = n
		cli.IndexSet = true
	}

	cwd, err := os.Getwd()
	if err != nil {
		return config.Effective{}, &config.Error{Code: config.ErrCodeInvalid, Err: fmt.Errorf("读取当前目录失败：%w", err)}
	}
	return config.LoadEffective(cwd, cli)
}

func newSelectCmd(log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select [folder]",
		Short: "选图并输出报告（stdout 非 TTY 时为单个 JSON）",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep := domain.SelectReport{StartedAt: time.Now()}

			eff, err := loadEffective(cmd, args)
			if err != nil {
				rep.Fail(run.Code(err), err.Error())
				return finishReport(cmd, rep)
			}
			rep.Folder = eff.Folder
			rep.Extensions = append([]string(nil), eff.Extensions...)
			rep.Index = eff.Index

			sel, err := run.SelectWithObserver(cmd.Context(), eff, newLogObserver(log))
			if err != nil {
				rep.Fail(run.Code(err), err.Error())
				return finishReport(cmd, rep)
			}
			rep.Apply(sel)
			return finishReport(cmd, rep)
		},
	}
	addSelectionFlags(cmd)
	return cmd
}

func finishReport(cmd *cobra.Command, rep domain.SelectReport) error {
	rep.FinishedAt = time.Now()
	rep.Finalize()
	emitReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), rep)
	if rep.Status != domain.StatusSelected {
		return &exitError{code: 1}
	}
	return nil
}

func emitReport(stdout, stderr io.Writer, rep domain.SelectReport) {
	if isTTY(stdout) {
		if rep.Status == domain.StatusSelected {
			fmt.Fprintf(stdout, "完成：file=%s index=%d/%d format=%s image=%v mask=%v alpha=%v\n",
				rep.File, rep.Index, rep.Candidates, rep.Format, rep.ImageShape, rep.MaskShape, rep.HasAlpha)
			return
		}
		fmt.Fprintf(stderr, "%s: %s\n", rep.ErrorCode, rep.ErrorMsg)
		return
	}

	// stdout 非 TTY：stdout 必须且仅输出一个 SelectReport JSON（日志/摘要走 stderr）。
	_ = json.NewEncoder(stdout).Encode(rep)
	if rep.Status == domain.StatusSelected {
		fmt.Fprintf(stderr, "完成：file=%s index=%d/%d\n", rep.File, rep.Index, rep.Candidates)
	} else {
		fmt.Fprintf(stderr, "失败：%s: %s\n", rep.ErrorCode, rep.ErrorMsg)
	}
}

func newChangedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "changed [folder]",
		Short: "输出选中文件的修改时间（Unix 秒）；无法选中时输出 NaN",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := math.NaN()
			eff, err := loadEffective(cmd, args)
			if err == nil {
				v = run.Changed(eff)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(v, 'f', -1, 64))
			return nil
		},
	}
	addSelectionFlags(cmd)
	return cmd
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [folder]",
		Short: "检查输入是否可用（目录、候选、下标、图片能否解码）",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eff, err := loadEffective(cmd, args)
			if err == nil {
				err = run.Validate(eff)
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", run.Code(err), err)
				return &exitError{code: 1}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	addSelectionFlags(cmd)
	return cmd
}

// nodesOutput 是 nodes 命令的 JSON 结构：节点定义 + 展示名映射。
type nodesOutput struct {
	Nodes        []node.Definition `json:"nodes"`
	DisplayNames map[string]string `json:"display_names"`
}

func newNodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nodes",
		Short: "以 JSON 输出已注册节点的输入/输出 schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := node.Default()
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(nodesOutput{Nodes: reg.List(), DisplayNames: reg.DisplayNames()})
		},
	}
}

// execOutput 描述一次节点执行的输出槽位形状（不输出 tensor 数据）。
type execOutput struct {
	Node    string    `json:"node"`
	Outputs []slotOut `json:"outputs"`
}

type slotOut struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Shape []int   `json:"shape"`
	Mean  float64 `json:"mean"`
}

func newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <node> [key=value...]",
		Short: "像宿主一样以动态输入执行一个已注册节点",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ok := node.Default().Get(args[0])
			if !ok {
				return fmt.Errorf("未知节点：%q", args[0])
			}
			values, err := parseValues(args[1:])
			if err != nil {
				return err
			}

			tensors, err := d.Run(cmd.Context(), values)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", run.Code(err), err)
				return &exitError{code: 1}
			}

			out := execOutput{Node: d.Name, Outputs: make([]slotOut, 0, len(tensors))}
			for i, t := range tensors {
				s := slotOut{Shape: t.Shape, Mean: t.Mean()}
				if i < len(d.Outputs) {
					s.Name, s.Type = d.Outputs[i].Name, d.Outputs[i].Type
				}
				out.Outputs = append(out.Outputs, s)
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
		},
	}
}

// parseValues 把 key=value 参数解析为 node.Values；值统一为字符串，由节点做弱类型解码。
func parseValues(args []string) (node.Values, error) {
	v := make(node.Values, len(args))
	for _, a := range args {
		k, val, ok := strings.Cut(a, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("输入必须是 key=value 形式，实际是 %q", a)
		}
		v[k] = val
	}
	return v, nil
}
