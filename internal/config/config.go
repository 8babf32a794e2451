package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/John-Robertt/recentimg/internal/scan"
)

const (
	// ErrCodeInvalid 表示配置无法读取/解析，或字段不合法。
	ErrCodeInvalid = "config_invalid"
	// ErrCodeMissingPath 表示最终没有得到 folder_path。
	ErrCodeMissingPath = "config_missing_path"
)

const (
	// DefaultExtensions 是 image_extensions 输入的默认值（节点 schema 中展示的值）。
	DefaultExtensions = "jpg,jpeg,png,bmp,tiff,tif,webp"
	// DefaultIndex 是 index 的默认值：0 = 最近修改的图片。
	DefaultIndex = 0
	// MaxIndex 只是节点 schema 给宿主控件的上限；超出候选数量由选图流程报 IndexOutOfRangeError。
	MaxIndex = 1000

	// FileName 是 cwd 下可选的 JSON 配置文件名。
	FileName = "recentimg.json"
	// EnvFileName 是 cwd 下可选的 dotenv 文件名。
	EnvFileName = ".env"
)

const (
	EnvFolder     = "RECENTIMG_FOLDER"
	EnvExtensions = "RECENTIMG_EXTENSIONS"
	EnvIndex      = "RECENTIMG_INDEX"
)

// NodeInputs 是宿主传入的原始输入（字段名与节点 schema 一致）。
type NodeInputs struct {
	FolderPath      string `json:"folder_path" mapstructure:"folder_path"`
	ImageExtensions string `json:"image_extensions" mapstructure:"image_extensions"`
	Index           int    `json:"index" mapstructure:"index"`
}

// DefaultInputs 返回只填了默认值的 NodeInputs（folder_path 没有默认值）。
func DefaultInputs() NodeInputs {
	return NodeInputs{
		ImageExtensions: DefaultExtensions,
		Index:           DefaultIndex,
	}
}

// Effective 是校验并规范化后的最终配置（实现层直接消费，不再做二次默认/校验）。
type Effective struct {
	// Folder 是 clean + absolute 路径；是否存在由选图流程判断。
	Folder string
	// Extensions 已小写、去掉前导 '.'、排序。
	Extensions []string
	Index      int
}

// ExtSet 返回 Extensions 对应的集合。
func (e Effective) ExtSet() scan.ExtSet {
	return scan.NewExtSet(e.Extensions...)
}

// CLIArgs 是 CLI 暴露的入口；*Set 用于区分“显式指定”与“零值”。
type CLIArgs struct {
	Folder string

	Extensions    string
	ExtensionsSet bool

	Index    int
	IndexSet bool
}

// FileConfig 对应 recentimg.json 的解析结构。
type FileConfig struct {
	FolderPath      string  `json:"folder_path"`
	ImageExtensions *string `json:"image_extensions"`
	Index           *int    `json:"index"`
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeMissingPath:
		return fmt.Sprintf("%s：缺少必填字段 folder_path（可通过参数、%s、%s 或 %s 提供）", e.Code, FileName, EnvFolder, EnvFileName)
	case ErrCodeInvalid:
		if e.Path != "" && e.Err != nil {
			return fmt.Sprintf("%s：配置 %q 无效：%v", e.Code, e.Path, e.Err)
		}
		if e.Err != nil {
			return fmt.Sprintf("%s：%v", e.Code, e.Err)
		}
		return e.Code
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

// FromNode 校验宿主输入并得到 Effective。相对路径以 base 为基准。
//
// 只在调用入口做一次；之后的流程不再关心原始输入。
func FromNode(base string, in NodeInputs) (Effective, error) {
	if strings.TrimSpace(in.FolderPath) == "" {
		return Effective{}, &Error{Code: ErrCodeMissingPath}
	}
	if in.Index < 0 {
		return Effective{}, &Error{Code: ErrCodeInvalid, Err: fmt.Errorf("index 必须为非负整数，实际是 %d", in.Index)}
	}

	return Effective{
		Folder:     absCleanFrom(base, in.FolderPath),
		Extensions: scan.ParseExtensions(in.ImageExtensions).Sorted(),
		Index:      in.Index,
	}, nil
}

// LoadEffective 读取 cwd 下的可选配置来源，与 CLI 参数合并后校验。
//
// 覆盖优先级（逐字段，固定）：
// CLI > <cwd>/recentimg.json > 进程环境变量 > <cwd>/.env > 默认值
//
// .env 只读取，不写回进程环境。
func LoadEffective(cwd string, cli CLIArgs) (Effective, error) {
	cwdAbs, err := filepath.Abs(cwd)
	if err != nil {
		return Effective{}, &Error{Code: ErrCodeInvalid, Path: cwd, Err: err}
	}

	in := DefaultInputs()

	envPath := filepath.Join(cwdAbs, EnvFileName)
	dotenv, err := readDotenv(envPath)
	if err != nil {
		return Effective{}, &Error{Code: ErrCodeInvalid, Path: envPath, Err: err}
	}
	if err := applyEnv(&in, dotenv); err != nil {
		return Effective{}, &Error{Code: ErrCodeInvalid, Path: envPath, Err: err}
	}
	if err := applyEnv(&in, processEnv()); err != nil {
		return Effective{}, &Error{Code: ErrCodeInvalid, Err: err}
	}

	cfgPath := filepath.Join(cwdAbs, FileName)
	fc, _, err := readFileConfig(cfgPath)
	if err != nil {
		return Effective{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}
	if strings.TrimSpace(fc.FolderPath) != "" {
		in.FolderPath = fc.FolderPath
	}
	if fc.ImageExtensions != nil {
		in.ImageExtensions = *fc.ImageExtensions
	}
	if fc.Index != nil {
		in.Index = *fc.Index
	}

	if strings.TrimSpace(cli.Folder) != "" {
		in.FolderPath = cli.Folder
	}
	if cli.ExtensionsSet {
		in.ImageExtensions = cli.Extensions
	}
	if cli.IndexSet {
		in.Index = cli.Index
	}

	return FromNode(cwdAbs, in)
}

func processEnv() map[string]string {
	out := make(map[string]string, 3)
	for _, k := range []string{EnvFolder, EnvExtensions, EnvIndex} {
		if v, ok := os.LookupEnv(k); ok {
			out[k] = v
		}
	}
	return out
}

func applyEnv(in *NodeInputs, env map[string]string) error {
	if v := strings.TrimSpace(env[EnvFolder]); v != "" {
		in.FolderPath = v
	}
	if v, ok := env[EnvExtensions]; ok && strings.TrimSpace(v) != "" {
		in.ImageExtensions = v
	}
	if v := strings.TrimSpace(env[EnvIndex]); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s 必须是整数，实际是 %q", EnvIndex, v)
		}
		in.Index = n
	}
	return nil
}

// readDotenv 读取 dotenv 文件；不存在返回空 map。
func readDotenv(path string) (map[string]string, error) {
	m, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	return m, nil
}

// absCleanFrom 以 base 为基准，把 p 变为 clean + absolute。
// - p 若已是绝对路径：直接 Clean
// - p 若是相对路径：Join(base, p) 后 Clean
func absCleanFrom(base, p string) string {
	p = filepath.Clean(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(base, p))
}

// readFileConfig 读取并解析 JSON 配置文件。
// 返回值 exists 表示该文件是否存在（不存在不算错误）。
func readFileConfig(path string) (fc FileConfig, exists bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, false, nil
		}
		return FileConfig{}, false, err
	}
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, true, err
	}
	return fc, true, nil
}
