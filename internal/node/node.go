// Package node 把选图操作以“节点”的形式暴露给宿主：声明输入 schema、输出槽位，
// 并把宿主传入的动态值一次性解码为强类型配置。
package node

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/John-Robertt/recentimg/internal/config"
	"github.com/John-Robertt/recentimg/internal/domain"
)

// 输入/输出类型名（与宿主约定的 socket 类型一致）。
const (
	TypeString = "STRING"
	TypeInt    = "INT"
	TypeImage  = "IMAGE"
	TypeMask   = "MASK"
)

// Values 是宿主传入的动态输入（key 为 InputSpec.Name）。
type Values map[string]any

// InputSpec 描述一个输入 socket。
type InputSpec struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Default     any    `json:"default"`
	Min         *int   `json:"min,omitempty"`
	Max         *int   `json:"max,omitempty"`
	Step        int    `json:"step,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}

// OutputSpec 描述一个输出 socket。
type OutputSpec struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Definition 是一个可注册的节点。
//
// Run 返回的 tensor 与 Outputs 一一对应；Changed 返回 NaN 表示“总是重新执行”。
type Definition struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name"`
	Category    string       `json:"category"`
	Inputs      []InputSpec  `json:"inputs"`
	Outputs     []OutputSpec `json:"outputs"`

	Run      func(ctx context.Context, v Values) ([]domain.Tensor, error) `json:"-"`
	Changed  func(v Values) float64                                       `json:"-"`
	Validate func(v Values) error                                         `json:"-"`
}

// Defaults 返回 schema 中声明的默认值（只含有默认值的输入）。
func (d Definition) Defaults() Values {
	out := make(Values, len(d.Inputs))
	for _, in := range d.Inputs {
		if in.Default != nil {
			out[in.Name] = in.Default
		}
	}
	return out
}

// decodeInputs 把宿主动态值解码为 NodeInputs：先铺默认值，再覆盖宿主值。
//
// - 弱类型：允许 "3" → 3、3.0 → 3（宿主 UI 常把数字当字符串传）
// - 未知 key 直接报错，避免拼写错误被静默忽略
func decodeInputs(d Definition, v Values) (config.NodeInputs, error) {
	merged := d.Defaults()
	for k, val := range v {
		merged[k] = val
	}

	var in config.NodeInputs
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &in,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return config.NodeInputs{}, err
	}
	if err := dec.Decode(map[string]any(merged)); err != nil {
		return config.NodeInputs{}, &config.Error{Code: config.ErrCodeInvalid, Err: fmt.Errorf("节点 %s 输入无效：%w", d.Name, err)}
	}
	return in, nil
}

func intPtr(v int) *int { return &v }
