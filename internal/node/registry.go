package node

import (
	"fmt"
	"sort"
	"strings"
)

// Registry 是节点的只读注册表（按 name 索引，大小写不敏感）。
// 节点数量极小，map 即可。
type Registry struct {
	byName map[string]Definition
}

func NewRegistry(defs ...Definition) (Registry, error) {
	byName := make(map[string]Definition, len(defs))
	for _, d := range defs {
		name := strings.ToLower(strings.TrimSpace(d.Name))
		if name == "" {
			return Registry{}, fmt.Errorf("node.Name 不能为空")
		}
		if d.Run == nil {
			return Registry{}, fmt.Errorf("节点 %q 缺少 Run", d.Name)
		}
		if _, ok := byName[name]; ok {
			return Registry{}, fmt.Errorf("重复的节点：%q", d.Name)
		}
		byName[name] = d
	}
	return Registry{byName: byName}, nil
}

func (r Registry) Get(name string) (Definition, bool) {
	if r.byName == nil {
		return Definition{}, false
	}
	d, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// List 按 Name 排序返回全部节点（输出稳定）。
func (r Registry) List() []Definition {
	out := make([]Definition, 0, len(r.byName))
	for _, d := range r.byName {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DisplayNames 返回 name → display name 映射。
func (r Registry) DisplayNames() map[string]string {
	out := make(map[string]string, len(r.byName))
	for _, d := range r.byName {
		out[d.Name] = d.DisplayName
	}
	return out
}

// Default 返回内置节点的注册表。
func Default() Registry {
	r, err := NewRegistry(LoadMostRecentImage(""))
	if err != nil {
		// 内置定义是静态的；走到这里属于编程错误。
		panic(err)
	}
	return r
}
