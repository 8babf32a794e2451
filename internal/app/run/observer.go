package run

import (
	"time"

	"github.com/John-Robertt/recentimg/internal/config"
	"github.com/John-Robertt/recentimg/internal/domain"
)

//go:generate mockgen -destination=mock_observer_test.go -package=run -write_package_comment=false . Observer

// Observer 用于把“阶段/结果”事件从选图流程中解耦出来。
//
// 约束：
// - run 包只负责发事件，不做任何输出（避免污染 stdout 的 JSON 契约）。
// - 每次调用严格按 OnStart → OnPhaseDone* → (OnSelected | OnFailed) 的顺序触发。
type Observer interface {
	// OnStart 在调用开始时触发；id 贯穿本次调用的所有事件。
	OnStart(id string, eff config.Effective)
	// OnPhaseDone 在 scan/rank/decode 阶段结束时触发。
	OnPhaseDone(name string, fields map[string]any, dur time.Duration)
	// OnSelected 在成功得到 image/mask 时触发。
	OnSelected(sel domain.Selection, dur time.Duration)
	// OnFailed 在调用失败时触发（不会再有 OnSelected）。
	OnFailed(err error, dur time.Duration)
}
