package main

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/John-Robertt/recentimg/internal/app/run"
	"github.com/John-Robertt/recentimg/internal/config"
	"github.com/John-Robertt/recentimg/internal/domain"
)

var _ run.Observer = (*logObserver)(nil)

// logObserver 把 run 的事件转成结构化日志（写 stderr，不污染 stdout 的 JSON）。
// 阶段明细只在 --verbose 时可见。
type logObserver struct {
	base  *logrus.Logger
	entry *logrus.Entry
}

func newLogObserver(log *logrus.Logger) *logObserver {
	return &logObserver{base: log, entry: logrus.NewEntry(log)}
}

func (o *logObserver) OnStart(id string, eff config.Effective) {
	o.entry = o.base.WithField("call_id", id)
	o.entry.WithFields(logrus.Fields{
		"folder":     eff.Folder,
		"extensions": eff.Extensions,
		"index":      eff.Index,
	}).Debug("开始选图")
}

func (o *logObserver) OnPhaseDone(name string, fields map[string]any, dur time.Duration) {
	o.entry.WithFields(logrus.Fields(fields)).
		WithField("phase", name).
		WithField("dur", dur.Round(time.Microsecond)).
		Debug("阶段完成")
}

func (o *logObserver) OnSelected(sel domain.Selection, dur time.Duration) {
	h, w := sel.Size()
	o.entry.WithFields(logrus.Fields{
		"file":       sel.File.AbsPath,
		"index":      sel.Index,
		"candidates": sel.Candidates,
		"size":       []int{h, w},
		"has_alpha":  sel.HasAlpha,
		"dur":        dur.Round(time.Microsecond),
	}).Info("已选中图片")
}

func (o *logObserver) OnFailed(err error, dur time.Duration) {
	o.entry.WithFields(logrus.Fields{
		"error_code": run.Code(err),
		"dur":        dur.Round(time.Microsecond),
	}).WithError(err).Warn("选图失败")
}
