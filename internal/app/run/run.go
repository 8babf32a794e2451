package run

import (
	"context"
	"errors"
	"math"
	"os"
	"time"

	"github.com/rs/xid"

	"github.com/John-Robertt/recentimg/internal/config"
	"github.com/John-Robertt/recentimg/internal/domain"
	"github.com/John-Robertt/recentimg/internal/infra/imgx"
	"github.com/John-Robertt/recentimg/internal/scan"
)

// Select 按修改时间排名选出 eff.Index 对应的图片，并返回 image/mask。
//
// 每次调用都重新扫描目录，不做任何跨调用缓存；失败时不返回部分结果。
func Select(ctx context.Context, eff config.Effective) (domain.Selection, error) {
	return SelectWithObserver(ctx, eff, nil)
}

// SelectWithObserver 与 Select 相同，但允许传入 Observer 接收阶段/结果事件（obs 可为 nil）。
func SelectWithObserver(ctx context.Context, eff config.Effective, obs Observer) (domain.Selection, error) {
	started := time.Now()
	id := xid.New().String()

	if obs != nil {
		obs.OnStart(id, eff)
	}

	sel, err := selectOne(ctx, id, eff, obs)
	if obs != nil {
		if err != nil {
			obs.OnFailed(err, time.Since(started))
		} else {
			obs.OnSelected(sel, time.Since(started))
		}
	}
	if err != nil {
		return domain.Selection{}, err
	}
	return sel, nil
}

func selectOne(ctx context.Context, id string, eff config.Effective, obs Observer) (domain.Selection, error) {
	files, err := locate(eff, obs)
	if err != nil {
		return domain.Selection{}, err
	}
	picked := files[eff.Index]

	// 解码是唯一可能较慢的阶段；在此之前给宿主一次放弃的机会。
	if err := ctx.Err(); err != nil {
		return domain.Selection{}, err
	}

	decodeStarted := time.Now()
	img, format, err := imgx.DecodeFile(picked.AbsPath)
	if err != nil {
		return domain.Selection{}, &InvalidImageError{Path: picked.AbsPath, Err: err}
	}
	rgb, mask, hasAlpha := imgx.ToTensors(img)

	if obs != nil {
		obs.OnPhaseDone("decode", map[string]any{
			"file":      picked.Name,
			"format":    format,
			"width":     img.Bounds().Dx(),
			"height":    img.Bounds().Dy(),
			"has_alpha": hasAlpha,
		}, time.Since(decodeStarted))
	}

	return domain.Selection{
		ID:         id,
		File:       picked,
		Index:      eff.Index,
		Candidates: len(files),
		Format:     format,
		HasAlpha:   hasAlpha,
		Image:      rgb,
		Mask:       mask,
	}, nil
}

// locate 完成 目录校验 → 扫描 → 排名 → 下标校验，返回已排名的候选列表。
// 返回 nil error 时保证 eff.Index < len(files)。
func locate(eff config.Effective, obs Observer) ([]domain.Candidate, error) {
	fi, err := os.Stat(eff.Folder)
	if err != nil {
		return nil, &InvalidFolderError{Folder: eff.Folder, Err: err}
	}
	if !fi.IsDir() {
		return nil, &InvalidFolderError{Folder: eff.Folder, NotDir: true}
	}

	exts := eff.ExtSet()

	scanStarted := time.Now()
	files, err := scan.ScanImages(eff.Folder, exts)
	if err != nil {
		return nil, &InvalidFolderError{Folder: eff.Folder, Err: err}
	}
	if obs != nil {
		obs.OnPhaseDone("scan", map[string]any{
			"candidates": len(files),
			"extensions": exts.Sorted(),
		}, time.Since(scanStarted))
	}
	if len(files) == 0 {
		return nil, &NoCandidatesError{Folder: eff.Folder, Extensions: exts.Sorted()}
	}

	rankStarted := time.Now()
	scan.Rank(files)
	if obs != nil {
		obs.OnPhaseDone("rank", map[string]any{
			"newest": files[0].Name,
		}, time.Since(rankStarted))
	}

	if eff.Index < 0 || eff.Index >= len(files) {
		return nil, &IndexOutOfRangeError{Index: eff.Index, Available: len(files)}
	}
	return files, nil
}

// Changed 返回当前排名下 eff.Index 对应文件的修改时间（带小数的 Unix 秒）。
//
// 宿主用它判断是否需要重新执行：值变化即视为输入变化。
// 目录不可用、没有候选或下标越界时返回 NaN（NaN 与任何值都不相等，宿主总会重新执行）。
func Changed(eff config.Effective) float64 {
	files, err := locate(eff, nil)
	if err != nil {
		return math.NaN()
	}
	return files[eff.Index].ModSeconds()
}

// Validate 在不构建 tensor 的前提下检查输入是否可用：
// 目录、候选、下标，以及选中文件能否完整解码。返回的错误类型与 Select 一致。
func Validate(eff config.Effective) error {
	files, err := locate(eff, nil)
	if err != nil {
		return err
	}
	picked := files[eff.Index]
	if _, _, err := imgx.DecodeFile(picked.AbsPath); err != nil {
		return &InvalidImageError{Path: picked.AbsPath, Err: err}
	}
	return nil
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
