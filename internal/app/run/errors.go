package run

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/John-Robertt/recentimg/internal/config"
)

const (
	ErrCodeInvalidFolder   = "invalid_folder"
	ErrCodeNoCandidates    = "no_candidates"
	ErrCodeIndexOutOfRange = "index_out_of_range"
	ErrCodeInvalidImage    = "invalid_image"
	ErrCodeCanceled        = "canceled"
	ErrCodeInternal        = "internal_error"
)

// InvalidFolderError 表示 folder 不存在、不可读或不是目录。
type InvalidFolderError struct {
	Folder string
	NotDir bool
	Err    error
}

func (e *InvalidFolderError) Error() string {
	if e.NotDir {
		return fmt.Sprintf("路径不是目录：%q", e.Folder)
	}
	if e.Err != nil {
		return fmt.Sprintf("目录不可用：%q：%v", e.Folder, e.Err)
	}
	return fmt.Sprintf("目录不可用：%q", e.Folder)
}

func (e *InvalidFolderError) Unwrap() error { return e.Err }

// NoCandidatesError 表示目录中没有任何扩展名匹配的文件。
type NoCandidatesError struct {
	Folder     string
	Extensions []string
}

func (e *NoCandidatesError) Error() string {
	return fmt.Sprintf("目录 %q 中没有找到图片文件（接受的扩展名：%s）；请确认目录与 image_extensions 设置",
		e.Folder, strings.Join(e.Extensions, ","))
}

// IndexOutOfRangeError 表示请求的排名超过了候选数量。
type IndexOutOfRangeError struct {
	Index     int
	Available int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d 超出范围：目录中只有 %d 张图片", e.Index, e.Available)
}

// InvalidImageError 表示选中的文件无法解码为位图（格式错误、截断、正在被写入等）。
// 调用方可在下一次调用时重试；本包不做内部重试。
type InvalidImageError struct {
	Path string
	Err  error
}

func (e *InvalidImageError) Error() string {
	return fmt.Sprintf("无效的图片文件 %s：%v", filepath.Base(e.Path), e.Err)
}

func (e *InvalidImageError) Unwrap() error { return e.Err }

// IsInvalidFolder 同时覆盖未提供 folder_path 的配置错误（config_missing_path）。
func IsInvalidFolder(err error) bool {
	var e *InvalidFolderError
	return errors.As(err, &e) || config.Code(err) == config.ErrCodeMissingPath
}

func IsNoCandidates(err error) bool {
	var e *NoCandidatesError
	return errors.As(err, &e)
}

func IsIndexOutOfRange(err error) bool {
	var e *IndexOutOfRangeError
	return errors.As(err, &e)
}

func IsInvalidImage(err error) bool {
	var e *InvalidImageError
	return errors.As(err, &e)
}

// Code 把 error 映射为稳定的 error_code（供报告使用）。
// 配置错误沿用 config.Code；nil 返回空串。
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case IsInvalidFolder(err):
		return ErrCodeInvalidFolder
	case IsNoCandidates(err):
		return ErrCodeNoCandidates
	case IsIndexOutOfRange(err):
		return ErrCodeIndexOutOfRange
	case IsInvalidImage(err):
		return ErrCodeInvalidImage
	}
	if c := config.Code(err); c != "" {
		return c
	}
	if isCanceled(err) {
		return ErrCodeCanceled
	}
	return ErrCodeInternal
}
