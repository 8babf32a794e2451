package imgx

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // 注册 BMP 解码器
	_ "golang.org/x/image/tiff" // 注册 TIFF 解码器
	_ "golang.org/x/image/webp" // 注册 WEBP 解码器（imaging 本身不带）

	"github.com/John-Robertt/recentimg/internal/domain"
)

// ErrEmpty 表示文件为空（常见于另一个进程刚创建、尚未写入）。
var ErrEmpty = errors.New("图片文件为空")

// UnsupportedFormatError 表示文件能被识别，但格式不在允许列表内。
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("不支持的图片格式：%s", e.Format)
}

// supported 是允许的解码格式（image.Decode 返回的格式名）。
var supported = map[string]struct{}{
	"jpeg": {},
	"png":  {},
	"bmp":  {},
	"tiff": {},
	"webp": {},
	"gif":  {},
}

// Supported 判断格式名是否在允许列表内。
func Supported(format string) bool {
	_, ok := supported[format]
	return ok
}

// DecodeFile 读取并完整解码 path 指向的图片。
//
// 约束：
// - 先 DecodeConfig 嗅探格式并校验允许列表，再完整解码像素
// - 截断/损坏的数据必须以 error 返回（完整解码会读到末尾）
// - GIF 只取第一帧
func DecodeFile(path string) (image.Image, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return Decode(b)
}

// Decode 与 DecodeFile 相同，但输入是已读入内存的字节。
func Decode(b []byte) (image.Image, string, error) {
	if len(b) == 0 {
		return nil, "", ErrEmpty
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return nil, "", err
	}
	if !Supported(format) {
		return nil, format, &UnsupportedFormatError{Format: format}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, format, fmt.Errorf("图片尺寸无效：%dx%d", cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, format, err
	}
	return img, format, nil
}

// HasAlpha 判断图片是否带有效的透明通道。
//
// 完全不透明的 RGBA（例如无 tRNS 的真彩 PNG，Go 也会解成 *image.RGBA）视为无 alpha；
// 两种处理得到的 mask 完全相同（全 1）。
func HasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	return true
}

// ToTensors 把图片转换为 image tensor [1,H,W,3] 与 mask tensor [1,H,W]，数值 0.0–1.0。
//
// - 灰度/调色板/CMYK/YCbCr 统一转为 RGB
// - 有 alpha：mask = alpha/255；否则 mask 全 1
// - RGB 取非预乘值（与“丢弃 alpha 通道”语义一致）
func ToTensors(img image.Image) (rgb, mask domain.Tensor, hasAlpha bool) {
	hasAlpha = HasAlpha(img)

	// Clone 统一得到 Min=(0,0) 的 *image.NRGBA（非预乘，8-bit）。
	src := imaging.Clone(img)
	b := src.Bounds()
	h, w := b.Dy(), b.Dx()

	rgb = domain.NewTensor(1, h, w, 3)
	mask = domain.NewTensor(1, h, w)

	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			p := row[x*4 : x*4+4]
			for c := 0; c < 3; c++ {
				rgb.Set(float32(p[c])/255, 0, y, x, c)
			}

			a := float32(1)
			if hasAlpha {
				a = float32(p[3]) / 255
			}
			mask.Set(a, 0, y, x)
		}
	}
	return rgb, mask, hasAlpha
}
