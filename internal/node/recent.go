package node

import (
	"context"
	"math"

	"github.com/John-Robertt/recentimg/internal/app/run"
	"github.com/John-Robertt/recentimg/internal/config"
	"github.com/John-Robertt/recentimg/internal/domain"
)

// MostRecentImageName 是选图节点的注册名。
const MostRecentImageName = "LoadMostRecentImage"

// LoadMostRecentImage 返回选图节点定义。base 用于解析相对的 folder_path（通常是 cwd）。
func LoadMostRecentImage(base string) Definition {
	d := Definition{
		Name:        MostRecentImageName,
		DisplayName: "Load Most Recent Image",
		Category:    "image",
		Inputs: []InputSpec{
			{
				Name:        "folder_path",
				Type:        TypeString,
				Required:    true,
				Default:     "",
				Placeholder: "Enter folder path...",
			},
			{
				Name:        "image_extensions",
				Type:        TypeString,
				Default:     config.DefaultExtensions,
				Placeholder: "Comma-separated extensions",
			},
			{
				Name:    "index",
				Type:    TypeInt,
				Default: config.DefaultIndex,
				Min:     intPtr(0),
				Max:     intPtr(config.MaxIndex),
				Step:    1,
			},
		},
		Outputs: []OutputSpec{
			{Name: "image", Type: TypeImage},
			{Name: "mask", Type: TypeMask},
		},
	}

	resolve := func(v Values) (config.Effective, error) {
		in, err := decodeInputs(d, v)
		if err != nil {
			return config.Effective{}, err
		}
		return config.FromNode(base, in)
	}

	d.Run = func(ctx context.Context, v Values) ([]domain.Tensor, error) {
		eff, err := resolve(v)
		if err != nil {
			return nil, err
		}
		sel, err := run.Select(ctx, eff)
		if err != nil {
			return nil, err
		}
		return []domain.Tensor{sel.Image, sel.Mask}, nil
	}
	d.Changed = func(v Values) float64 {
		eff, err := resolve(v)
		if err != nil {
			return math.NaN()
		}
		return run.Changed(eff)
	}
	d.Validate = func(v Values) error {
		eff, err := resolve(v)
		if err != nil {
			return err
		}
		return run.Validate(eff)
	}
	return d
}
