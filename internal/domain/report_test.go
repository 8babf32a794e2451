package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectReport_ApplyThenFinalize(t *testing.T) {
	img := NewTensor(1, 2, 2, 3)
	mask := NewTensor(1, 2, 2)
	for i := range mask.Data {
		mask.Data[i] = 0.5
	}

	r := SelectReport{
		Folder:     "/abs/in",
		Index:      1,
		StartedAt:  time.Date(2026, 2, 9, 10, 0, 0, 0, time.FixedZone("X", 8*3600)),
		FinishedAt: time.Date(2026, 2, 9, 10, 0, 1, 0, time.FixedZone("X", 8*3600)),
	}
	r.Apply(Selection{
		ID:         "cid",
		File:       Candidate{AbsPath: "/abs/in/a.png", Name: "a.png", Ext: "png"},
		Index:      1,
		Candidates: 3,
		Format:     "png",
		HasAlpha:   true,
		Image:      img,
		Mask:       mask,
	})
	r.Finalize()

	assert.Equal(t, StatusSelected, r.Status)
	assert.Equal(t, []int{1, 2, 2, 3}, r.ImageShape)
	assert.Equal(t, []int{1, 2, 2}, r.MaskShape)
	assert.InDelta(t, 0.5, r.MaskMean, 1e-9)
	assert.Equal(t, []string{}, r.Extensions)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	// time.Time 在 UTC 下应输出 'Z' 后缀。
	assert.Contains(t, string(b), `"started_at":"2026-02-09T02:00:00Z"`)
}

func TestSelectReport_FailDropsPartialResult(t *testing.T) {
	r := SelectReport{}
	r.Apply(Selection{
		File:  Candidate{AbsPath: "/x.png"},
		Image: NewTensor(1, 1, 1, 3),
		Mask:  NewTensor(1, 1, 1),
	})
	r.Fail("invalid_image", "broken")
	r.Finalize()

	assert.Equal(t, StatusFailed, r.Status)
	assert.Equal(t, "invalid_image", r.ErrorCode)
	assert.Empty(t, r.File)
	assert.Equal(t, []int{}, r.ImageShape)
	assert.Equal(t, []int{}, r.MaskShape)
}
