package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/recentimg/internal/domain"
)

func TestParseExtensions_Normalizes(t *testing.T) {
	set := ParseExtensions(" .PNG, jpg ,,Jpeg")

	assert.Equal(t, []string{"jpeg", "jpg", "png"}, set.Sorted())
	assert.True(t, set.Has(".JPG"))
	assert.False(t, set.Has("gif"))
}

func TestParseExtensions_EmptyFallsBackToDefault(t *testing.T) {
	set := ParseExtensions(" , ")
	for _, e := range DefaultExtensions {
		assert.True(t, set.Has(e), "默认集合应包含 %q", e)
	}
}

func TestScanImages_FiltersExtAndSkipsDirs(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.png"))
	touch(t, filepath.Join(root, "b.jpg"))
	touch(t, filepath.Join(root, "c.txt"))
	touch(t, filepath.Join(root, "noext"))
	require.NoError(t, os.Mkdir(filepath.Join(root, "d.png"), 0o755))
	touch(t, filepath.Join(root, "sub", "e.png"))

	got, err := ScanImages(root, ParseExtensions("png,jpg"))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "a.png", got[0].Name)
	assert.Equal(t, "png", got[0].Ext)
	assert.Equal(t, filepath.Join(root, "a.png"), got[0].AbsPath)
	assert.Equal(t, "b.jpg", got[1].Name)
}

func TestScanImages_SkipsDotFiles(t *testing.T) {
	root := t.TempDir()
	now := time.Now()
	touchAt(t, filepath.Join(root, "IMG.jpg"), now.Add(-time.Hour))
	touchAt(t, filepath.Join(root, "._IMG.jpg"), now)
	touchAt(t, filepath.Join(root, ".hidden.png"), now)

	got, err := ScanImages(root, ParseExtensions("jpg,png"))
	require.NoError(t, err)
	require.Len(t, got, 1, "隐藏文件与 AppleDouble 旁路文件不应成为候选")
	assert.Equal(t, "IMG.jpg", got[0].Name)
}

func TestScanImages_ExtCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "PHOTO.JPG"))

	got, err := ScanImages(root, ParseExtensions("jpg"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "jpg", got[0].Ext)
	assert.Equal(t, "PHOTO.JPG", got[0].Name)
}

func TestScanImages_FollowsSymlinkAndSkipsDangling(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(t.TempDir(), "real.png")
	touch(t, target)
	if err := os.Symlink(target, filepath.Join(root, "link.png")); err != nil {
		t.Skipf("当前平台不支持 symlink：%v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.png"), filepath.Join(root, "dangling.png")))

	got, err := ScanImages(root, ParseExtensions("png"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "link.png", got[0].Name)
}

func TestScanImages_MissingFolder(t *testing.T) {
	_, err := ScanImages(filepath.Join(t.TempDir(), "nope"), ParseExtensions("png"))
	assert.True(t, os.IsNotExist(err))
}

func TestRank_NewestFirstWithNameTieBreak(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	files := []domain.Candidate{
		{Name: "old.png", ModTime: base},
		{Name: "z.png", ModTime: base.Add(time.Minute)},
		{Name: "a.png", ModTime: base.Add(time.Minute)},
		{Name: "new.png", ModTime: base.Add(time.Hour)},
	}

	Rank(files)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"new.png", "a.png", "z.png", "old.png"}, names)
}

func TestScanThenRank_UsesFilesystemMtime(t *testing.T) {
	root := t.TempDir()
	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	touchAt(t, filepath.Join(root, "a.png"), base)
	touchAt(t, filepath.Join(root, "b.jpg"), base.Add(10*time.Second))

	got, err := ScanImages(root, ParseExtensions("png,jpg"))
	require.NoError(t, err)
	Rank(got)

	require.Len(t, got, 2)
	assert.Equal(t, "b.jpg", got[0].Name)
	assert.Equal(t, "a.png", got[1].Name)
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "创建目录失败")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644), "写入文件失败")
}

func touchAt(t *testing.T, path string, mt time.Time) {
	t.Helper()
	touch(t, path)
	require.NoError(t, os.Chtimes(path, mt, mt), "设置 mtime 失败")
}
