package sprites

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

// twoPixelFrame is a 2x1 image: red on the left, blue on the right.
func twoPixelFrame(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, blue)
	var buffer bytes.Buffer
	require.NoError(t, png.Encode(&buffer, img))
	return buffer.Bytes()
}

func frameFS(t *testing.T, dir string, skip int) fstest.MapFS {
	t.Helper()
	data := twoPixelFrame(t)
	fsys := fstest.MapFS{}
	for id := 0; id < FrameCount; id++ {
		if id == skip {
			continue
		}
		fsys[dir+"/"+strconv.Itoa(id)+".png"] = &fstest.MapFile{Data: data}
	}
	return fsys
}

func decode(t *testing.T, content []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(content))
	require.NoError(t, err)
	return img
}

func TestLoadScalesFrames(t *testing.T) {
	set, err := Load(frameFS(t, "sprites/Agumon", -1), "sprites/Agumon", 3)
	require.NoError(t, err)

	width, height := set.Size()
	assert.Equal(t, 6, width)
	assert.Equal(t, 3, height)
	assert.Equal(t, "Agumon", set.Name())

	img := decode(t, set.Frame(4, false).Content())
	assert.Equal(t, image.Rect(0, 0, 6, 3), img.Bounds())
	assert.Equal(t, red, color.NRGBAModel.Convert(img.At(2, 2)))
	assert.Equal(t, blue, color.NRGBAModel.Convert(img.At(3, 0)))
}

func TestLoadMirrorsFrames(t *testing.T) {
	set, err := Load(frameFS(t, "pet", -1), "pet", 2)
	require.NoError(t, err)

	img := decode(t, set.Frame(0, true).Content())

	assert.Equal(t, blue, color.NRGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, blue, color.NRGBAModel.Convert(img.At(1, 1)))
	assert.Equal(t, red, color.NRGBAModel.Convert(img.At(3, 0)))
}

func TestLoadMissingFrame(t *testing.T) {
	_, err := Load(frameFS(t, "pet", 7), "pet", 1)

	require.ErrorIs(t, err, ErrMissingFrame)
	assert.Contains(t, err.Error(), "7.png")
}

func TestFrameWrapsIds(t *testing.T) {
	set, err := Load(frameFS(t, "pet", -1), "pet", 1)
	require.NoError(t, err)

	assert.Same(t, set.Frame(1, false), set.Frame(13, false))
	assert.Same(t, set.Frame(11, true), set.Frame(-1, true))
}

func TestPackName(t *testing.T) {
	assert.Equal(t, "Gabumon", PackName("/tmp/Gabumon_penc.zip"))
	assert.Equal(t, "Patamon", PackName("Patamon.zip"))
}

func writePack(t *testing.T, path string, names []string) {
	t.Helper()
	file, err := os.Create(path)
	require.NoError(t, err)
	writer := zip.NewWriter(file)
	data := twoPixelFrame(t)
	for _, name := range names {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	require.NoError(t, file.Close())
}

func frameNames() []string {
	names := make([]string, 0, FrameCount)
	for id := 0; id < FrameCount; id++ {
		names = append(names, strconv.Itoa(id)+".png")
	}
	return names
}

func TestImportExtractsFrames(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "sprites")
	zipPath := filepath.Join(dir, "Gabumon_penc.zip")
	writePack(t, zipPath, append(frameNames(), "readme.txt"))

	name, err := Import(zipPath, root)
	require.NoError(t, err)
	assert.Equal(t, "Gabumon", name)

	set, err := Load(os.DirFS(root), name, 1)
	require.NoError(t, err)
	assert.Equal(t, "Gabumon", set.Name())

	available, err := Available(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gabumon"}, available)
}

func TestImportRejectsIncompletePack(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "Broken.zip")
	writePack(t, zipPath, frameNames()[:11])

	_, err := Import(zipPath, filepath.Join(dir, "sprites"))

	require.ErrorIs(t, err, ErrInvalidPack)
	_, statErr := os.Stat(filepath.Join(dir, "sprites", "Broken"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestImportRejectsWrongNames(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "Odd.zip")
	names := frameNames()
	names[11] = "12.png"
	writePack(t, zipPath, names)

	_, err := Import(zipPath, filepath.Join(dir, "sprites"))

	require.ErrorIs(t, err, ErrInvalidPack)
	assert.Contains(t, err.Error(), "11.png")
}

func TestImportIgnoresNestedFiles(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "Nested.zip")
	writePack(t, zipPath, append(frameNames(), "extra/0.png", ".hidden.png"))

	_, err := Import(zipPath, filepath.Join(dir, "sprites"))

	assert.NoError(t, err)
}

func TestImportTwiceFails(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "sprites")
	zipPath := filepath.Join(dir, "Tentomon.zip")
	writePack(t, zipPath, frameNames())

	_, err := Import(zipPath, root)
	require.NoError(t, err)
	_, err = Import(zipPath, root)

	assert.ErrorIs(t, err, ErrAlreadyImported)
}

func TestAvailableMissingRoot(t *testing.T) {
	names, err := Available(filepath.Join(t.TempDir(), "absent"))

	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "sprites")
	zipPath := filepath.Join(dir, "Palmon.zip")
	writePack(t, zipPath, frameNames())
	_, err := Import(zipPath, root)
	require.NoError(t, err)

	require.NoError(t, Remove(root, "Palmon"))
	assert.ErrorIs(t, Remove(root, ".."), ErrInvalidPack)

	available, err := Available(root)
	require.NoError(t, err)
	assert.Empty(t, available)
}
