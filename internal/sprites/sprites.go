package sprites

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"path"
	"strconv"

	"fyne.io/fyne/v2"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// FrameCount is the number of frames in a sprite set: 0.png through 11.png.
const FrameCount = 12

// ErrMissingFrame is returned when a sprite set lacks one of its frames.
var ErrMissingFrame = errors.New("missing sprite frame")

// Set holds the scaled frames of one pet, facing left and mirrored.
type Set struct {
	name     string
	width    int
	height   int
	frames   []fyne.Resource
	mirrored []fyne.Resource
}

// Load reads frames 0.png..11.png from dir in fsys and scales them by scale
// using nearest neighbour sampling.
func Load(fsys fs.FS, dir string, scale int) (*Set, error) {
	if scale < 1 {
		scale = 1
	}
	set := &Set{
		name:     path.Base(dir),
		frames:   make([]fyne.Resource, FrameCount),
		mirrored: make([]fyne.Resource, FrameCount),
	}

	for id := 0; id < FrameCount; id++ {
		fileName := path.Join(dir, frameFileName(id))
		data, err := fs.ReadFile(fsys, fileName)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load sprite %s: %w", fileName, ErrMissingFrame)
			}
			return nil, fmt.Errorf("read sprite %s: %w", fileName, err)
		}
		source, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode sprite %s: %w", fileName, err)
		}

		scaled := scaleImage(source, scale, false)
		flipped := scaleImage(source, scale, true)
		if id == 0 {
			set.width = scaled.Bounds().Dx()
			set.height = scaled.Bounds().Dy()
		}

		if set.frames[id], err = encodeResource(fmt.Sprintf("%s-%d.png", set.name, id), scaled); err != nil {
			return nil, err
		}
		if set.mirrored[id], err = encodeResource(fmt.Sprintf("%s-%d-mirrored.png", set.name, id), flipped); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Frame returns the resource for a frame. Out-of-range ids wrap.
func (set *Set) Frame(id int, mirrored bool) fyne.Resource {
	id %= FrameCount
	if id < 0 {
		id += FrameCount
	}
	if mirrored {
		return set.mirrored[id]
	}
	return set.frames[id]
}

// Name returns the pet name, taken from the directory name.
func (set *Set) Name() string {
	return set.name
}

// Size returns the scaled frame size in pixels.
func (set *Set) Size() (int, int) {
	return set.width, set.height
}

func frameFileName(id int) string {
	return strconv.Itoa(id) + ".png"
}

func scaleImage(source image.Image, scale int, mirror bool) *image.NRGBA {
	bounds := source.Bounds()
	width := bounds.Dx() * scale
	height := bounds.Dy() * scale
	target := image.NewNRGBA(image.Rect(0, 0, width, height))

	factor := float64(scale)
	transform := f64.Aff3{
		factor, 0, -factor * float64(bounds.Min.X),
		0, factor, -factor * float64(bounds.Min.Y),
	}
	if mirror {
		transform[0] = -factor
		transform[2] = factor * float64(bounds.Max.X)
	}
	draw.NearestNeighbor.Transform(target, transform, source, bounds, draw.Src, nil)
	return target
}

func encodeResource(name string, img image.Image) (fyne.Resource, error) {
	var buffer bytes.Buffer
	if err := png.Encode(&buffer, img); err != nil {
		return nil, fmt.Errorf("encode sprite %s: %w", name, err)
	}
	return fyne.NewStaticResource(name, buffer.Bytes()), nil
}
