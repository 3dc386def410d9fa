package render

import (
	"bufio"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// cropPad is the margin kept around content by CropTight, in inches.
const cropPad = 0.1

// Output describes a written image.
type Output struct {
	Path   string
	Width  int
	Height int
	Bytes  int64
}

// minRenderDPI is the lowest resolution text is drawn at. Glyph placement
// snaps to whole pixels, which swallows word spaces at small DPI, so lower
// resolutions are drawn at an integer multiple and scaled down.
const minRenderDPI = 192

// supersample returns the integer factor that lifts dpi to minRenderDPI.
func supersample(dpi int) int {
	return max(1, (minRenderDPI+dpi-1)/dpi)
}

// Rasterize draws p onto a Width x Height canvas and returns it at the
// options' DPI.
func Rasterize(p *plot.Plot, opts Options) (*image.RGBA, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	k := supersample(opts.DPI)
	c := vgimg.NewWith(
		vgimg.UseWH(opts.Width, opts.Height),
		vgimg.UseDPI(opts.DPI*k),
		vgimg.UseBackgroundColor(color.White),
	)
	p.Draw(draw.New(c))

	w, h := opts.PixelSize()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	src := c.Image()
	if k == 1 && src.Bounds().Size() == dst.Bounds().Size() {
		xdraw.Copy(dst, image.Point{}, src, src.Bounds(), xdraw.Src, nil)
		return dst, nil
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// Encode rasterizes p and writes it to w as PNG, cropping per opts.Crop.
// It returns the pixel size of the written image.
func Encode(w io.Writer, p *plot.Plot, opts Options) (image.Rectangle, error) {
	rgba, err := Rasterize(p, opts)
	if err != nil {
		return image.Rectangle{}, err
	}
	var img image.Image = rgba
	if opts.Crop == CropTight {
		pad := int(math.Round(cropPad * float64(opts.DPI)))
		img = TightCrop(rgba, color.White, pad)
	}

	bw := bufio.NewWriter(w)
	if err := png.Encode(bw, img); err != nil {
		return image.Rectangle{}, errors.Wrap(err, "render: encoding png")
	}
	if err := bw.Flush(); err != nil {
		return image.Rectangle{}, errors.Wrap(err, "render: encoding png")
	}
	return img.Bounds(), nil
}

// Save writes p as a PNG file at path, replacing any existing file.
func Save(p *plot.Plot, opts Options, path string) (Output, error) {
	f, err := os.Create(path)
	if err != nil {
		return Output{}, errors.Wrapf(err, "render: creating %s", path)
	}
	bounds, err := Encode(f, p, opts)
	if err != nil {
		_ = f.Close()
		return Output{}, err
	}
	if err := f.Close(); err != nil {
		return Output{}, errors.Wrapf(err, "render: closing %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return Output{}, errors.Wrapf(err, "render: stat %s", path)
	}
	return Output{
		Path:   path,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Bytes:  info.Size(),
	}, nil
}

// TightCrop returns the smallest sub-image of img holding every pixel that
// differs from bg, grown by pad pixels on each side and clamped to img's
// bounds. An image with no content is returned unchanged.
func TightCrop(img image.Image, bg color.Color, pad int) image.Image {
	b := img.Bounds()
	bgR, bgG, bgB, bgA := bg.RGBA()
	var content image.Rectangle
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			if r == bgR && g == bgG && bl == bgB && a == bgA {
				continue
			}
			// Union ignores empty rectangles, so the first pixel seeds content.
			content = content.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	if content.Empty() {
		return img
	}
	content = image.Rect(content.Min.X-pad, content.Min.Y-pad, content.Max.X+pad, content.Max.Y+pad).Intersect(b)

	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	if si, ok := img.(subImager); ok {
		return si.SubImage(content)
	}
	out := image.NewRGBA(image.Rect(0, 0, content.Dx(), content.Dy()))
	for y := content.Min.Y; y < content.Max.Y; y++ {
		for x := content.Min.X; x < content.Max.X; x++ {
			out.Set(x-content.Min.X, y-content.Min.Y, img.At(x, y))
		}
	}
	return out
}
