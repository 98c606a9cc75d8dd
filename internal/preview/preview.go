// Package preview draws a patched zobj as a grid of 8-byte cells so the
// alias table placement can be checked at a glance.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"

	"zobj-alias-compiler/internal/alias"
	"zobj-alias-compiler/internal/gbi"
)

// CellSize is the number of zobj bytes drawn as one cell.
const CellSize = gbi.InstrSize

// Layout describes what to draw.
type Layout struct {
	Zobj       []byte
	PoolOffset uint32
	PoolSize   uint32
	Spans      []alias.Span // offsets relative to PoolOffset
}

var (
	colPool        = color.NRGBA{0x20, 0x20, 0x50, 0xFF}
	colPlaceholder = color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}
	colUnknown     = color.NRGBA{0x80, 0x80, 0x80, 0xFF}

	spanColors = map[string]color.NRGBA{
		gbi.FnCallList:      {0x30, 0x70, 0xFF, 0xFF},
		gbi.FnCallMatrix:    {0x30, 0xD0, 0x60, 0xFF},
		gbi.FnPopMatrix:     {0xF0, 0xD0, 0x30, 0xFF},
		gbi.FnMatrix:        {0xE0, 0x40, 0xE0, 0xFF},
		gbi.FnHexString:     {0xFF, 0x90, 0x20, 0xFF},
		alias.SpanHierarchy: {0xE0, 0x30, 0x30, 0xFF},
	}
)

// Render returns the layout as an image width cells wide, each cell
// scale×scale pixels. Model data is drawn in grey by mean byte value.
func Render(l Layout, width, scale int) *image.NRGBA {
	if width <= 0 {
		width = 64
	}
	if scale <= 0 {
		scale = 1
	}
	cells := (len(l.Zobj) + CellSize - 1) / CellSize
	height := (cells + width - 1) / width
	if height == 0 {
		height = 1
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	set := func(cell int, c color.NRGBA) {
		if cell >= 0 && cell < cells {
			img.SetNRGBA(cell%width, cell/width, c)
		}
	}

	for i := 0; i < cells; i++ {
		set(i, grey(l.Zobj[i*CellSize:min((i+1)*CellSize, len(l.Zobj))]))
	}

	base := int(l.PoolOffset)
	for off := base; off < base+int(l.PoolSize); off += CellSize {
		set(off/CellSize, colPool)
	}
	for _, s := range l.Spans {
		c, ok := spanColors[s.Fn]
		if !ok {
			c = colUnknown
		}
		for off := base + s.Offset; off < base+s.Offset+s.Len; off += CellSize {
			set(off/CellSize, c)
		}
	}
	if len(l.Zobj) >= CellSize {
		set((len(l.Zobj)-CellSize)/CellSize, colPlaceholder)
	}

	if scale == 1 {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width*scale, height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func grey(b []byte) color.NRGBA {
	sum := 0
	for _, v := range b {
		sum += int(v)
	}
	g := uint8(0x10 + sum/len(b)*0x60/0xFF)
	return color.NRGBA{g, g, g, 0xFF}
}

// Encode writes img as "webp" or "tga".
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "webp":
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("preview: webp encode: %w", err)
		}
	case "tga":
		if err := tga.Encode(w, img); err != nil {
			return fmt.Errorf("preview: tga encode: %w", err)
		}
	default:
		return fmt.Errorf("preview: unknown format %q", format)
	}
	return nil
}
