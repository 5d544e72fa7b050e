package dds

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/draw"
)

// Image converts the decoded subresource into an *image.NRGBA. Layouts that
// do not map onto 8-bit channels return ErrUnsupportedFormat.
func (d *SubresourceDecoder) Image() (image.Image, error) {
	w, h := d.Size()
	layout := d.info.Layout
	bpp := int(d.info.LayoutBits / 8)
	if !imageLayout(layout) || bpp == 0 {
		return nil, fmt.Errorf("%w: no image conversion for %s", ErrUnsupportedFormat, layout)
	}

	stride := w * bpp
	pix := make([]byte, stride*h)
	if err := d.CopyPixels(nil, pix, stride); err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	switch layout {
	case LayoutRGBA32:
		copy(img.Pix, pix)
	case LayoutPRGBA32:
		premul := &image.RGBA{Pix: pix, Stride: stride, Rect: img.Rect}
		draw.Draw(img, img.Rect, premul, image.Point{}, draw.Src)
	case LayoutPBGRA32:
		swapRB(pix)
		premul := &image.RGBA{Pix: pix, Stride: stride, Rect: img.Rect}
		draw.Draw(img, img.Rect, premul, image.Point{}, draw.Src)
	default:
		for i := range w * h {
			img.Pix[i*4], img.Pix[i*4+1], img.Pix[i*4+2], img.Pix[i*4+3] = pixelNRGBA(layout, pix[i*bpp:i*bpp+bpp])
		}
	}

	return img, nil
}

func imageLayout(l PixelLayout) bool {
	switch l {
	case LayoutRGBA32, LayoutPRGBA32, LayoutBGRA32, LayoutPBGRA32, LayoutRGB32, LayoutBGR32,
		LayoutRGB24, LayoutBGR24, LayoutBGR565, LayoutBGR555, LayoutBGRA5551,
		LayoutGray8, LayoutGray16, LayoutAlpha8:
		return true
	default:
		return false
	}
}

// pixelNRGBA converts one stored pixel to straight 8-bit RGBA.
func pixelNRGBA(l PixelLayout, p []byte) (r, g, b, a byte) {
	switch l {
	case LayoutBGRA32:
		return p[2], p[1], p[0], p[3]
	case LayoutBGR32, LayoutBGR24:
		return p[2], p[1], p[0], 0xFF
	case LayoutRGB32, LayoutRGB24:
		return p[0], p[1], p[2], 0xFF
	case LayoutBGR565:
		r, g, b = expand565(binary.LittleEndian.Uint16(p))
		return r, g, b, 0xFF
	case LayoutBGR555, LayoutBGRA5551:
		v := binary.LittleEndian.Uint16(p)
		r, g, b = expand5(v>>10), expand5(v>>5), expand5(v)
		a = 0xFF
		if l == LayoutBGRA5551 && v&0x8000 == 0 {
			a = 0
		}
		return r, g, b, a
	case LayoutGray8:
		return p[0], p[0], p[0], 0xFF
	case LayoutGray16:
		y := byte(binary.LittleEndian.Uint16(p) >> 8)
		return y, y, y, 0xFF
	case LayoutAlpha8:
		return 0, 0, 0, p[0]
	default:
		return 0, 0, 0, 0
	}
}

func expand5(v uint16) byte {
	c := uint32(v) & 0x1F
	return byte((c*0xFF + 0x0F) / 0x1F)
}

func swapRB(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}
