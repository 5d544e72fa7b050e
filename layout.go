package dds

// PixelLayout is the layout of decoded pixel bytes handed to callers.
type PixelLayout uint8

// Decoded pixel layouts.
const (
	LayoutUndefined PixelLayout = iota
	LayoutAlpha8
	LayoutGray8
	LayoutGray16
	LayoutGrayHalf16
	LayoutGrayFloat32
	LayoutBGR565
	LayoutBGR555
	LayoutBGRA5551
	LayoutBGR24
	LayoutRGB24
	LayoutRGBA32
	LayoutPRGBA32
	LayoutBGRA32
	LayoutPBGRA32
	LayoutRGB32
	LayoutBGR32
	LayoutR10G10B10A2
	LayoutRGBA1010102
	LayoutRGBA1010102XR
	LayoutRGBE32
	LayoutFourChannels32
	LayoutRGBA64
	LayoutRGBAHalf64
	LayoutRGBFloat96
	LayoutRGBAFloat128
)

type layoutInfo struct {
	name          string
	channels      string
	bitsPerPixel  uint32
	premultiplied bool
}

var layoutTable = [...]layoutInfo{
	LayoutUndefined:      {name: "undefined"},
	LayoutAlpha8:         {name: "8bppAlpha", channels: "A", bitsPerPixel: 8},
	LayoutGray8:          {name: "8bppGray", channels: "Y", bitsPerPixel: 8},
	LayoutGray16:         {name: "16bppGray", channels: "Y", bitsPerPixel: 16},
	LayoutGrayHalf16:     {name: "16bppGrayHalf", channels: "Y", bitsPerPixel: 16},
	LayoutGrayFloat32:    {name: "32bppGrayFloat", channels: "Y", bitsPerPixel: 32},
	LayoutBGR565:         {name: "16bppBGR565", channels: "BGR", bitsPerPixel: 16},
	LayoutBGR555:         {name: "16bppBGR555", channels: "BGR", bitsPerPixel: 16},
	LayoutBGRA5551:       {name: "16bppBGRA5551", channels: "BGRA", bitsPerPixel: 16},
	LayoutBGR24:          {name: "24bppBGR", channels: "BGR", bitsPerPixel: 24},
	LayoutRGB24:          {name: "24bppRGB", channels: "RGB", bitsPerPixel: 24},
	LayoutRGBA32:         {name: "32bppRGBA", channels: "RGBA", bitsPerPixel: 32},
	LayoutPRGBA32:        {name: "32bppPRGBA", channels: "RGBA", bitsPerPixel: 32, premultiplied: true},
	LayoutBGRA32:         {name: "32bppBGRA", channels: "BGRA", bitsPerPixel: 32},
	LayoutPBGRA32:        {name: "32bppPBGRA", channels: "BGRA", bitsPerPixel: 32, premultiplied: true},
	LayoutRGB32:          {name: "32bppRGB", channels: "RGBX", bitsPerPixel: 32},
	LayoutBGR32:          {name: "32bppBGR", channels: "BGRX", bitsPerPixel: 32},
	LayoutR10G10B10A2:    {name: "32bppR10G10B10A2", channels: "RGBA", bitsPerPixel: 32},
	LayoutRGBA1010102:    {name: "32bppRGBA1010102", channels: "RGBA", bitsPerPixel: 32},
	LayoutRGBA1010102XR:  {name: "32bppRGBA1010102XR", channels: "RGBA", bitsPerPixel: 32},
	LayoutRGBE32:         {name: "32bppRGBE", channels: "RGBE", bitsPerPixel: 32},
	LayoutFourChannels32: {name: "32bpp4Channels", channels: "CCCC", bitsPerPixel: 32},
	LayoutRGBA64:         {name: "64bppRGBA", channels: "RGBA", bitsPerPixel: 64},
	LayoutRGBAHalf64:     {name: "64bppRGBAHalf", channels: "RGBA", bitsPerPixel: 64},
	LayoutRGBFloat96:     {name: "96bppRGBFloat", channels: "RGB", bitsPerPixel: 96},
	LayoutRGBAFloat128:   {name: "128bppRGBAFloat", channels: "RGBA", bitsPerPixel: 128},
}

func (l PixelLayout) info() layoutInfo {
	if int(l) < len(layoutTable) {
		return layoutTable[l]
	}

	return layoutTable[LayoutUndefined]
}

// String returns the layout name.
func (l PixelLayout) String() string { return l.info().name }

// Channels returns the channel order of one pixel, lowest byte first.
func (l PixelLayout) Channels() string { return l.info().channels }

// BitsPerPixel returns the pixel size in bits, 0 for LayoutUndefined.
func (l PixelLayout) BitsPerPixel() uint32 { return l.info().bitsPerPixel }

// Premultiplied reports whether color channels are premultiplied by alpha.
func (l PixelLayout) Premultiplied() bool { return l.info().premultiplied }
