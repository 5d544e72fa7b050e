package dds

import "github.com/woozymasta/bcn"

// Pixel format flags of the legacy descriptor.
const (
	PFAlphaPixels     uint32 = bcn.DDSPFAlphaPixels
	PFAlpha           uint32 = bcn.DDSPFAlpha
	PFFourCC          uint32 = bcn.DDSPFFourCC
	PFPaletteIndexed8 uint32 = 0x00000020
	PFRGB             uint32 = bcn.DDSPFRGB
	PFLuminance       uint32 = bcn.DDSPFLuminance
	PFBumpDuDv        uint32 = 0x00080000
)

// PixelFormat is the legacy pixel-format descriptor embedded in the primary header.
type PixelFormat = bcn.DDSPixelFormat

// FormatEntry is one row of the format catalog.
type FormatEntry struct {
	Descriptor PixelFormat
	Layout     PixelLayout
	// LayoutBits is the decoded pixel size in bits; 0 means the layout cannot be exposed.
	LayoutBits uint32
	Format     DXGIFormat
}

func legacy(flags, fourCC, bits, r, g, b, a uint32) PixelFormat {
	return PixelFormat{
		Size:        pixelFormatSize,
		Flags:       flags,
		FourCC:      fourCC,
		RGBBitCount: bits,
		RBitMask:    r,
		GBitMask:    g,
		BBitMask:    b,
		ABitMask:    a,
	}
}

func fourCC(code uint32) PixelFormat {
	return legacy(PFFourCC, code, 0, 0, 0, 0, 0)
}

// formatTable is searched in order; the first structural match wins. Rows with
// a zero descriptor never match a legacy lookup and serve ResolveModern only.
var formatTable = [...]FormatEntry{
	{fourCC(makeFourCC('D', 'X', 'T', '1')), LayoutPRGBA32, 32, FormatBC1Unorm},
	{fourCC(makeFourCC('D', 'X', 'T', '2')), LayoutPRGBA32, 32, FormatBC2Unorm},
	{fourCC(makeFourCC('D', 'X', 'T', '3')), LayoutRGBA32, 32, FormatBC2Unorm},
	{fourCC(makeFourCC('D', 'X', 'T', '4')), LayoutPRGBA32, 32, FormatBC3Unorm},
	{fourCC(makeFourCC('D', 'X', 'T', '5')), LayoutRGBA32, 32, FormatBC3Unorm},
	{fourCC(makeFourCC('B', 'C', '4', 'U')), LayoutRGBA32, 32, FormatBC4Unorm},
	{fourCC(makeFourCC('B', 'C', '4', 'S')), LayoutRGBA32, 32, FormatBC4Snorm},
	{fourCC(makeFourCC('B', 'C', '5', 'U')), LayoutRGBA32, 32, FormatBC5Unorm},
	{fourCC(makeFourCC('B', 'C', '5', 'S')), LayoutRGBA32, 32, FormatBC5Snorm},
	{fourCC(makeFourCC('A', 'T', 'I', '1')), LayoutRGBA32, 32, FormatBC4Unorm},
	{fourCC(makeFourCC('A', 'T', 'I', '2')), LayoutRGBA32, 32, FormatBC5Unorm},
	{fourCC(makeFourCC('R', 'G', 'B', 'G')), LayoutFourChannels32, 32, FormatR8G8B8G8Unorm},
	{fourCC(makeFourCC('G', 'R', 'G', 'B')), LayoutFourChannels32, 32, FormatG8R8G8B8Unorm},
	{fourCC(fourCCDX10), LayoutUndefined, 0, FormatUnknown},
	// D3DFMT numeric codes stored in the FourCC field.
	{fourCC(0x24), LayoutRGBA64, 64, FormatR16G16B16A16Unorm},
	{fourCC(0x6E), LayoutRGBA64, 64, FormatR16G16B16A16Snorm},
	{fourCC(0x6F), LayoutGrayHalf16, 16, FormatR16Float},
	{fourCC(0x70), LayoutUndefined, 0, FormatR16G16Float},
	{fourCC(0x71), LayoutRGBAHalf64, 64, FormatR16G16B16A16Float},
	{fourCC(0x72), LayoutGrayFloat32, 32, FormatR32Float},
	{fourCC(0x73), LayoutUndefined, 32, FormatR32G32Float},
	{fourCC(0x74), LayoutRGBAFloat128, 128, FormatR32G32B32A32Float},
	{legacy(PFRGB, 0, 32, 0xFF, 0xFF00, 0xFF0000, 0xFF000000), LayoutRGBA32, 32, FormatR8G8B8A8Unorm},
	{legacy(PFRGB, 0, 32, 0xFF, 0xFF00, 0xFF0000, 0), LayoutRGB32, 32, FormatUnknown},
	{legacy(PFRGB, 0, 32, 0xFF0000, 0xFF00, 0xFF, 0xFF000000), LayoutBGRA32, 32, FormatB8G8R8A8Unorm},
	{legacy(PFRGB, 0, 32, 0xFF0000, 0xFF00, 0xFF, 0), LayoutBGR32, 32, FormatB8G8R8X8Unorm},
	// Writers historically swapped the red and blue masks of R10G10B10A2.
	{legacy(PFRGB, 0, 32, 0x3FF00000, 0xFFC00, 0x3FF, 0xC0000000), LayoutR10G10B10A2, 32, FormatR10G10B10A2Unorm},
	{legacy(PFRGB, 0, 32, 0x3FF, 0xFFC00, 0x3FF00000, 0xC0000000), LayoutRGBA1010102, 32, FormatUnknown},
	{legacy(PFRGB, 0, 32, 0xFFFF, 0xFFFF0000, 0, 0), LayoutUndefined, 0, FormatR16G16Unorm},
	{legacy(PFRGB, 0, 32, 0xFFFFFFFF, 0, 0, 0), LayoutGrayFloat32, 32, FormatR32Float},
	{legacy(PFRGB, 0, 24, 0xFF0000, 0x00FF00, 0x0000FF, 0), LayoutBGR24, 24, FormatUnknown},
	{legacy(PFRGB, 0, 24, 0x0000FF, 0x00FF00, 0xFF0000, 0), LayoutRGB24, 24, FormatUnknown},
	{legacy(PFRGB, 0, 16, 0xF800, 0x7E0, 0x1F, 0), LayoutBGR565, 16, FormatB5G6R5Unorm},
	{legacy(PFRGB, 0, 16, 0x7C00, 0x3E0, 0x1F, 0), LayoutBGR555, 16, FormatUnknown},
	{legacy(PFRGB, 0, 16, 0x7C00, 0x3E0, 0x1F, 0x8000), LayoutBGRA5551, 16, FormatB5G5R5A1Unorm},
	{legacy(PFRGB, 0, 16, 0xF00, 0xF0, 0xF, 0xF000), LayoutUndefined, 0, FormatB4G4R4A4Unorm},
	{legacy(PFAlpha, 0, 8, 0, 0, 0, 0xFF), LayoutAlpha8, 8, FormatA8Unorm},
	{legacy(PFLuminance, 0, 16, 0xFFFF, 0, 0, 0), LayoutGray16, 16, FormatR16Unorm},
	{legacy(PFLuminance, 0, 16, 0xFF, 0, 0, 0xFF00), LayoutUndefined, 0, FormatR8G8Unorm},
	{legacy(PFLuminance, 0, 8, 0xFF, 0, 0, 0), LayoutGray8, 8, FormatR8Unorm},
	{Layout: LayoutAlpha8, LayoutBits: 8, Format: FormatA8Unorm},
	{Layout: LayoutGray8, LayoutBits: 8, Format: FormatR8Unorm},
	{Layout: LayoutGray16, LayoutBits: 16, Format: FormatR16Unorm},
	{Layout: LayoutGrayHalf16, LayoutBits: 16, Format: FormatR16Float},
	{Layout: LayoutBGR565, LayoutBits: 16, Format: FormatB5G6R5Unorm},
	{Layout: LayoutBGRA5551, LayoutBits: 16, Format: FormatB5G5R5A1Unorm},
	{Layout: LayoutGrayFloat32, LayoutBits: 32, Format: FormatR32Float},
	{Layout: LayoutRGBA32, LayoutBits: 32, Format: FormatR8G8B8A8Unorm},
	{Layout: LayoutBGRA32, LayoutBits: 32, Format: FormatB8G8R8A8Unorm},
	{Layout: LayoutBGR32, LayoutBits: 32, Format: FormatB8G8R8X8Unorm},
	{Layout: LayoutR10G10B10A2, LayoutBits: 32, Format: FormatR10G10B10A2Unorm},
	{Layout: LayoutRGBE32, LayoutBits: 32, Format: FormatR9G9B9E5Sharedexp},
	{Layout: LayoutRGBA1010102XR, LayoutBits: 32, Format: FormatR10G10B10XRBiasA2Unorm},
	{Layout: LayoutRGBA64, LayoutBits: 64, Format: FormatR16G16B16A16Unorm},
	{Layout: LayoutRGBAHalf64, LayoutBits: 64, Format: FormatR16G16B16A16Float},
	{Layout: LayoutRGBFloat96, LayoutBits: 96, Format: FormatR32G32B32Float},
	{Layout: LayoutRGBAFloat128, LayoutBits: 128, Format: FormatR32G32B32A32Float},
	{Layout: LayoutUndefined, LayoutBits: 0, Format: FormatUnknown},
}

// undefinedEntry is returned when no descriptor matches.
var undefinedEntry = formatTable[len(formatTable)-1]

// ResolveLegacy maps a legacy descriptor to a catalog entry. A descriptor
// matches when its flags share a bit with the row's flags and the FourCC, bit
// count and all four masks are equal. Without a match the undefined entry
// (FormatUnknown, zero layout bits) is returned.
func ResolveLegacy(pf PixelFormat) FormatEntry {
	for _, e := range formatTable {
		d := e.Descriptor
		if pf.Flags&d.Flags != 0 &&
			pf.FourCC == d.FourCC &&
			pf.RGBBitCount == d.RGBBitCount &&
			pf.RBitMask == d.RBitMask &&
			pf.GBitMask == d.GBitMask &&
			pf.BBitMask == d.BBitMask &&
			pf.ABitMask == d.ABitMask {
			return e
		}
	}

	return undefinedEntry
}

// ResolveModern maps a DXGI format id from the extended header to a catalog
// entry. Block-compressed formats decode to 32-bit RGBA; other formats take
// the layout of their catalog row and the bit size of one stored pixel.
func ResolveModern(format DXGIFormat) FormatEntry {
	if format.IsCompressed() {
		return FormatEntry{Layout: LayoutRGBA32, LayoutBits: 32, Format: format}
	}

	layout := LayoutUndefined
	for _, e := range formatTable {
		if e.Descriptor.Size == 0 && e.Format == format {
			layout = e.Layout
			break
		}
	}

	return FormatEntry{Layout: layout, LayoutBits: format.BytesPerBlock() * 8, Format: format}
}

// IsCompressed reports whether the format stores 4x4 texel blocks.
func (f DXGIFormat) IsCompressed() bool {
	switch f {
	case FormatBC1Typeless, FormatBC1Unorm, FormatBC1UnormSrgb,
		FormatBC2Typeless, FormatBC2Unorm, FormatBC2UnormSrgb,
		FormatBC3Typeless, FormatBC3Unorm, FormatBC3UnormSrgb,
		FormatBC4Typeless, FormatBC4Unorm, FormatBC4Snorm,
		FormatBC5Typeless, FormatBC5Unorm, FormatBC5Snorm,
		FormatBC6HTypeless, FormatBC6HUF16, FormatBC6HSF16,
		FormatBC7Typeless, FormatBC7Unorm, FormatBC7UnormSrgb:
		return true
	default:
		return false
	}
}

// BytesPerBlock returns the size of one 4x4 block for compressed formats and
// the size of one pixel otherwise. It returns 0 when the format cannot be decoded.
func (f DXGIFormat) BytesPerBlock() uint32 {
	switch f {
	case FormatR8Typeless, FormatR8Unorm, FormatR8Uint, FormatR8Snorm, FormatR8Sint,
		FormatA8Unorm:
		return 1
	case FormatR8G8Typeless, FormatR8G8Unorm, FormatR8G8Uint, FormatR8G8Snorm, FormatR8G8Sint,
		FormatR16Typeless, FormatR16Float, FormatD16Unorm, FormatR16Unorm, FormatR16Uint,
		FormatR16Snorm, FormatR16Sint,
		FormatB5G6R5Unorm, FormatB5G5R5A1Unorm, FormatB4G4R4A4Unorm:
		return 2
	case FormatR10G10B10A2Typeless, FormatR10G10B10A2Unorm, FormatR10G10B10A2Uint,
		FormatR11G11B10Float,
		FormatR8G8B8A8Typeless, FormatR8G8B8A8Unorm, FormatR8G8B8A8UnormSrgb,
		FormatR8G8B8A8Uint, FormatR8G8B8A8Snorm, FormatR8G8B8A8Sint,
		FormatR16G16Typeless, FormatR16G16Float, FormatR16G16Unorm, FormatR16G16Uint,
		FormatR16G16Snorm, FormatR16G16Sint,
		FormatR32Typeless, FormatD32Float, FormatR32Float, FormatR32Uint, FormatR32Sint,
		FormatR24G8Typeless, FormatD24UnormS8Uint, FormatR24UnormX8Typeless, FormatX24TypelessG8Uint,
		FormatR9G9B9E5Sharedexp, FormatR8G8B8G8Unorm, FormatG8R8G8B8Unorm,
		FormatB8G8R8A8Unorm, FormatB8G8R8X8Unorm, FormatR10G10B10XRBiasA2Unorm,
		FormatB8G8R8A8Typeless, FormatB8G8R8A8UnormSrgb, FormatB8G8R8X8Typeless, FormatB8G8R8X8UnormSrgb:
		return 4
	case FormatBC1Typeless, FormatBC1Unorm, FormatBC1UnormSrgb,
		FormatBC4Typeless, FormatBC4Unorm, FormatBC4Snorm,
		FormatR16G16B16A16Typeless, FormatR16G16B16A16Float, FormatR16G16B16A16Unorm,
		FormatR16G16B16A16Uint, FormatR16G16B16A16Snorm, FormatR16G16B16A16Sint,
		FormatR32G32Typeless, FormatR32G32Float, FormatR32G32Uint, FormatR32G32Sint,
		FormatR32G8X24Typeless, FormatD32FloatS8X24Uint, FormatR32FloatX8X24Typeless, FormatX32TypelessG8X24Uint:
		return 8
	case FormatR32G32B32Typeless, FormatR32G32B32Float, FormatR32G32B32Uint, FormatR32G32B32Sint:
		return 12
	case FormatBC2Typeless, FormatBC2Unorm, FormatBC2UnormSrgb,
		FormatBC3Typeless, FormatBC3Unorm, FormatBC3UnormSrgb,
		FormatBC5Typeless, FormatBC5Unorm, FormatBC5Snorm,
		FormatBC6HTypeless, FormatBC6HUF16, FormatBC6HSF16,
		FormatBC7Typeless, FormatBC7Unorm, FormatBC7UnormSrgb,
		FormatR32G32B32A32Typeless, FormatR32G32B32A32Float, FormatR32G32B32A32Uint, FormatR32G32B32A32Sint:
		return 16
	default:
		return 0
	}
}

// alphaModeFromFourCC returns the alpha mode implied by a legacy FourCC.
func alphaModeFromFourCC(code uint32) AlphaMode {
	switch code {
	case makeFourCC('D', 'X', 'T', '1'), makeFourCC('D', 'X', 'T', '2'), makeFourCC('D', 'X', 'T', '4'):
		return AlphaModePremultiplied
	default:
		return AlphaModeUnknown
	}
}

func makeFourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// fourCCString renders a FourCC code as text.
func fourCCString(value uint32) string {
	return string([]byte{
		byte(value & 0xff),
		byte((value >> 8) & 0xff),
		byte((value >> 16) & 0xff),
		byte((value >> 24) & 0xff),
	})
}
