package dds

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/woozymasta/bcn"
)

// Dimension is the resource dimension of a container.
type Dimension uint8

// Resource dimensions.
const (
	Texture1D Dimension = iota
	Texture2D
	Texture3D
	TextureCube
)

func (d Dimension) String() string {
	switch d {
	case Texture1D:
		return "1D"
	case Texture2D:
		return "2D"
	case Texture3D:
		return "3D"
	case TextureCube:
		return "cube"
	default:
		return fmt.Sprintf("Dimension(%d)", uint8(d))
	}
}

// AlphaMode describes how alpha is stored.
type AlphaMode uint32

// Alpha modes.
const (
	AlphaModeUnknown AlphaMode = iota
	AlphaModeStraight
	AlphaModePremultiplied
	AlphaModeOpaque
	AlphaModeCustom
)

func (a AlphaMode) String() string {
	switch a {
	case AlphaModeUnknown:
		return "unknown"
	case AlphaModeStraight:
		return "straight"
	case AlphaModePremultiplied:
		return "premultiplied"
	case AlphaModeOpaque:
		return "opaque"
	case AlphaModeCustom:
		return "custom"
	default:
		return fmt.Sprintf("AlphaMode(%d)", uint32(a))
	}
}

// Options configures parsing and decoding. Nil means defaults.
type Options struct {
	// Logger receives debug records. Nil disables logging.
	Logger *slog.Logger
	// DecodeOptions are passed to the BCn decoder used for BC4/BC5 (e.g. Workers).
	DecodeOptions *bcn.DecodeOptions
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return o.Logger
}

func (o *Options) decodeOptions() *bcn.DecodeOptions {
	if o == nil {
		return nil
	}

	return o.DecodeOptions
}

// ContainerInfo describes a whole texture set. It is immutable once Parse returns.
type ContainerInfo struct {
	Width     uint32
	Height    uint32
	Depth     uint32
	MipLevels uint32
	ArraySize uint32
	Dimension Dimension
	AlphaMode AlphaMode
	Format    DXGIFormat
	// Layout and LayoutBits describe decoded pixels handed out by CopyPixels.
	Layout     PixelLayout
	LayoutBits uint32
	// BytesPerBlock is the size of a 4x4 block, or of one pixel for uncompressed formats.
	BytesPerBlock uint32
	// DataOffset is the byte offset of the first subresource.
	DataOffset uint32
	// FrameCount is the total number of subresources.
	FrameCount uint32
	// Extended reports whether a DX10 header was present.
	Extended bool
	// FourCC is the legacy pixel-format code, 0 when absent.
	FourCC uint32
}

// Parse reads the headers from the start of r and resolves the container.
func Parse(r io.ReadSeeker) (ContainerInfo, error) {
	return ParseWithOptions(r, nil)
}

// ParseWithOptions is Parse with logging options.
func ParseWithOptions(r io.ReadSeeker, opts *Options) (ContainerInfo, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return ContainerInfo{}, fmt.Errorf("%w: %w", ErrSeekHeader, err)
	}

	header, dx10, err := readHeaders(r)
	if err != nil {
		return ContainerInfo{}, err
	}

	info, err := newContainerInfo(header, dx10)
	if err != nil {
		return ContainerInfo{}, err
	}
	log := opts.logger()
	if full := maxMipLevels(info.Width, info.Height, info.Depth); info.MipLevels > full {
		log.Debug("mip count exceeds full chain", "mips", info.MipLevels, "full", full)
	}
	log.Debug("parsed DDS container",
		"width", info.Width,
		"height", info.Height,
		"depth", info.Depth,
		"mips", info.MipLevels,
		"array", info.ArraySize,
		"dimension", info.Dimension,
		"format", info.Format,
		"fourcc", fourCCString(info.FourCC),
		"layout", info.Layout,
		"frames", info.FrameCount,
	)

	return info, nil
}

func newContainerInfo(header *Header, dx10 *HeaderDX10) (ContainerInfo, error) {
	info := ContainerInfo{
		Width:     header.Width,
		Height:    header.Height,
		Depth:     1,
		MipLevels: 1,
		ArraySize: 1,
	}
	if header.Depth != 0 {
		info.Depth = header.Depth
	}
	if header.MipMapCount != 0 {
		info.MipLevels = header.MipMapCount
	}
	if header.PixelFormat.Flags&PFFourCC != 0 {
		info.FourCC = header.PixelFormat.FourCC
	}

	if dx10 != nil {
		if dx10.ArraySize != 0 {
			info.ArraySize = dx10.ArraySize
		}
		info.Extended = true
		info.Dimension = dimensionDX10(dx10)
		info.AlphaMode = AlphaMode(dx10.MiscFlags2 & miscFlags2AlphaModeMask)
		info.DataOffset = 4 + HeaderSize + HeaderDX10Size

		entry := ResolveModern(DXGIFormat(dx10.DXGIFormat))
		if info.AlphaMode == AlphaModePremultiplied {
			switch {
			case entry.Layout == LayoutRGBA32 && entry.Format.IsCompressed():
				entry.Layout = LayoutPRGBA32
			case entry.Layout == LayoutBGRA32:
				entry.Layout = LayoutPBGRA32
			}
		}
		info.Format = entry.Format
		info.Layout = entry.Layout
		info.LayoutBits = entry.LayoutBits
	} else {
		entry := ResolveLegacy(header.PixelFormat)
		info.Dimension = dimensionLegacy(header)
		info.AlphaMode = alphaModeFromFourCC(header.PixelFormat.FourCC)
		info.DataOffset = 4 + HeaderSize
		info.Format = entry.Format
		info.Layout = entry.Layout
		info.LayoutBits = entry.LayoutBits
	}

	// Producers of uncompressed legacy files are trusted over the catalog.
	if header.PixelFormat.Flags&(PFRGB|PFAlpha|PFLuminance) != 0 {
		info.BytesPerBlock = header.PixelFormat.RGBBitCount / 8
	} else {
		info.BytesPerBlock = info.Format.BytesPerBlock()
	}

	count, ok := frameCount(info.Depth, info.MipLevels, info.ArraySize, info.Dimension)
	if !ok {
		return ContainerInfo{}, fmt.Errorf("%w: frame count of %d mips x %d elements exceeds 32 bits",
			ErrBadHeader, info.MipLevels, info.ArraySize)
	}
	info.FrameCount = count

	return info, nil
}

func dimensionDX10(dx10 *HeaderDX10) Dimension {
	if dx10.MiscFlag&MiscTextureCube != 0 {
		return TextureCube
	}

	switch dx10.ResourceDimension {
	case ResourceDimensionTexture1D:
		return Texture1D
	case ResourceDimensionTexture3D:
		return Texture3D
	default:
		return Texture2D
	}
}

func dimensionLegacy(header *Header) Dimension {
	switch {
	case header.Caps2&Caps2Cubemap != 0:
		return TextureCube
	case header.Caps2&Caps2Volume != 0:
		return Texture3D
	default:
		return Texture2D
	}
}

// frameCount sums depth slices over the mip chain (depth halves, floor 1),
// times array size, times 6 for cube maps. ok is false when the total does
// not fit in 32 bits.
func frameCount(depth, mipLevels, arraySize uint32, dim Dimension) (count uint32, ok bool) {
	var perElement uint64
	d, level := depth, uint32(0)
	for ; level < mipLevels && d > 1; level++ {
		perElement += uint64(d)
		d /= 2
	}
	perElement += uint64(mipLevels - level)

	if perElement > math.MaxUint32 {
		return 0, false
	}
	total := perElement * uint64(arraySize)
	if dim == TextureCube {
		if total > math.MaxUint32 {
			return 0, false
		}
		total *= 6
	}
	if total > math.MaxUint32 {
		return 0, false
	}

	return uint32(total), true
}

// IsCompressed reports whether subresources are stored as 4x4 blocks.
func (info *ContainerInfo) IsCompressed() bool {
	return info.Format.IsCompressed()
}

// blockSize returns the block width and height in pixels.
func (info *ContainerInfo) blockSize() (uint32, uint32) {
	if info.IsCompressed() {
		return blockDim, blockDim
	}

	return 1, 1
}

// elementCount is the number of addressable array elements (faces count separately).
func (info *ContainerInfo) elementCount() uint64 {
	n := uint64(info.ArraySize)
	if info.Dimension == TextureCube {
		n *= 6
	}

	return n
}

// FrameAt maps a flat frame index to its array index, mip level and slice.
func (info *ContainerInfo) FrameAt(index uint32) (arrayIndex, mipLevel, sliceIndex uint32, err error) {
	if index >= info.FrameCount || info.ArraySize == 0 {
		return 0, 0, 0, fmt.Errorf("%w: frame %d of %d", ErrOutOfRange, index, info.FrameCount)
	}

	perTexture := info.FrameCount / info.ArraySize
	if info.Dimension == TextureCube {
		perTexture = info.MipLevels
	}
	if perTexture == 0 {
		return 0, 0, 0, fmt.Errorf("%w: frame %d of %d over %d elements", ErrOutOfRange, index, info.FrameCount, info.ArraySize)
	}

	arrayIndex = index / perTexture
	sliceIndex = index % perTexture
	depth := max(info.Depth, 1)
	for sliceIndex >= depth {
		if depth == 1 {
			mipLevel += sliceIndex
			sliceIndex = 0
			break
		}
		sliceIndex -= depth
		mipLevel++
		depth /= 2
	}

	return arrayIndex, mipLevel, sliceIndex, nil
}
