package dds

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/woozymasta/bcn"
)

const (
	// Magic is the "DDS " marker at offset 0.
	Magic = bcn.DDSMagic

	// HeaderSize is the declared size of the primary header.
	HeaderSize = bcn.DDSHeaderSize
	// HeaderDX10Size is the size of the extended header.
	HeaderDX10Size = 20

	pixelFormatSize = bcn.DDSPixelFormatSize
	fourCCDX10      = bcn.DDSFourCCDX10
)

// Primary header flags.
const (
	FlagCaps        uint32 = bcn.DDSFlagCaps
	FlagHeight      uint32 = bcn.DDSFlagHeight
	FlagWidth       uint32 = bcn.DDSFlagWidth
	FlagPitch       uint32 = bcn.DDSFlagPitch
	FlagPixelFormat uint32 = bcn.DDSFlagPixelFormat
	FlagMipmapCount uint32 = bcn.DDSFlagMipmapCount
	FlagLinearSize  uint32 = bcn.DDSFlagLinearSize
	FlagDepth       uint32 = bcn.DDSFlagDepth
)

// Capability bits.
const (
	CapsComplex uint32 = bcn.DDSCapsComplex
	CapsTexture uint32 = bcn.DDSCapsTexture
	CapsMipmap  uint32 = bcn.DDSCapsMipmap

	Caps2Cubemap uint32 = bcn.DDSCaps2Cubemap
	Caps2Volume  uint32 = 0x200000
)

// Extended header values.
const (
	ResourceDimensionTexture1D uint32 = 2
	ResourceDimensionTexture2D uint32 = 3
	ResourceDimensionTexture3D uint32 = 4

	MiscTextureCube uint32 = 0x4

	miscFlags2AlphaModeMask uint32 = 0x7
)

// Header is the primary header following the magic.
type Header = bcn.DDSHeader

// HeaderDX10 is the extended header present when the pixel format carries
// the "DX10" FourCC.
type HeaderDX10 = bcn.DDSHeaderDX10

// hasExtendedHeader reports whether a DX10 header follows the primary header.
func hasExtendedHeader(h *Header) bool {
	return h.PixelFormat.Flags&PFFourCC != 0 && h.PixelFormat.FourCC == fourCCDX10
}

// readStruct decodes a little-endian header and maps a premature end to
// ErrTruncated.
func readStruct(r io.Reader, v any, what string) error {
	if err := binary.Read(r, binary.LittleEndian, v); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %s: %w", ErrTruncated, what, err)
		}
		return fmt.Errorf("reading %s: %w", what, err)
	}

	return nil
}

// readHeaders reads magic, primary header and the optional extended header
// from the current position. Unlike bcn.ReadDDSHeader it accepts any declared
// pixel-format size and reports truncation separately from a bad header.
func readHeaders(r io.Reader) (*Header, *HeaderDX10, error) {
	var magic uint32
	if err := readStruct(r, &magic, "magic"); err != nil {
		return nil, nil, err
	}
	if magic != Magic {
		return nil, nil, fmt.Errorf("%w: 0x%08x", ErrBadMagic, magic)
	}

	var header Header
	if err := readStruct(r, &header, "header"); err != nil {
		return nil, nil, err
	}
	if header.Size != HeaderSize {
		return nil, nil, fmt.Errorf("%w: declared size %d", ErrBadHeader, header.Size)
	}

	if !hasExtendedHeader(&header) {
		return &header, nil, nil
	}

	var ext HeaderDX10
	if err := readStruct(r, &ext, "DX10 header"); err != nil {
		return nil, nil, err
	}

	return &header, &ext, nil
}
