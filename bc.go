package dds

import (
	"encoding/binary"
	"fmt"
)

const (
	blockDim    = 4
	blockTexels = blockDim * blockDim

	bc1BlockSize = 8
	bc2BlockSize = 16
	bc3BlockSize = 16
)

// Texels holds one decoded 4x4 block as row-major RGBA bytes.
type Texels [blockTexels * 4]byte

// bcVariant classifies the block layouts decoded in-package.
type bcVariant uint8

const (
	bcNone bcVariant = iota
	bcColor
	bcExplicitAlpha
	bcInterpolatedAlpha
)

func variantOf(f DXGIFormat) bcVariant {
	switch f {
	case FormatBC1Typeless, FormatBC1Unorm, FormatBC1UnormSrgb:
		return bcColor
	case FormatBC2Typeless, FormatBC2Unorm, FormatBC2UnormSrgb:
		return bcExplicitAlpha
	case FormatBC3Typeless, FormatBC3Unorm, FormatBC3UnormSrgb:
		return bcInterpolatedAlpha
	default:
		return bcNone
	}
}

func (v bcVariant) blockSize() int {
	if v == bcColor {
		return bc1BlockSize
	}

	return bc2BlockSize
}

func rgb565(c uint16) (r, g, b uint32) {
	return uint32(c>>11) & 0x1F, uint32(c>>5) & 0x3F, uint32(c) & 0x1F
}

func pack565(r, g, b uint32) uint16 {
	return uint16(r<<11 | g<<5 | b)
}

// expand565 widens a 5:6:5 color to 8 bits per channel with rounding.
func expand565(c uint16) (r, g, b byte) {
	r5, g6, b5 := rgb565(c)
	return byte((r5*0xFF + 0x0F) / 0x1F), byte((g6*0xFF + 0x1F) / 0x3F), byte((b5*0xFF + 0x0F) / 0x1F)
}

// colorPalette builds the four 5:6:5 palette entries of a color block. With
// punchThrough set and c0 <= c1 (raw 16-bit comparison), entry 2 is the
// midpoint and entry 3 is transparent black.
func colorPalette(c0, c1 uint16, punchThrough bool) (palette [4]uint16, transparent bool) {
	r0, g0, b0 := rgb565(c0)
	r1, g1, b1 := rgb565(c1)
	palette[0] = c0
	palette[1] = c1

	if punchThrough && c0 <= c1 {
		palette[2] = pack565((r0+r1+1)/2, (g0+g1+1)/2, (b0+b1+1)/2)
		palette[3] = 0
		return palette, true
	}

	palette[2] = pack565((2*r0+r1+1)/3, (2*g0+g1+1)/3, (2*b0+b1+1)/3)
	palette[3] = pack565((r0+2*r1+1)/3, (g0+2*g1+1)/3, (b0+2*b1+1)/3)

	return palette, false
}

// decodeColor writes the color part of a block; alpha is 255 except for
// punch-through texels, which become (0,0,0,0).
func decodeColor(out *Texels, block []byte, punchThrough bool) {
	c0 := binary.LittleEndian.Uint16(block[0:])
	c1 := binary.LittleEndian.Uint16(block[2:])
	palette, transparent := colorPalette(c0, c1, punchThrough)

	for j := range blockTexels {
		index := (block[4+j/4] >> ((j % 4) * 2)) & 0x3
		px := out[j*4 : j*4+4]
		if transparent && index == 3 {
			px[0], px[1], px[2], px[3] = 0, 0, 0, 0
			continue
		}
		px[0], px[1], px[2] = expand565(palette[index])
		px[3] = 0xFF
	}
}

// DecodeBC1Block decodes an 8-byte BC1 (DXT1) block. Bytes past the first
// eight are ignored; it panics if block is shorter.
func DecodeBC1Block(block []byte) Texels {
	var out Texels
	decodeColor(&out, block[:bc1BlockSize], true)

	return out
}

// DecodeBC2Block decodes a 16-byte BC2 (DXT3) block with explicit 4-bit alpha.
// It panics if block holds fewer than 16 bytes.
func DecodeBC2Block(block []byte) Texels {
	var out Texels
	block = block[:bc2BlockSize]
	decodeColor(&out, block[8:], false)

	for j := range blockTexels {
		a := uint32(block[j/2]>>((j%2)*4)) & 0xF
		out[j*4+3] = byte((a*0xFF + 0x7) / 0xF)
	}

	return out
}

// alphaPalette builds the eight interpolated alpha values of a BC3 block.
func alphaPalette(a0, a1 uint32) [8]byte {
	var alpha [8]byte
	alpha[0] = byte(a0)
	alpha[1] = byte(a1)

	if a0 > a1 {
		for j := uint32(2); j < 8; j++ {
			alpha[j] = byte((a0*(8-j) + a1*(j-1) + 3) / 7)
		}
		return alpha
	}

	for j := uint32(2); j < 6; j++ {
		alpha[j] = byte((a0*(6-j) + a1*(j-1) + 2) / 5)
	}
	alpha[6] = 0
	alpha[7] = 0xFF

	return alpha
}

// DecodeBC3Block decodes a 16-byte BC3 (DXT5) block with interpolated alpha.
// It panics if block holds fewer than 16 bytes.
func DecodeBC3Block(block []byte) Texels {
	var out Texels
	block = block[:bc3BlockSize]
	decodeColor(&out, block[8:], false)

	alpha := alphaPalette(uint32(block[0]), uint32(block[1]))
	var bits uint64
	for i := 7; i >= 2; i-- {
		bits = bits<<8 | uint64(block[i])
	}
	for j := range blockTexels {
		out[j*4+3] = alpha[(bits>>(3*uint(j)))&0x7]
	}

	return out
}

// DecodeBlocks decompresses a BC1, BC2 or BC3 block grid covering width x
// height pixels into tightly packed RGBA. Texels of partial edge blocks that
// fall outside the image are dropped.
func DecodeBlocks(data []byte, width, height int, format DXGIFormat) ([]byte, error) {
	variant := variantOf(format)
	if variant == bcNone {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidArgument, width, height)
	}

	blocksW := (width + blockDim - 1) / blockDim
	blocksH := (height + blockDim - 1) / blockDim
	size := variant.blockSize()
	if need := blocksW * blocksH * size; len(data) < need {
		return nil, fmt.Errorf("%w: need %d block bytes, have %d", ErrShortRead, need, len(data))
	}

	out := make([]byte, width*height*4)
	for by := range blocksH {
		for bx := range blocksW {
			block := data[(by*blocksW+bx)*size:]

			var texels Texels
			switch variant {
			case bcColor:
				texels = DecodeBC1Block(block)
			case bcExplicitAlpha:
				texels = DecodeBC2Block(block)
			case bcInterpolatedAlpha:
				texels = DecodeBC3Block(block)
			}

			for j := range blockTexels {
				x := bx*blockDim + j%blockDim
				y := by*blockDim + j/blockDim
				if x >= width || y >= height {
					continue
				}
				copy(out[(y*width+x)*4:], texels[j*4:j*4+4])
			}
		}
	}

	return out, nil
}
