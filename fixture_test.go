package dds

import (
	"bytes"
	"encoding/binary"
	"math/rand/v2"
	"testing"
)

// fixture describes a synthetic container built in-test.
type fixture struct {
	width, height uint32
	depth, mips   uint32
	pf            PixelFormat
	caps2         uint32
	dx10          *HeaderDX10
	headerSize    uint32
}

var (
	pfDXT1   = fourCC(makeFourCC('D', 'X', 'T', '1'))
	pfDXT3   = fourCC(makeFourCC('D', 'X', 'T', '3'))
	pfDXT5   = fourCC(makeFourCC('D', 'X', 'T', '5'))
	pfBGRA8  = legacy(PFRGB|PFAlphaPixels, 0, 32, 0xFF0000, 0xFF00, 0xFF, 0xFF000000)
	pfRGBA8  = legacy(PFRGB|PFAlphaPixels, 0, 32, 0xFF, 0xFF00, 0xFF0000, 0xFF000000)
	pfBGR24  = legacy(PFRGB, 0, 24, 0xFF0000, 0xFF00, 0xFF, 0)
	pfGray8  = legacy(PFLuminance, 0, 8, 0xFF, 0, 0, 0)
	pfDX10   = fourCC(fourCCDX10)
	pfBGR565 = legacy(PFRGB, 0, 16, 0xF800, 0x7E0, 0x1F, 0)
)

// headers encodes the magic, the primary header and the optional DX10 header.
func (f fixture) headers() []byte {
	le := binary.LittleEndian

	buf := make([]byte, 4+HeaderSize)
	le.PutUint32(buf[0:], Magic)

	h := buf[4:]
	size := f.headerSize
	if size == 0 {
		size = HeaderSize
	}
	flags := FlagCaps | FlagHeight | FlagWidth | FlagPixelFormat
	if f.mips > 1 {
		flags |= FlagMipmapCount
	}
	if f.depth > 1 {
		flags |= FlagDepth
	}
	le.PutUint32(h[0:], size)
	le.PutUint32(h[4:], flags)
	le.PutUint32(h[8:], f.height)
	le.PutUint32(h[12:], f.width)
	le.PutUint32(h[20:], f.depth)
	le.PutUint32(h[24:], f.mips)

	pf := f.pf
	if f.dx10 != nil {
		pf = pfDX10
	}
	p := h[72:]
	le.PutUint32(p[0:], pixelFormatSize)
	le.PutUint32(p[4:], pf.Flags)
	le.PutUint32(p[8:], pf.FourCC)
	le.PutUint32(p[12:], pf.RGBBitCount)
	le.PutUint32(p[16:], pf.RBitMask)
	le.PutUint32(p[20:], pf.GBitMask)
	le.PutUint32(p[24:], pf.BBitMask)
	le.PutUint32(p[28:], pf.ABitMask)

	caps := CapsTexture
	if f.mips > 1 {
		caps |= CapsComplex | CapsMipmap
	}
	le.PutUint32(h[104:], caps)
	le.PutUint32(h[108:], f.caps2)

	if f.dx10 != nil {
		ext := make([]byte, HeaderDX10Size)
		le.PutUint32(ext[0:], uint32(f.dx10.DXGIFormat))
		le.PutUint32(ext[4:], f.dx10.ResourceDimension)
		le.PutUint32(ext[8:], f.dx10.MiscFlag)
		le.PutUint32(ext[12:], f.dx10.ArraySize)
		le.PutUint32(ext[16:], f.dx10.MiscFlags2)
		buf = append(buf, ext...)
	}

	return buf
}

// build appends a payload of the exact size required by every subresource.
// Each subresource is filled with its own frame number so overlaps show up.
func (f fixture) build(t testing.TB) []byte {
	t.Helper()

	data := f.headers()
	info, err := Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Parse fixture: %v", err)
	}

	size := streamSize(t, &info)
	out := make([]byte, size)
	copy(out, data)
	for frame := range info.FrameCount {
		a, m, s, err := info.FrameAt(frame)
		if err != nil {
			t.Fatalf("FrameAt(%d): %v", frame, err)
		}
		sub, err := info.Locate(a, m, s)
		if err != nil {
			t.Fatalf("Locate(%d,%d,%d): %v", a, m, s, err)
		}
		for i := sub.Offset; i < sub.Offset+sub.ByteSize; i++ {
			out[i] = byte(frame + 1)
		}
	}

	return out
}

// streamSize is the header size plus every subresource of every element.
func streamSize(t testing.TB, info *ContainerInfo) uint64 {
	t.Helper()

	var element uint64
	for level := range info.MipLevels {
		sub, err := info.Locate(0, level, 0)
		if err != nil {
			t.Fatalf("Locate(0,%d,0): %v", level, err)
		}
		element += sub.ByteSize * uint64(max(1, info.Depth>>level))
	}

	return uint64(info.DataOffset) + element*info.elementCount()
}

// withPayload appends payload to the headers of f.
func (f fixture) withPayload(payload []byte) []byte {
	return append(f.headers(), payload...)
}

// bc1Solid encodes a BC1 block with both endpoints set to c (all indices 0).
func bc1Solid(c uint16) []byte {
	b := make([]byte, bc1BlockSize)
	binary.LittleEndian.PutUint16(b[0:], c)
	binary.LittleEndian.PutUint16(b[2:], c)
	return b
}

// repeatBlock tiles one encoded block n times.
func repeatBlock(block []byte, n int) []byte {
	return bytes.Repeat(block, n)
}

// newTestRand returns a deterministic generator for synthetic block data.
func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}
