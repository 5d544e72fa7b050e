package dds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func TestParseErrors(t *testing.T) {
	t.Parallel()

	valid := fixture{width: 4, height: 4, pf: pfDXT1}.headers()
	badMagic := bytes.Clone(valid)
	badMagic[0] = 'X'
	dx10 := fixture{width: 4, height: 4, dx10: &HeaderDX10{DXGIFormat: uint32(FormatBC1Unorm), ResourceDimension: ResourceDimensionTexture2D}}.headers()

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{name: "empty", data: nil, wantErr: ErrTruncated},
		{name: "bad-magic", data: badMagic, wantErr: ErrBadMagic},
		{name: "bad-header-size", data: fixture{width: 4, height: 4, pf: pfDXT1, headerSize: 100}.headers(), wantErr: ErrBadHeader},
		{name: "truncated-header", data: valid[:64], wantErr: ErrTruncated},
		{name: "truncated-dx10", data: dx10[:len(dx10)-1], wantErr: ErrTruncated},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(bytes.NewReader(tc.data))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestParseContainers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		f          fixture
		wantDim    Dimension
		wantFrames uint32
		wantFormat DXGIFormat
		wantLayout PixelLayout
		wantAlpha  AlphaMode
		wantOffset uint32
		wantBPB    uint32
	}{
		{
			name:       "dxt1-256-mips9",
			f:          fixture{width: 256, height: 256, mips: 9, pf: pfDXT1},
			wantDim:    Texture2D,
			wantFrames: 9,
			wantFormat: FormatBC1Unorm,
			wantLayout: LayoutPRGBA32,
			wantAlpha:  AlphaModePremultiplied,
			wantOffset: 128,
			wantBPB:    8,
		},
		{
			name:       "legacy-cube",
			f:          fixture{width: 16, height: 16, mips: 1, pf: pfDXT5, caps2: Caps2Cubemap},
			wantDim:    TextureCube,
			wantFrames: 6,
			wantFormat: FormatBC3Unorm,
			wantLayout: LayoutRGBA32,
			wantOffset: 128,
			wantBPB:    16,
		},
		{
			name:       "legacy-volume",
			f:          fixture{width: 8, height: 8, depth: 4, mips: 3, pf: pfBGRA8, caps2: Caps2Volume},
			wantDim:    Texture3D,
			wantFrames: 4 + 2 + 1,
			wantFormat: FormatB8G8R8A8Unorm,
			wantLayout: LayoutBGRA32,
			wantOffset: 128,
			wantBPB:    4,
		},
		{
			name:       "legacy-bgr24",
			f:          fixture{width: 3, height: 3, pf: pfBGR24},
			wantDim:    Texture2D,
			wantFrames: 1,
			wantFormat: FormatUnknown,
			wantLayout: LayoutBGR24,
			wantOffset: 128,
			wantBPB:    3,
		},
		{
			name: "dx10-array",
			f: fixture{width: 32, height: 32, mips: 2, dx10: &HeaderDX10{
				DXGIFormat: uint32(FormatBC1Unorm), ResourceDimension: ResourceDimensionTexture2D, ArraySize: 3,
			}},
			wantDim:    Texture2D,
			wantFrames: 6,
			wantFormat: FormatBC1Unorm,
			wantLayout: LayoutRGBA32,
			wantOffset: 148,
			wantBPB:    8,
		},
		{
			name: "dx10-cube-array",
			f: fixture{width: 8, height: 8, mips: 3, dx10: &HeaderDX10{
				DXGIFormat: uint32(FormatR8G8B8A8Unorm), ResourceDimension: ResourceDimensionTexture2D, MiscFlag: MiscTextureCube, ArraySize: 2,
			}},
			wantDim:    TextureCube,
			wantFrames: 2 * 3 * 6,
			wantFormat: FormatR8G8B8A8Unorm,
			wantLayout: LayoutRGBA32,
			wantOffset: 148,
			wantBPB:    4,
		},
		{
			name: "dx10-premultiplied-bc3",
			f: fixture{width: 4, height: 4, dx10: &HeaderDX10{
				DXGIFormat: uint32(FormatBC3Unorm), ResourceDimension: ResourceDimensionTexture2D, MiscFlags2: uint32(AlphaModePremultiplied),
			}},
			wantDim:    Texture2D,
			wantFrames: 1,
			wantFormat: FormatBC3Unorm,
			wantLayout: LayoutPRGBA32,
			wantAlpha:  AlphaModePremultiplied,
			wantOffset: 148,
			wantBPB:    16,
		},
		{
			name: "dx10-premultiplied-bgra8",
			f: fixture{width: 4, height: 4, dx10: &HeaderDX10{
				DXGIFormat: uint32(FormatB8G8R8A8Unorm), ResourceDimension: ResourceDimensionTexture2D, MiscFlags2: uint32(AlphaModePremultiplied),
			}},
			wantDim:    Texture2D,
			wantFrames: 1,
			wantFormat: FormatB8G8R8A8Unorm,
			wantLayout: LayoutPBGRA32,
			wantAlpha:  AlphaModePremultiplied,
			wantOffset: 148,
			wantBPB:    4,
		},
		{
			name: "dx10-1d",
			f: fixture{width: 16, height: 1, dx10: &HeaderDX10{
				DXGIFormat: uint32(FormatR8Unorm), ResourceDimension: ResourceDimensionTexture1D,
			}},
			wantDim:    Texture1D,
			wantFrames: 1,
			wantFormat: FormatR8Unorm,
			wantLayout: LayoutGray8,
			wantOffset: 148,
			wantBPB:    1,
		},
		{
			name: "dx10-volume",
			f: fixture{width: 4, height: 4, depth: 8, mips: 4, dx10: &HeaderDX10{
				DXGIFormat: uint32(FormatBC1Unorm), ResourceDimension: ResourceDimensionTexture3D,
			}},
			wantDim:    Texture3D,
			wantFrames: 8 + 4 + 2 + 1,
			wantFormat: FormatBC1Unorm,
			wantLayout: LayoutRGBA32,
			wantOffset: 148,
			wantBPB:    8,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			info, err := Parse(bytes.NewReader(tc.f.headers()))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}

			if info.Dimension != tc.wantDim {
				t.Fatalf("dimension = %s, want %s", info.Dimension, tc.wantDim)
			}
			if info.FrameCount != tc.wantFrames {
				t.Fatalf("frame count = %d, want %d", info.FrameCount, tc.wantFrames)
			}
			if info.Format != tc.wantFormat || info.Layout != tc.wantLayout {
				t.Fatalf("format = %s/%s, want %s/%s", info.Format, info.Layout, tc.wantFormat, tc.wantLayout)
			}
			if info.AlphaMode != tc.wantAlpha {
				t.Fatalf("alpha mode = %s, want %s", info.AlphaMode, tc.wantAlpha)
			}
			if info.DataOffset != tc.wantOffset {
				t.Fatalf("data offset = %d, want %d", info.DataOffset, tc.wantOffset)
			}
			if info.BytesPerBlock != tc.wantBPB {
				t.Fatalf("bytes per block = %d, want %d", info.BytesPerBlock, tc.wantBPB)
			}
			if info.Extended != (tc.f.dx10 != nil) {
				t.Fatalf("extended = %v", info.Extended)
			}
		})
	}
}

func TestParseFrameCountOverflow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		f    fixture
	}{
		{
			name: "array-times-mips",
			f: fixture{width: 4, height: 4, mips: 2, dx10: &HeaderDX10{
				DXGIFormat: uint32(FormatBC1Unorm), ResourceDimension: ResourceDimensionTexture2D, ArraySize: 0x80000001,
			}},
		},
		{
			name: "cube-faces",
			f: fixture{width: 4, height: 4, dx10: &HeaderDX10{
				DXGIFormat: uint32(FormatBC1Unorm), ResourceDimension: ResourceDimensionTexture2D, MiscFlag: MiscTextureCube, ArraySize: 0x30000000,
			}},
		},
		{
			name: "volume-slices",
			f: fixture{width: 4, height: 4, depth: 0xFFFFFFFF, mips: 2, dx10: &HeaderDX10{
				DXGIFormat: uint32(FormatBC1Unorm), ResourceDimension: ResourceDimensionTexture3D,
			}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(bytes.NewReader(tc.f.headers()))
			if !errors.Is(err, ErrBadHeader) {
				t.Fatalf("expected ErrBadHeader, got %v", err)
			}
		})
	}
}

func TestFrameAtInconsistentInfo(t *testing.T) {
	t.Parallel()

	// A frame count that wrapped in 32 bits leaves fewer frames than elements.
	info := ContainerInfo{Width: 4, Height: 4, Depth: 1, MipLevels: 2, ArraySize: 0x80000001, FrameCount: 2}
	for i := range info.FrameCount {
		if _, _, _, err := info.FrameAt(i); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("FrameAt(%d): expected ErrOutOfRange, got %v", i, err)
		}
	}
}

func TestFrameAtLongMipChain(t *testing.T) {
	t.Parallel()

	info, err := Parse(bytes.NewReader(fixture{width: 4, height: 4, mips: 0xFFFFFFFF, pf: pfDXT1}.headers()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if info.FrameCount != 0xFFFFFFFF {
		t.Fatalf("frame count = %d", info.FrameCount)
	}

	a, m, s, err := info.FrameAt(0xFFFFFFFE)
	if err != nil {
		t.Fatalf("FrameAt: %v", err)
	}
	if a != 0 || m != 0xFFFFFFFE || s != 0 {
		t.Fatalf("FrameAt = (%d,%d,%d)", a, m, s)
	}
}

func TestParseAcceptsPixelFormatSize(t *testing.T) {
	t.Parallel()

	data := fixture{width: 4, height: 4, pf: pfDXT5}.headers()
	binary.LittleEndian.PutUint32(data[4+72:], 24)

	info, err := Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if info.Format != FormatBC3Unorm {
		t.Fatalf("format = %s, want BC3_UNORM", info.Format)
	}
}

func TestParseDefaults(t *testing.T) {
	t.Parallel()

	info, err := Parse(bytes.NewReader(fixture{width: 4, height: 4, pf: pfDXT1}.headers()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if info.Depth != 1 || info.MipLevels != 1 || info.ArraySize != 1 {
		t.Fatalf("depth/mips/array = %d/%d/%d, want 1/1/1", info.Depth, info.MipLevels, info.ArraySize)
	}

	dx10, err := Parse(bytes.NewReader(fixture{width: 4, height: 4, dx10: &HeaderDX10{
		DXGIFormat: uint32(FormatBC1Unorm), ResourceDimension: ResourceDimensionTexture2D, ArraySize: 0,
	}}.headers()))
	if err != nil {
		t.Fatalf("Parse DX10: %v", err)
	}
	if dx10.ArraySize != 1 {
		t.Fatalf("array size = %d, want 1", dx10.ArraySize)
	}
}

func TestParseIsRepeatable(t *testing.T) {
	t.Parallel()

	r := bytes.NewReader(fixture{width: 64, height: 32, mips: 7, pf: pfDXT5}.build(t))
	first, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if _, err := r.Seek(200, io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}

	second, err := Parse(r)
	if err != nil {
		t.Fatalf("second Parse: %v", err)
	}
	if first != second {
		t.Fatalf("Parse not repeatable:\n%+v\n%+v", first, second)
	}
}

func TestFrameAtVolume(t *testing.T) {
	t.Parallel()

	info, err := Parse(bytes.NewReader(fixture{width: 8, height: 8, depth: 4, mips: 3, pf: pfBGRA8, caps2: Caps2Volume}.headers()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := [][3]uint32{
		{0, 0, 0}, {0, 0, 1}, {0, 0, 2}, {0, 0, 3},
		{0, 1, 0}, {0, 1, 1},
		{0, 2, 0},
	}
	for i, w := range want {
		a, m, s, err := info.FrameAt(uint32(i))
		if err != nil {
			t.Fatalf("FrameAt(%d): %v", i, err)
		}
		if a != w[0] || m != w[1] || s != w[2] {
			t.Fatalf("FrameAt(%d) = (%d,%d,%d), want %v", i, a, m, s, w)
		}
	}

	if _, _, _, err := info.FrameAt(uint32(len(want))); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestFrameAtCube(t *testing.T) {
	t.Parallel()

	info, err := Parse(bytes.NewReader(fixture{width: 16, height: 16, mips: 2, pf: pfDXT1, caps2: Caps2Cubemap}.headers()))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if info.FrameCount != 12 {
		t.Fatalf("frame count = %d, want 12", info.FrameCount)
	}

	for i := range info.FrameCount {
		a, m, s, err := info.FrameAt(i)
		if err != nil {
			t.Fatalf("FrameAt(%d): %v", i, err)
		}
		if a != i/2 || m != i%2 || s != 0 {
			t.Fatalf("FrameAt(%d) = (%d,%d,%d)", i, a, m, s)
		}
	}
}

func TestMaxMipLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		w, h, d uint32
		want    uint32
	}{
		{1, 1, 1, 1},
		{256, 256, 1, 9},
		{256, 1, 1, 9},
		{5, 3, 1, 3},
		{4, 4, 16, 5},
	}
	for _, tc := range tests {
		if got := maxMipLevels(tc.w, tc.h, tc.d); got != tc.want {
			t.Fatalf("maxMipLevels(%d,%d,%d) = %d, want %d", tc.w, tc.h, tc.d, got, tc.want)
		}
	}
}
