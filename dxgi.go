package dds

import "fmt"

// DXGIFormat is the canonical storage format id shared by the legacy and
// extended header paths. Values follow the DXGI_FORMAT enumeration.
type DXGIFormat uint32

// DXGI format ids.
const (
	FormatUnknown DXGIFormat = iota
	FormatR32G32B32A32Typeless
	FormatR32G32B32A32Float
	FormatR32G32B32A32Uint
	FormatR32G32B32A32Sint
	FormatR32G32B32Typeless
	FormatR32G32B32Float
	FormatR32G32B32Uint
	FormatR32G32B32Sint
	FormatR16G16B16A16Typeless
	FormatR16G16B16A16Float
	FormatR16G16B16A16Unorm
	FormatR16G16B16A16Uint
	FormatR16G16B16A16Snorm
	FormatR16G16B16A16Sint
	FormatR32G32Typeless
	FormatR32G32Float
	FormatR32G32Uint
	FormatR32G32Sint
	FormatR32G8X24Typeless
	FormatD32FloatS8X24Uint
	FormatR32FloatX8X24Typeless
	FormatX32TypelessG8X24Uint
	FormatR10G10B10A2Typeless
	FormatR10G10B10A2Unorm
	FormatR10G10B10A2Uint
	FormatR11G11B10Float
	FormatR8G8B8A8Typeless
	FormatR8G8B8A8Unorm
	FormatR8G8B8A8UnormSrgb
	FormatR8G8B8A8Uint
	FormatR8G8B8A8Snorm
	FormatR8G8B8A8Sint
	FormatR16G16Typeless
	FormatR16G16Float
	FormatR16G16Unorm
	FormatR16G16Uint
	FormatR16G16Snorm
	FormatR16G16Sint
	FormatR32Typeless
	FormatD32Float
	FormatR32Float
	FormatR32Uint
	FormatR32Sint
	FormatR24G8Typeless
	FormatD24UnormS8Uint
	FormatR24UnormX8Typeless
	FormatX24TypelessG8Uint
	FormatR8G8Typeless
	FormatR8G8Unorm
	FormatR8G8Uint
	FormatR8G8Snorm
	FormatR8G8Sint
	FormatR16Typeless
	FormatR16Float
	FormatD16Unorm
	FormatR16Unorm
	FormatR16Uint
	FormatR16Snorm
	FormatR16Sint
	FormatR8Typeless
	FormatR8Unorm
	FormatR8Uint
	FormatR8Snorm
	FormatR8Sint
	FormatA8Unorm
	FormatR1Unorm
	FormatR9G9B9E5Sharedexp
	FormatR8G8B8G8Unorm
	FormatG8R8G8B8Unorm
	FormatBC1Typeless
	FormatBC1Unorm
	FormatBC1UnormSrgb
	FormatBC2Typeless
	FormatBC2Unorm
	FormatBC2UnormSrgb
	FormatBC3Typeless
	FormatBC3Unorm
	FormatBC3UnormSrgb
	FormatBC4Typeless
	FormatBC4Unorm
	FormatBC4Snorm
	FormatBC5Typeless
	FormatBC5Unorm
	FormatBC5Snorm
	FormatB5G6R5Unorm
	FormatB5G5R5A1Unorm
	FormatB8G8R8A8Unorm
	FormatB8G8R8X8Unorm
	FormatR10G10B10XRBiasA2Unorm
	FormatB8G8R8A8Typeless
	FormatB8G8R8A8UnormSrgb
	FormatB8G8R8X8Typeless
	FormatB8G8R8X8UnormSrgb
	FormatBC6HTypeless
	FormatBC6HUF16
	FormatBC6HSF16
	FormatBC7Typeless
	FormatBC7Unorm
	FormatBC7UnormSrgb

	// FormatB4G4R4A4Unorm is outside the contiguous block above.
	FormatB4G4R4A4Unorm DXGIFormat = 115
)

var formatNames = [...]string{
	"UNKNOWN",
	"R32G32B32A32_TYPELESS",
	"R32G32B32A32_FLOAT",
	"R32G32B32A32_UINT",
	"R32G32B32A32_SINT",
	"R32G32B32_TYPELESS",
	"R32G32B32_FLOAT",
	"R32G32B32_UINT",
	"R32G32B32_SINT",
	"R16G16B16A16_TYPELESS",
	"R16G16B16A16_FLOAT",
	"R16G16B16A16_UNORM",
	"R16G16B16A16_UINT",
	"R16G16B16A16_SNORM",
	"R16G16B16A16_SINT",
	"R32G32_TYPELESS",
	"R32G32_FLOAT",
	"R32G32_UINT",
	"R32G32_SINT",
	"R32G8X24_TYPELESS",
	"D32_FLOAT_S8X24_UINT",
	"R32_FLOAT_X8X24_TYPELESS",
	"X32_TYPELESS_G8X24_UINT",
	"R10G10B10A2_TYPELESS",
	"R10G10B10A2_UNORM",
	"R10G10B10A2_UINT",
	"R11G11B10_FLOAT",
	"R8G8B8A8_TYPELESS",
	"R8G8B8A8_UNORM",
	"R8G8B8A8_UNORM_SRGB",
	"R8G8B8A8_UINT",
	"R8G8B8A8_SNORM",
	"R8G8B8A8_SINT",
	"R16G16_TYPELESS",
	"R16G16_FLOAT",
	"R16G16_UNORM",
	"R16G16_UINT",
	"R16G16_SNORM",
	"R16G16_SINT",
	"R32_TYPELESS",
	"D32_FLOAT",
	"R32_FLOAT",
	"R32_UINT",
	"R32_SINT",
	"R24G8_TYPELESS",
	"D24_UNORM_S8_UINT",
	"R24_UNORM_X8_TYPELESS",
	"X24_TYPELESS_G8_UINT",
	"R8G8_TYPELESS",
	"R8G8_UNORM",
	"R8G8_UINT",
	"R8G8_SNORM",
	"R8G8_SINT",
	"R16_TYPELESS",
	"R16_FLOAT",
	"D16_UNORM",
	"R16_UNORM",
	"R16_UINT",
	"R16_SNORM",
	"R16_SINT",
	"R8_TYPELESS",
	"R8_UNORM",
	"R8_UINT",
	"R8_SNORM",
	"R8_SINT",
	"A8_UNORM",
	"R1_UNORM",
	"R9G9B9E5_SHAREDEXP",
	"R8G8_B8G8_UNORM",
	"G8R8_G8B8_UNORM",
	"BC1_TYPELESS",
	"BC1_UNORM",
	"BC1_UNORM_SRGB",
	"BC2_TYPELESS",
	"BC2_UNORM",
	"BC2_UNORM_SRGB",
	"BC3_TYPELESS",
	"BC3_UNORM",
	"BC3_UNORM_SRGB",
	"BC4_TYPELESS",
	"BC4_UNORM",
	"BC4_SNORM",
	"BC5_TYPELESS",
	"BC5_UNORM",
	"BC5_SNORM",
	"B5G6R5_UNORM",
	"B5G5R5A1_UNORM",
	"B8G8R8A8_UNORM",
	"B8G8R8X8_UNORM",
	"R10G10B10_XR_BIAS_A2_UNORM",
	"B8G8R8A8_TYPELESS",
	"B8G8R8A8_UNORM_SRGB",
	"B8G8R8X8_TYPELESS",
	"B8G8R8X8_UNORM_SRGB",
	"BC6H_TYPELESS",
	"BC6H_UF16",
	"BC6H_SF16",
	"BC7_TYPELESS",
	"BC7_UNORM",
	"BC7_UNORM_SRGB",
}

// String returns the DXGI name of the format.
func (f DXGIFormat) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	if f == FormatB4G4R4A4Unorm {
		return "B4G4R4A4_UNORM"
	}

	return fmt.Sprintf("DXGI(%d)", uint32(f))
}
