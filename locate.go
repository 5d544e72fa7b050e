package dds

import "fmt"

// SubresourceInfo locates one (array, mip, slice) subresource in the stream.
type SubresourceInfo struct {
	ArrayIndex uint32
	MipLevel   uint32
	SliceIndex uint32

	// Width and Height are the pixel dimensions at this mip level.
	Width  uint32
	Height uint32
	// WidthInBlocks and HeightInBlocks size the block grid.
	WidthInBlocks  uint32
	HeightInBlocks uint32
	BlockWidth     uint32
	BlockHeight    uint32

	// Offset is the absolute byte offset of the data in the source.
	Offset uint64
	// ByteSize is WidthInBlocks * HeightInBlocks * BytesPerBlock.
	ByteSize uint64

	Format        DXGIFormat
	BytesPerBlock uint32
	Layout        PixelLayout
	LayoutBits    uint32
}

// Locate computes the offset and size of a subresource. The slice index is
// checked against the depth of mip level 0. Cube maps address their faces as
// six consecutive array elements per cube.
//
// Data is ordered element-major: every array element stores its full mip
// chain (all depth slices of each level) before the next element starts.
func (info *ContainerInfo) Locate(arrayIndex, mipLevel, sliceIndex uint32) (SubresourceInfo, error) {
	if uint64(arrayIndex) >= info.elementCount() {
		return SubresourceInfo{}, fmt.Errorf("%w: array index %d (size %d, %s)", ErrOutOfRange, arrayIndex, info.ArraySize, info.Dimension)
	}
	if mipLevel >= info.MipLevels {
		return SubresourceInfo{}, fmt.Errorf("%w: mip level %d of %d", ErrOutOfRange, mipLevel, info.MipLevels)
	}
	if sliceIndex >= info.Depth {
		return SubresourceInfo{}, fmt.Errorf("%w: slice %d of %d", ErrOutOfRange, sliceIndex, info.Depth)
	}

	blockW, blockH := info.blockSize()
	sub := SubresourceInfo{
		ArrayIndex:    arrayIndex,
		MipLevel:      mipLevel,
		SliceIndex:    sliceIndex,
		BlockWidth:    blockW,
		BlockHeight:   blockH,
		Format:        info.Format,
		BytesPerBlock: info.BytesPerBlock,
		Layout:        info.Layout,
		LayoutBits:    info.LayoutBits,
	}

	var (
		offset      uint64
		elementSize uint64
		bpb         = uint64(info.BytesPerBlock)
	)
	width, height, depth := info.Width, info.Height, info.Depth
	for level := range info.MipLevels {
		widthInBlocks := ceilDiv(width, blockW)
		heightInBlocks := ceilDiv(height, blockH)
		levelSize := uint64(widthInBlocks) * uint64(heightInBlocks) * bpb

		switch {
		case level < mipLevel:
			offset += levelSize * uint64(depth)
		case level == mipLevel:
			offset += levelSize * uint64(sliceIndex)
			sub.Width = width
			sub.Height = height
			sub.WidthInBlocks = widthInBlocks
			sub.HeightInBlocks = heightInBlocks
			sub.ByteSize = levelSize
		}
		elementSize += levelSize * uint64(depth)

		width = halve(width)
		height = halve(height)
		depth = halve(depth)
	}

	sub.Offset = uint64(info.DataOffset) + offset + uint64(arrayIndex)*elementSize

	return sub, nil
}
