package dds

// maxMipLevels returns the length of a full mip chain for the given base
// dimensions, counting down to 1x1x1.
func maxMipLevels(width, height, depth uint32) uint32 {
	count := uint32(1)
	for width > 1 || height > 1 || depth > 1 {
		count++
		width, height, depth = halve(width), halve(height), halve(depth)
	}

	return count
}

// halve returns n/2 with a floor of 1.
func halve(n uint32) uint32 {
	if n > 1 {
		return n / 2
	}

	return n
}

func ceilDiv(n, d uint32) uint32 {
	return uint32((uint64(n) + uint64(d) - 1) / uint64(d))
}
