// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dds

package dds

const (
	maxInt32 = int(^uint32(0) >> 1)
	maxInt   = uint64(int(^uint(0) >> 1))
	maxInt64 = uint64(1<<63 - 1)
)

// i32FromInt converts an int to an int32.
func i32FromInt(n int) (int32, error) {
	if n < 0 || n > maxInt32 {
		return 0, ErrSizeOverflow
	}

	return int32(n), nil
}

// intFromU64 converts a uint64 to an int.
func intFromU64(n uint64) (int, error) {
	if n > maxInt {
		return 0, ErrSizeOverflow
	}

	// #nosec G115 -- bounds checked above.
	return int(n), nil
}
