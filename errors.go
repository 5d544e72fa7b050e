package dds

import "errors"

var (
	// ErrBadMagic indicates the stream does not start with the DDS magic.
	ErrBadMagic = errors.New("bad DDS magic")
	// ErrBadHeader indicates the primary header declares an unexpected size or
	// more frames than fit in 32 bits.
	ErrBadHeader = errors.New("bad DDS header")
	// ErrTruncated indicates the stream ends inside a header.
	ErrTruncated = errors.New("truncated DDS header")
	// ErrOutOfRange indicates an array, mip, slice or frame index outside the container.
	ErrOutOfRange = errors.New("index out of range")
	// ErrInvalidArgument indicates an invalid copy region.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrBufferTooSmall indicates the destination buffer or stride is too small.
	ErrBufferTooSmall = errors.New("buffer too small")
	// ErrUnsupportedFormat indicates the format has no known decoded layout.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrShortRead indicates the source ended before the subresource data.
	ErrShortRead = errors.New("short read")
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")

	// ErrSeekHeader indicates seeking to the start of the stream failed.
	ErrSeekHeader = errors.New("seek to header failed")
	// ErrSeekFrame indicates seeking to subresource data failed.
	ErrSeekFrame = errors.New("seek to subresource data failed")
	// ErrOpenFile indicates file open failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrDecodeImage indicates image decode failed.
	ErrDecodeImage = errors.New("decode image failed")

	// ErrLZ4Decode indicates LZ4 decode failed.
	ErrLZ4Decode = errors.New("LZ4 decode failed")
	// ErrCopySizeMismatch indicates COPY block data size mismatch.
	ErrCopySizeMismatch = errors.New("COPY block size mismatch")
	// ErrUnknownBlockMagic indicates an unknown block magic.
	ErrUnknownBlockMagic = errors.New("unknown block magic")
	// ErrInvalidTargetSize indicates invalid decoded target size.
	ErrInvalidTargetSize = errors.New("invalid target size")
	// ErrChunkStreamTruncated indicates LZ4 chunk stream is truncated.
	ErrChunkStreamTruncated = errors.New("LZ4 chunk-stream truncated")
	// ErrUnknownLZ4Flags indicates unknown LZ4 chunk flags.
	ErrUnknownLZ4Flags = errors.New("unknown LZ4 flags")
	// ErrInvalidChunkSize indicates invalid LZ4 chunk size.
	ErrInvalidChunkSize = errors.New("invalid compressed chunk size")
	// ErrDecodeOverrun indicates decoded data overruns target buffer.
	ErrDecodeOverrun = errors.New("decoded LZ4 overruns target buffer")
	// ErrDecodedSizeMismatch indicates decoded size mismatch.
	ErrDecodedSizeMismatch = errors.New("LZ4 decoded size mismatch")
	// ErrBlockLengthMismatch indicates leftover bytes after decode.
	ErrBlockLengthMismatch = errors.New("LZ4 block length mismatch")
	// ErrBlockTableMagicRead indicates block table magic read failed.
	ErrBlockTableMagicRead = errors.New("reading block table magic failed")
	// ErrBlockTableSizeRead indicates block table size read failed.
	ErrBlockTableSizeRead = errors.New("reading block table size failed")
	// ErrBlockTableUnknownMagic indicates unknown block magic in table.
	ErrBlockTableUnknownMagic = errors.New("unknown block magic in table")
	// ErrBlockTableInvalidSize indicates invalid size in block table.
	ErrBlockTableInvalidSize = errors.New("invalid block size in table")
	// ErrBlockBodyRead indicates block body read failed.
	ErrBlockBodyRead = errors.New("reading block body failed")
	// ErrChunkHeaderRead indicates LZ4 chunk header read failed.
	ErrChunkHeaderRead = errors.New("reading chunk header failed")
	// ErrChunkDataRead indicates LZ4 chunk data read failed.
	ErrChunkDataRead = errors.New("reading chunk data failed")
	// ErrDecompressBlock indicates block decompression failed.
	ErrDecompressBlock = errors.New("decompress block failed")
	// ErrReadRemainingData indicates reading remaining data failed.
	ErrReadRemainingData = errors.New("reading remaining data failed")
	// ErrParseSingleBlock indicates failure parsing legacy single block.
	ErrParseSingleBlock = errors.New("failed to parse single block")
)
