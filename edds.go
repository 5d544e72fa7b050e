package dds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pierrec/lz4/v4"
)

const (
	// BlockMagicCOPY marks an uncompressed EDDS block.
	BlockMagicCOPY = "COPY"
	// BlockMagicLZ4 marks an LZ4-compressed EDDS block.
	BlockMagicLZ4 = "LZ4 "

	// ChunkSize is the Enfusion chunk size for LZ4 streams.
	ChunkSize = 64 * 1024

	// mipMapCountOffset is the stream offset of the primary header's mip count.
	mipMapCountOffset = 4 + 24
)

// Block is one mip body of an EDDS (Enfusion DDS) stream.
type Block struct {
	Magic            string
	Data             []byte
	Size             int32
	UncompressedSize int32
}

type blockHeader struct {
	Magic string
	Size  int32
}

// IsEDDS reports whether r carries an EDDS block table after its DDS headers.
func IsEDDS(r io.ReadSeeker) (bool, error) {
	info, err := Parse(r)
	if err != nil {
		return false, err
	}
	if _, err := r.Seek(int64(info.DataOffset), io.SeekStart); err != nil {
		return false, fmt.Errorf("%w: %w", ErrSeekFrame, err)
	}

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrBlockTableMagicRead, err)
	}
	m := string(magic[:])

	return m == BlockMagicCOPY || m == BlockMagicLZ4, nil
}

// InflateEDDS converts an EDDS stream into a plain DDS stream. EDDS keeps the
// DDS headers but stores one COPY or LZ4 block per mip level, smallest level
// first; the result stores raw levels largest first so Parse and Locate apply.
func InflateEDDS(r io.ReadSeeker, opts *Options) (*bytes.Reader, error) {
	log := opts.logger()

	info, err := ParseWithOptions(r, opts)
	if err != nil {
		return nil, err
	}
	if info.FrameCount != info.MipLevels {
		return nil, fmt.Errorf("%w: EDDS with %d frames over %d mips", ErrUnsupportedFormat, info.FrameCount, info.MipLevels)
	}

	sizes := make([]int, info.MipLevels)
	total := int(info.DataOffset)
	for level := range info.MipLevels {
		sub, err := info.Locate(0, level, 0)
		if err != nil {
			return nil, err
		}
		size, err := intFromU64(sub.ByteSize)
		if err != nil {
			return nil, err
		}
		if size <= 0 {
			return nil, fmt.Errorf("%w: %s for mip %d", ErrUnsupportedFormat, info.Format, level)
		}
		sizes[level] = size
		total += size
	}

	header := make([]byte, info.DataOffset)
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSeekHeader, err)
	}
	if err := readFull(r, header, "EDDS headers"); err != nil {
		return nil, err
	}

	mips, err := readMipBlocks(r, sizes, log)
	if err != nil {
		log.Debug("EDDS block table unreadable, trying single block", "error", err)

		single, serr := readLegacySingleBlock(r, int64(info.DataOffset), sizes[0])
		if serr != nil {
			return nil, serr
		}
		binary.LittleEndian.PutUint32(header[mipMapCountOffset:], 1)
		mips = [][]byte{single}
		total = len(header) + len(single)
	}

	out := make([]byte, 0, total)
	out = append(out, header...)
	for _, mip := range mips {
		out = append(out, mip...)
	}

	return bytes.NewReader(out), nil
}

// readMipBlocks reads the block table and bodies following the headers and
// returns raw mip levels ordered largest first.
func readMipBlocks(r io.Reader, sizes []int, log *slog.Logger) ([][]byte, error) {
	count := len(sizes)
	table, err := readBlockTable(r, count)
	if err != nil {
		return nil, err
	}

	mips := make([][]byte, count)
	for i, h := range table {
		level := count - i - 1
		block, err := readBlockBody(r, h)
		if err != nil {
			return nil, fmt.Errorf("mipmap %d: %w", level, err)
		}

		raw, err := decompressBlock(block, sizes[level])
		if err != nil {
			return nil, fmt.Errorf("%w: mipmap %d: %w", ErrDecompressBlock, level, err)
		}
		log.Debug("inflated EDDS block", "mip", level, "magic", h.Magic, "size", h.Size, "raw", len(raw))
		mips[level] = raw
	}

	return mips, nil
}

// readLegacySingleBlock is a fallback for older EDDS files that store a single
// payload blob instead of a block table. The blob is tried as an LZ4 chunk
// stream first and accepted raw when its size already matches.
func readLegacySingleBlock(r io.ReadSeeker, dataOffset int64, expectedSize int) ([]byte, error) {
	if _, err := r.Seek(dataOffset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSeekFrame, err)
	}

	remainingData, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadRemainingData, err)
	}

	size, err := i32FromInt(len(remainingData))
	if err != nil {
		return nil, err
	}

	block := &Block{Magic: BlockMagicLZ4, Size: size, Data: remainingData}
	decompressed, err := decompressBlock(block, expectedSize)
	if err == nil {
		return decompressed, nil
	}

	if len(remainingData) == expectedSize {
		return remainingData, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrParseSingleBlock, err)
}

// decompressBlock inflates an EDDS block into raw data.
func decompressBlock(block *Block, expectedUncompressedSize int) ([]byte, error) {
	if block.Magic == BlockMagicCOPY {
		if len(block.Data) != expectedUncompressedSize {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrCopySizeMismatch, expectedUncompressedSize, len(block.Data))
		}
		out := make([]byte, len(block.Data))
		copy(out, block.Data)
		return out, nil
	}
	if block.Magic != BlockMagicLZ4 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockMagic, block.Magic)
	}

	targetSize := expectedUncompressedSize
	if block.UncompressedSize > 0 {
		targetSize = int(block.UncompressedSize)
	}
	if targetSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTargetSize, targetSize)
	}

	// LZ4 bodies normally start with the uncompressed size; accept it when it
	// agrees with the expected size and a sane chunk header follows.
	data := block.Data
	if len(data) >= 8 {
		peek := int(binary.LittleEndian.Uint32(data[:4]))
		c0 := int(data[4]) | (int(data[5]) << 8) | (int(data[6]) << 16)
		if (peek == expectedUncompressedSize || peek == targetSize) && c0 > 0 && c0 < (1<<20) {
			targetSize = peek
			data = data[4:]
		}
	}

	const dictCap = 64 * 1024
	dict := make([]byte, dictCap)
	dictSize := 0

	target := make([]byte, targetSize)
	outIdx := 0

	r := bytes.NewReader(data)

	for {
		if r.Len() < 4 {
			return nil, fmt.Errorf("%w: need 4 bytes header, have %d", ErrChunkStreamTruncated, r.Len())
		}

		var hdr [4]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChunkHeaderRead, err)
		}

		cSize := int(hdr[0]) | (int(hdr[1]) << 8) | (int(hdr[2]) << 16)
		flags := hdr[3]
		if (flags &^ 0x80) != 0 {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownLZ4Flags, flags)
		}
		if cSize <= 0 || cSize > r.Len() {
			return nil, fmt.Errorf("%w: %d (remaining %d)", ErrInvalidChunkSize, cSize, r.Len())
		}

		compressed := make([]byte, cSize)
		if _, err := io.ReadFull(r, compressed); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChunkDataRead, err)
		}

		remaining := targetSize - outIdx
		if remaining <= 0 {
			return nil, ErrDecodeOverrun
		}
		want := min(ChunkSize, remaining)
		dst := target[outIdx : outIdx+want]

		n, err := lz4.UncompressBlockWithDict(compressed, dst, dict[:dictSize])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}

		outIdx += n

		// Slide the 64 KiB dictionary window over the decoded output.
		decoded := target[outIdx-n : outIdx]
		if len(decoded) >= dictCap {
			copy(dict, decoded[len(decoded)-dictCap:])
			dictSize = dictCap
		} else {
			avail := dictCap - dictSize
			if len(decoded) <= avail {
				copy(dict[dictSize:], decoded)
				dictSize += len(decoded)
			} else {
				shift := len(decoded) - avail
				copy(dict, dict[shift:dictSize])
				copy(dict[dictCap-len(decoded):], decoded)
				dictSize = dictCap
			}
		}

		if (flags & 0x80) != 0 {
			break
		}
	}

	if outIdx != targetSize {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, targetSize, outIdx)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left after decode", ErrBlockLengthMismatch, r.Len())
	}

	return target, nil
}

func readBlockTable(r io.Reader, count int) ([]blockHeader, error) {
	hdrs := make([]blockHeader, 0, count)
	for i := range count {
		var entry [8]byte
		if _, err := io.ReadFull(r, entry[:4]); err != nil {
			return nil, fmt.Errorf("%w: %d: %v", ErrBlockTableMagicRead, i, err)
		}
		if _, err := io.ReadFull(r, entry[4:]); err != nil {
			return nil, fmt.Errorf("%w: %d: %v", ErrBlockTableSizeRead, i, err)
		}

		magic := string(entry[:4])
		// #nosec G115 -- reinterpreting the stored signed size.
		size := int32(binary.LittleEndian.Uint32(entry[4:]))

		if magic != BlockMagicCOPY && magic != BlockMagicLZ4 {
			return nil, fmt.Errorf("%w: %d: %q", ErrBlockTableUnknownMagic, i, magic)
		}
		if size < 0 {
			return nil, fmt.Errorf("%w: %d: %d", ErrBlockTableInvalidSize, i, size)
		}

		hdrs = append(hdrs, blockHeader{Magic: magic, Size: size})
	}

	return hdrs, nil
}

func readBlockBody(r io.Reader, h blockHeader) (*Block, error) {
	if h.Size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrBlockTableInvalidSize, h.Size)
	}

	data := make([]byte, h.Size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBlockBodyRead, h.Magic, err)
	}

	return &Block{Magic: h.Magic, Size: h.Size, Data: data}, nil
}
