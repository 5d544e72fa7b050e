package dds

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"log/slog"
	"sync"

	"github.com/woozymasta/bcn"
)

// SubresourceDecoder owns the raw bytes of one subresource and, after the
// first pixel read, its decoded pixels. It is safe for concurrent use.
type SubresourceDecoder struct {
	info    SubresourceInfo
	blocks  []byte
	decOpts *bcn.DecodeOptions
	log     *slog.Logger

	mu     sync.Mutex
	pixels []byte
}

// OpenSubresource reads the subresource described by sub from r.
func OpenSubresource(r io.ReadSeeker, sub SubresourceInfo, opts *Options) (*SubresourceDecoder, error) {
	size, err := intFromU64(sub.ByteSize)
	if err != nil {
		return nil, fmt.Errorf("%w: subresource of %d bytes", err, sub.ByteSize)
	}
	if sub.Offset > uint64(maxInt64) {
		return nil, fmt.Errorf("%w: offset %d", ErrSizeOverflow, sub.Offset)
	}

	// Header fields can declare gigabytes; check the stream holds them first.
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSeekFrame, err)
	}
	if end < 0 || uint64(end) < sub.Offset || uint64(end)-sub.Offset < sub.ByteSize {
		return nil, fmt.Errorf("%w: want %d bytes at offset %d, stream has %d", ErrShortRead, size, sub.Offset, end)
	}

	if _, err := r.Seek(int64(sub.Offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSeekFrame, err)
	}

	blocks := make([]byte, size)
	if n, err := io.ReadFull(r, blocks); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: want %d bytes at offset %d, got %d", ErrShortRead, size, sub.Offset, n)
		}
		return nil, fmt.Errorf("%w: %w", ErrShortRead, err)
	}

	log := opts.logger()
	log.Debug("read subresource",
		"array", sub.ArrayIndex,
		"mip", sub.MipLevel,
		"slice", sub.SliceIndex,
		"offset", sub.Offset,
		"size", size,
	)

	return &SubresourceDecoder{
		info:    sub,
		blocks:  blocks,
		decOpts: opts.decodeOptions(),
		log:     log,
	}, nil
}

// Info returns the subresource description.
func (d *SubresourceDecoder) Info() SubresourceInfo { return d.info }

// Size returns the pixel dimensions.
func (d *SubresourceDecoder) Size() (width, height int) {
	return int(d.info.Width), int(d.info.Height)
}

// SizeInBlocks returns the block grid dimensions.
func (d *SubresourceDecoder) SizeInBlocks() (width, height int) {
	return int(d.info.WidthInBlocks), int(d.info.HeightInBlocks)
}

// CopyBlocks copies raw block bytes into dst. A nil region copies the whole
// block grid; otherwise region is given in blocks. Formats without a known
// block size validate the region and copy nothing.
func (d *SubresourceDecoder) CopyBlocks(region *image.Rectangle, dst []byte, stride int) error {
	w, h := d.SizeInBlocks()

	return copyRect(d.blocks, w, h, int(d.info.BytesPerBlock), region, dst, stride)
}

// CopyPixels copies decoded pixels into dst. A nil region copies the whole
// subresource; otherwise region is given in pixels. Block-compressed data is
// decompressed once, on the first call.
func (d *SubresourceDecoder) CopyPixels(region *image.Rectangle, dst []byte, stride int) error {
	bits := d.info.LayoutBits
	if bits == 0 || bits%8 != 0 {
		return fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, d.info.Format, d.info.Layout)
	}
	bpp := int(bits / 8)
	w, h := d.Size()

	// Validate before decoding so bad arguments never trigger work.
	if _, err := checkRect(w, h, bpp, region, dst, stride); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	pixels, err := d.decodedLocked()
	if err != nil {
		return err
	}

	return copyRect(pixels, w, h, bpp, region, dst, stride)
}

// decodedLocked returns the pixel buffer, decoding it on first use.
func (d *SubresourceDecoder) decodedLocked() ([]byte, error) {
	if d.pixels != nil {
		return d.pixels, nil
	}

	w, h := d.Size()
	if !d.info.Format.IsCompressed() {
		need := w * h * int(d.info.LayoutBits/8)
		if len(d.blocks) < need {
			return nil, fmt.Errorf("%w: %s pixels need %d bytes, subresource has %d",
				ErrUnsupportedFormat, d.info.Layout, need, len(d.blocks))
		}
		d.pixels = d.blocks
		return d.pixels, nil
	}

	var (
		pixels []byte
		err    error
	)
	if variantOf(d.info.Format) != bcNone {
		pixels, err = DecodeBlocks(d.blocks, w, h, d.info.Format)
	} else {
		pixels, err = d.decodeBCn(w, h)
	}
	if err != nil {
		return nil, err
	}

	d.log.Debug("decompressed subresource",
		"format", d.info.Format,
		"width", w,
		"height", h,
	)
	d.pixels = pixels

	return d.pixels, nil
}

// decodeBCn handles the unsigned BC4/BC5 formats through the bcn decoder.
func (d *SubresourceDecoder) decodeBCn(w, h int) ([]byte, error) {
	var format bcn.Format
	switch d.info.Format {
	case FormatBC4Typeless, FormatBC4Unorm:
		format = bcn.FormatBC4
	case FormatBC5Typeless, FormatBC5Unorm:
		format = bcn.FormatBC5
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, d.info.Format)
	}
	if w == 0 || h == 0 {
		return []byte{}, nil
	}

	img, err := bcn.DecodeImageWithOptions(d.blocks, w, h, format, d.decOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}

	return straightRGBA(img), nil
}

// straightRGBA returns tightly packed non-premultiplied RGBA bytes of img.
func straightRGBA(img image.Image) []byte {
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	return nrgba.Pix
}

// checkRect validates a copy region and destination and returns the
// resolved rectangle.
func checkRect(w, h, bpp int, region *image.Rectangle, dst []byte, stride int) (image.Rectangle, error) {
	rect := image.Rect(0, 0, w, h)
	if region != nil {
		rect = *region
		if rect.Min.X < 0 || rect.Min.Y < 0 || rect.Dx() <= 0 || rect.Dy() <= 0 ||
			rect.Max.X > w || rect.Max.Y > h {
			return image.Rectangle{}, fmt.Errorf("%w: region %v outside %dx%d", ErrInvalidArgument, rect, w, h)
		}
	}

	rowBytes := rect.Dx() * bpp
	if stride < rowBytes {
		return image.Rectangle{}, fmt.Errorf("%w: stride %d < row %d", ErrBufferTooSmall, stride, rowBytes)
	}
	if need := stride * rect.Dy(); len(dst) < need {
		return image.Rectangle{}, fmt.Errorf("%w: have %d bytes, need %d", ErrBufferTooSmall, len(dst), need)
	}

	return rect, nil
}

// copyRect copies rows of a w x h grid of bpp-byte cells into dst.
func copyRect(src []byte, w, h, bpp int, region *image.Rectangle, dst []byte, stride int) error {
	rect, err := checkRect(w, h, bpp, region, dst, stride)
	if err != nil {
		return err
	}

	srcStride := w * bpp
	rowBytes := rect.Dx() * bpp
	if need := (rect.Max.Y-1)*srcStride + rect.Max.X*bpp; len(src) < need {
		return fmt.Errorf("%w: source has %d bytes, need %d", ErrShortRead, len(src), need)
	}

	for y := range rect.Dy() {
		from := (rect.Min.Y+y)*srcStride + rect.Min.X*bpp
		copy(dst[y*stride:y*stride+rowBytes], src[from:from+rowBytes])
	}

	return nil
}
