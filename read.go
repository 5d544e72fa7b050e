package dds

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
)

// ReadOptions configures the file helpers.
type ReadOptions struct {
	Options
}

func (o *ReadOptions) options() *Options {
	if o == nil {
		return nil
	}

	return &o.Options
}

// ReadConfig reads the DDS or EDDS dimensions without decoding image data.
func ReadConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: %q: %w", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := Parse(f)
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		Width:      int(info.Width),
		Height:     int(info.Height),
		ColorModel: color.NRGBAModel,
	}, nil
}

// NewContainerFile loads a DDS file into memory and opens it. EDDS files are
// inflated to plain DDS first.
func NewContainerFile(path string, opts *Options) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrOpenFile, path, err)
	}

	r := bytes.NewReader(data)
	edds, err := IsEDDS(r)
	if err != nil {
		return nil, err
	}
	if edds {
		opts.logger().Debug("inflating EDDS", "path", path)
		if r, err = InflateEDDS(r, opts); err != nil {
			return nil, err
		}
	}

	return NewContainer(r, opts)
}

// Read reads a DDS or EDDS file and decodes the top mip level of the first
// frame into an image.
func Read(path string) (image.Image, error) {
	return ReadWithOptions(path, nil)
}

// ReadWithOptions is Read with the given options. Nil opts uses defaults.
func ReadWithOptions(path string, opts *ReadOptions) (image.Image, error) {
	c, err := NewContainerFile(path, opts.options())
	if err != nil {
		return nil, err
	}

	frame, err := c.Frame(0, 0, 0)
	if err != nil {
		return nil, err
	}

	return frame.Image()
}
