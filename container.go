package dds

import (
	"io"
	"sync"
)

// Container is an opened DDS stream. Frames may be requested concurrently;
// reads from the shared source are serialised.
type Container struct {
	mu   sync.Mutex
	r    io.ReadSeeker
	info ContainerInfo
	opts *Options
}

// NewContainer parses the headers of r and keeps r for frame reads.
func NewContainer(r io.ReadSeeker, opts *Options) (*Container, error) {
	info, err := ParseWithOptions(r, opts)
	if err != nil {
		return nil, err
	}

	return &Container{r: r, info: info, opts: opts}, nil
}

// Info returns the parsed container description.
func (c *Container) Info() ContainerInfo { return c.info }

// FrameCount returns the number of subresources.
func (c *Container) FrameCount() uint32 { return c.info.FrameCount }

// Frame reads the subresource at the given array index, mip level and slice.
func (c *Container) Frame(arrayIndex, mipLevel, sliceIndex uint32) (*SubresourceDecoder, error) {
	sub, err := c.info.Locate(arrayIndex, mipLevel, sliceIndex)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return OpenSubresource(c.r, sub, c.opts)
}

// FrameAt reads the subresource with the given flat frame index.
func (c *Container) FrameAt(index uint32) (*SubresourceDecoder, error) {
	arrayIndex, mipLevel, sliceIndex, err := c.info.FrameAt(index)
	if err != nil {
		return nil, err
	}

	return c.Frame(arrayIndex, mipLevel, sliceIndex)
}
