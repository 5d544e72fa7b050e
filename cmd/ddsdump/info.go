package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/woozymasta/dds"
)

type frameView struct {
	Index  uint32 `json:"index"`
	Array  uint32 `json:"array"`
	Mip    uint32 `json:"mip"`
	Slice  uint32 `json:"slice"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
	Offset uint64 `json:"offset"`
	Size   uint64 `json:"size"`
}

type infoView struct {
	Path          string      `json:"path"`
	Dimension     string      `json:"dimension"`
	Format        string      `json:"format"`
	Layout        string      `json:"layout"`
	AlphaMode     string      `json:"alpha_mode"`
	Frames        []frameView `json:"frames"`
	Width         uint32      `json:"width"`
	Height        uint32      `json:"height"`
	Depth         uint32      `json:"depth"`
	MipLevels     uint32      `json:"mip_levels"`
	ArraySize     uint32      `json:"array_size"`
	BytesPerBlock uint32      `json:"bytes_per_block"`
	DataOffset    uint32      `json:"data_offset"`
	FrameCount    uint32      `json:"frame_count"`
	Compressed    bool        `json:"compressed"`
	Extended      bool        `json:"dx10"`
}

func infoCmd(verbose *bool) *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "info",
		Usage:     "Print container fields and the frame table",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print JSON instead of text", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}

			c, err := dds.NewContainerFile(path, options(*verbose))
			if err != nil {
				return err
			}

			view, err := newInfoView(path, c.Info())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}

			printInfo(os.Stdout, view)
			return nil
		},
	}
}

func newInfoView(path string, info dds.ContainerInfo) (*infoView, error) {
	view := &infoView{
		Path:          path,
		Dimension:     info.Dimension.String(),
		Format:        info.Format.String(),
		Layout:        info.Layout.String(),
		AlphaMode:     info.AlphaMode.String(),
		Width:         info.Width,
		Height:        info.Height,
		Depth:         info.Depth,
		MipLevels:     info.MipLevels,
		ArraySize:     info.ArraySize,
		BytesPerBlock: info.BytesPerBlock,
		DataOffset:    info.DataOffset,
		FrameCount:    info.FrameCount,
		Compressed:    info.IsCompressed(),
		Extended:      info.Extended,
		Frames:        make([]frameView, 0, info.FrameCount),
	}

	for i := range info.FrameCount {
		a, m, s, err := info.FrameAt(i)
		if err != nil {
			return nil, err
		}
		sub, err := info.Locate(a, m, s)
		if err != nil {
			return nil, err
		}
		view.Frames = append(view.Frames, frameView{
			Index:  i,
			Array:  a,
			Mip:    m,
			Slice:  s,
			Width:  sub.Width,
			Height: sub.Height,
			Offset: sub.Offset,
			Size:   sub.ByteSize,
		})
	}

	return view, nil
}

func printInfo(w io.Writer, v *infoView) {
	_, _ = fmt.Fprintf(w, "%s\n", v.Path)
	_, _ = fmt.Fprintf(w, "  size:       %dx%dx%d (%s)\n", v.Width, v.Height, v.Depth, v.Dimension)
	_, _ = fmt.Fprintf(w, "  format:     %s (layout %s, %d bytes per block)\n", v.Format, v.Layout, v.BytesPerBlock)
	_, _ = fmt.Fprintf(w, "  alpha:      %s\n", v.AlphaMode)
	_, _ = fmt.Fprintf(w, "  mips:       %d\n", v.MipLevels)
	_, _ = fmt.Fprintf(w, "  array:      %d\n", v.ArraySize)
	_, _ = fmt.Fprintf(w, "  dx10:       %t\n", v.Extended)
	_, _ = fmt.Fprintf(w, "  data:       offset %d\n", v.DataOffset)
	_, _ = fmt.Fprintf(w, "  frames:     %d\n", v.FrameCount)
	for _, f := range v.Frames {
		_, _ = fmt.Fprintf(w, "    #%-4d array %-3d mip %-2d slice %-3d %5dx%-5d offset %-10d size %d\n",
			f.Index, f.Array, f.Mip, f.Slice, f.Width, f.Height, f.Offset, f.Size)
	}
}
