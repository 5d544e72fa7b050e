package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/woozymasta/dds"
)

var errOutput = errors.New("write output failed")

func extractCmd(verbose *bool) *cli.Command {
	var (
		arrayIndex int
		mipLevel   int
		sliceIndex int
		outPath    string
	)

	return &cli.Command{
		Name:      "extract",
		Usage:     "Decode one frame and write it as PNG",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "array", Usage: "array element or cube face", Destination: &arrayIndex},
			&cli.IntFlag{Name: "mip", Usage: "mip level", Destination: &mipLevel},
			&cli.IntFlag{Name: "slice", Usage: "volume slice", Destination: &sliceIndex},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output PNG path",
				Destination: &outPath,
				Required:    true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}
			a, err := frameIndex("array", arrayIndex)
			if err != nil {
				return err
			}
			m, err := frameIndex("mip", mipLevel)
			if err != nil {
				return err
			}
			s, err := frameIndex("slice", sliceIndex)
			if err != nil {
				return err
			}

			opts := options(*verbose)
			c, err := dds.NewContainerFile(path, opts)
			if err != nil {
				return err
			}
			frame, err := c.Frame(a, m, s)
			if err != nil {
				return err
			}
			img, err := frame.Image()
			if err != nil {
				return err
			}

			if err := writePNG(outPath, img); err != nil {
				return err
			}
			opts.Logger.Info("frame extracted", "file", path, "array", a, "mip", m, "slice", s, "out", outPath)

			return nil
		},
	}
}

func frameIndex(name string, v int) (uint32, error) {
	if v < 0 || uint64(v) > uint64(^uint32(0)) {
		return 0, fmt.Errorf("--%s: %d out of range", name, v)
	}

	return uint32(v), nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", errOutput, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %q: %w", errOutput, path, cerr)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("%w: %q: %w", errOutput, path, err)
	}

	return nil
}
