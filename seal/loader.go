package seal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"golang.org/x/sync/errgroup"

	"loan-report/domain"
)

// Image is a decoded-enough seal: raw bytes plus natural pixel size.
type Image struct {
	Name   string
	Type   string // "PNG" or "JPG", as the PDF writer expects
	Data   []byte
	Width  int
	Height int
}

// AspectRatio is width over height of the natural image.
func (i Image) AspectRatio() float64 {
	if i.Height == 0 {
		return 1
	}
	return float64(i.Width) / float64(i.Height)
}

// Pair holds both seals drawn on every page of a report.
type Pair struct {
	Primary   Image
	Secondary Image
}

// Decode inspects data and returns an Image describing it.
func Decode(name string, data []byte) (Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %s: %v", domain.ErrImageLoad, name, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return Image{}, fmt.Errorf("%w: %s: empty image", domain.ErrImageLoad, name)
	}

	imgType := "PNG"
	if format == "jpeg" {
		imgType = "JPG"
	}
	return Image{
		Name:   name,
		Type:   imgType,
		Data:   data,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// LoadPair loads both seals concurrently and returns once both are ready.
// If either fails the other is cancelled. A non-positive timeout means no
// limit beyond ctx. Cancellation of ctx is returned as is; any deadline that
// fires, ctx's own or timeout, yields ErrImageLoadTimeout.
func LoadPair(ctx context.Context, src Source, primary, secondary string, timeout time.Duration) (Pair, error) {
	parent := ctx
	started := time.Now()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var pair Pair
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		img, err := load(gctx, src, primary)
		pair.Primary = img
		return err
	})
	g.Go(func() error {
		img, err := load(gctx, src, secondary)
		pair.Secondary = img
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(parent.Err(), context.Canceled) {
			return Pair{}, parent.Err()
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Pair{}, fmt.Errorf("%w after %s", domain.ErrImageLoadTimeout, time.Since(started).Round(time.Millisecond))
		}
		return Pair{}, err
	}
	return pair, nil
}

func load(ctx context.Context, src Source, name string) (Image, error) {
	type result struct {
		data []byte
		err  error
	}
	// Sources that ignore ctx must not be able to stall the caller.
	done := make(chan result, 1)
	go func() {
		data, err := src.Open(ctx, name)
		done <- result{data, err}
	}()

	select {
	case <-ctx.Done():
		return Image{}, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return Image{}, res.err
		}
		return Decode(name, res.data)
	}
}
