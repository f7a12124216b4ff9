package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tableflip.dev/diary/pkg/async"
	"tableflip.dev/diary/pkg/entry"
)

// Request configures a pick.
type Request struct {
	AllowMultiple bool
	ImagesOnly    bool
}

// Picker is the system media picker.
type Picker interface {
	Pick(ctx context.Context, req Request) <-chan async.Result[[]entry.Image]
}

// FilePicker "picks" the files it was given, typically command line args.
type FilePicker struct {
	Paths []string

	readFile func(string) ([]byte, error)
}

// Pick reads every path. Unreadable files and, with ImagesOnly, non-images
// are reported in the error while the rest are still returned.
func (p *FilePicker) Pick(ctx context.Context, req Request) <-chan async.Result[[]entry.Image] {
	read := p.readFile
	if read == nil {
		read = os.ReadFile
	}
	paths := p.Paths
	if !req.AllowMultiple && len(paths) > 1 {
		paths = paths[:1]
	}
	return async.Go(ctx, func(ctx context.Context) ([]entry.Image, error) {
		var (
			images []entry.Image
			errs   []error
		)
		for _, path := range paths {
			if err := ctx.Err(); err != nil {
				return images, err
			}
			data, err := read(path)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: read %s: %v", ErrMediaIO, path, err))
				continue
			}
			img := entry.NewImage(filepath.Base(path), data)
			if req.ImagesOnly && !img.IsImage() {
				errs = append(errs, fmt.Errorf("%w: %s is %s, not an image", ErrMediaIO, path, img.ContentType))
				continue
			}
			images = append(images, img)
		}
		return images, errors.Join(errs...)
	})
}
