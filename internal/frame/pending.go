package frame

import (
	"context"

	"github.com/AnyUserName/momento-cli/internal/raster"
)

// Pending is the eventual result of a frame stage.
type Pending struct {
	done chan struct{}
	img  *raster.Image
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// Resolved returns a Pending that is already complete.
func Resolved(img *raster.Image, err error) *Pending {
	p := newPending()
	p.resolve(img, err)
	return p
}

func (p *Pending) resolve(img *raster.Image, err error) {
	p.img, p.err = img, err
	close(p.done)
}

// Done is closed once the result is available.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the frame is drawn or ctx is done.
func (p *Pending) Wait(ctx context.Context) (*raster.Image, error) {
	select {
	case <-p.done:
		return p.img, p.err
	default:
	}
	select {
	case <-p.done:
		return p.img, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
