package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/AnyUserName/momento-cli/internal/raster"
	"github.com/AnyUserName/momento-cli/internal/state"
)

// ErrStaleGeneration is returned by a render that was superseded before it
// finished. Its output is discarded; callers should ignore this error.
var ErrStaleGeneration = errors.New("render superseded by a newer generation")

// Compositor serializes interactive re-renders of one photo. Each Render
// call gets a new generation; starting a render cancels the one in flight,
// and only the latest generation may commit its result.
type Compositor struct {
	p *Pipeline

	gen atomic.Uint64

	mu        sync.Mutex
	cancel    context.CancelFunc
	latest    EncodedImage
	latestGen uint64
}

// NewCompositor wraps p.
func NewCompositor(p *Pipeline) *Compositor {
	return &Compositor{p: p}
}

// Render composes st over src as a new generation. It returns
// ErrStaleGeneration if another Render started before this one committed.
func (c *Compositor) Render(ctx context.Context, src *raster.Image, st state.State) (EncodedImage, error) {
	gen := c.gen.Add(1)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.mu.Unlock()

	out, err := c.p.compose(ctx, src, st, func() error { return c.check(gen) })
	if err != nil {
		if c.gen.Load() != gen {
			c.p.logf("discarded generation %d: %v", gen, err)
			return EncodedImage{}, ErrStaleGeneration
		}
		return EncodedImage{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen.Load() != gen || gen <= c.latestGen {
		c.p.logf("discarded generation %d", gen)
		return EncodedImage{}, ErrStaleGeneration
	}
	c.latest = out
	c.latestGen = gen
	return out, nil
}

func (c *Compositor) check(gen uint64) error {
	if c.gen.Load() != gen {
		return ErrStaleGeneration
	}
	return nil
}

// Latest returns the most recently committed image and its generation.
func (c *Compositor) Latest() (EncodedImage, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest, c.latestGen, c.latestGen > 0
}

// Generation returns the newest generation requested so far.
func (c *Compositor) Generation() uint64 {
	return c.gen.Load()
}
