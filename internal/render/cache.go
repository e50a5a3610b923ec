package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// maxPools bounds how many option sets keep idle renderers. Every terminal
// resize yields a new width, so the least recently used widths go first.
const maxPools = 8

// rendererPool hands out glamour renderers per option set.
// A TermRenderer must not be shared by concurrent Render calls, so callers
// take one out and put it back when done.
type rendererPool struct {
	mu    sync.Mutex
	pools map[Options]*poolEntry
	tick  uint64
	limit int
}

type poolEntry struct {
	idle     sync.Pool
	lastUsed uint64
}

var globalPool = newRendererPool(maxPools)

func newRendererPool(limit int) *rendererPool {
	return &rendererPool{
		pools: make(map[Options]*poolEntry),
		limit: limit,
	}
}

// entry returns the pool for opts, creating it and evicting the stalest
// entry when the limit is exceeded
func (p *rendererPool) entry(opts Options) *poolEntry {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tick++
	e, ok := p.pools[opts]
	if ok {
		e.lastUsed = p.tick
		return e
	}

	e = &poolEntry{lastUsed: p.tick}
	p.pools[opts] = e
	p.evictLocked()
	return e
}

func (p *rendererPool) evictLocked() {
	for len(p.pools) > p.limit {
		var (
			oldest     Options
			oldestTick uint64
			found      bool
		)
		for opts, e := range p.pools {
			if !found || e.lastUsed < oldestTick {
				oldest, oldestTick, found = opts, e.lastUsed, true
			}
		}
		delete(p.pools, oldest)
	}
}

// get takes a renderer for opts, building one if none is idle
func (p *rendererPool) get(opts Options) (*glamour.TermRenderer, error) {
	if r, ok := p.entry(opts).idle.Get().(*glamour.TermRenderer); ok {
		return r, nil
	}
	return createRenderer(opts)
}

// put returns a renderer. Renderers for evicted option sets are dropped.
func (p *rendererPool) put(opts Options, renderer *glamour.TermRenderer) {
	if renderer == nil {
		return
	}

	p.mu.Lock()
	e, ok := p.pools[opts]
	p.mu.Unlock()

	if ok {
		e.idle.Put(renderer)
	}
}

func (p *rendererPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pools)
}

func (p *rendererPool) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pools = make(map[Options]*poolEntry)
}

// createRenderer builds a TermRenderer for opts
func createRenderer(opts Options) (*glamour.TermRenderer, error) {
	width := opts.Width
	if width < 1 {
		width = 1
	}

	rendererOpts := []glamour.TermRendererOption{
		glamour.WithStylePath(opts.Style),
		glamour.WithWordWrap(width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(rendererOpts...)
}

// ClearCache drops every idle renderer
func ClearCache() {
	globalPool.reset()
}

// CacheSize returns how many option sets currently have a pool
func CacheSize() int {
	return globalPool.size()
}
