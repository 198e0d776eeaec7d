package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// renderers hands out glamour renderers per Options value. A TermRenderer
// must not serve two Render calls at once, so each caller borrows one.
type renderers struct {
	pools sync.Map // Options -> *sync.Pool
}

var shared = &renderers{}

func (r *renderers) pool(opts Options) *sync.Pool {
	if p, ok := r.pools.Load(opts); ok {
		return p.(*sync.Pool)
	}
	p, _ := r.pools.LoadOrStore(opts, &sync.Pool{})
	return p.(*sync.Pool)
}

// borrow returns a pooled renderer or builds a new one. Build errors
// (a bad style path) are returned every time and nothing is pooled.
func (r *renderers) borrow(opts Options) (*glamour.TermRenderer, error) {
	if tr, ok := r.pool(opts).Get().(*glamour.TermRenderer); ok {
		return tr, nil
	}
	return newRenderer(opts)
}

func (r *renderers) release(opts Options, tr *glamour.TermRenderer) {
	r.pool(opts).Put(tr)
}

// size reports how many distinct option sets have been seen
func (r *renderers) size() int {
	n := 0
	r.pools.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	styleOpt := glamour.WithStylePath(opts.Style)
	if opts.Style == ThemeFunland || opts.Style == "" {
		styleOpt = glamour.WithStyles(FunlandStyle())
	}

	ropts := []glamour.TermRendererOption{styleOpt, glamour.WithWordWrap(opts.Width)}
	if opts.EnableEmoji {
		ropts = append(ropts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		ropts = append(ropts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(ropts...)
}
