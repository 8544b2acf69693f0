package grid

// Frame coalescing. Scroll events arrive faster than frames; each
// request overwrites the pending target and the host drains at most
// one render per frame tick. Superseded targets are never rendered,
// which is the cancellation model: there is nothing to abort, the
// stale request simply loses the slot.

// RequestRender records a scroll target for the next frame,
// replacing any pending one.
func (g *Grid) RequestRender(scrollTop, scrollLeft int) {
	if g.state == StateDestroyed {
		return
	}
	g.pendingRender = true
	g.targetTop = scrollTop
	g.targetLeft = scrollLeft
}

// HasPendingRender reports whether a frame flush would do work.
func (g *Grid) HasPendingRender() bool { return g.pendingRender }

// FlushFrame renders the latest pending target, if any. It returns
// whether a pass ran. Hosts call this once per frame tick.
func (g *Grid) FlushFrame() (bool, error) {
	if !g.pendingRender {
		return false, nil
	}
	g.pendingRender = false
	if err := g.RenderVisibleCells(g.targetTop, g.targetLeft); err != nil {
		return false, err
	}
	return true, nil
}
