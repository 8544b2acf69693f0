package grid

import (
	"time"

	"github.com/zjrosen/vgrid/internal/grid/rendercache"
	"github.com/zjrosen/vgrid/internal/log"
	"github.com/zjrosen/vgrid/internal/pubsub"
)

// Render runs a render pass at the current scroll position.
func (g *Grid) Render() error {
	return g.RenderVisibleCells(g.scrollTop, g.scrollLeft)
}

// Refresh forces a full re-render of every visible cell regardless of
// fingerprints. Cached renders may still be served; use ClearCache
// first to force the render hooks to run.
func (g *Grid) Refresh() error {
	g.forceNext = true
	return g.Render()
}

// RenderVisibleCells diffs the visible range against the previous
// pass. Cells that left the range run their renderer's Destroy hook
// and return to the pool; cells that entered acquire an element and
// run Render (consulting the cache first); cells that stayed run
// Update only when their fingerprint changed. Work is proportional to
// the overscanned range, never the dataset.
func (g *Grid) RenderVisibleCells(scrollTop, scrollLeft int) error {
	switch g.state {
	case StateDestroyed:
		return ErrDestroyed
	case StateUninitialized:
		return ErrNotInitialized
	}

	start := time.Now()
	g.scrollTop = scrollTop
	g.scrollLeft = scrollLeft
	g.clampScroll()

	g.state = StateRendering
	g.rendering = true
	g.pass++
	force := g.forceNext
	g.forceNext = false

	r := g.viewport.VisibleRange(g.scrollTop, g.scrollLeft)
	g.broker.Publish(pubsub.RenderStartEvent, RenderInfo{Pass: g.pass, Range: r})

	info := RenderInfo{Pass: g.pass, Range: r}

	// Leavers: out of range, or resolving to no data row after a
	// filter shrank the presentation.
	for ref, rc := range g.rendered {
		_, resolvable := g.transform.ViewToData(ref.Row)
		if r.Contains(ref.Row, ref.Col) && resolvable {
			continue
		}
		rc.renderer.Destroy(rc.el)
		g.elements.Release(rc.el)
		delete(g.rendered, ref)
		info.Released++
	}

	// Enterers and stayers.
	for vr := r.StartRow; vr <= r.EndRow; vr++ {
		dataRow, ok := g.transform.ViewToData(vr)
		if !ok {
			continue
		}
		for vc := r.StartCol; vc <= r.EndCol; vc++ {
			dataCol := g.colOrder[vc]
			value, _ := g.dataValue(dataRow, dataCol)

			var flags rendercache.Flags
			if g.flagsFn != nil {
				flags = g.flagsFn(dataRow, dataCol)
			}

			rect := g.viewport.CellRect(vr, vc)
			key := rendercache.Fingerprint(vr, vc, value, flags, rect.Width, g.opts.Theme)
			ctx := CellContext{
				ViewRow: vr,
				ViewCol: vc,
				DataRow: dataRow,
				DataCol: dataCol,
				Value:   value,
				Rect:    rect,
				Flags:   flags,
				Theme:   g.opts.Theme,
			}
			renderer := g.columns[vc].renderer
			ref := CellRef{Row: vr, Col: vc}

			if rc, present := g.rendered[ref]; present {
				if rc.key == key && !force {
					info.Reused++
					continue
				}
				rc.el.Content = g.cachedUpdate(renderer, ctx, key, rc.el.Content)
				rc.key = key
				rc.renderer = renderer
				info.Rendered++
				continue
			}

			el, err := g.elements.Acquire(vr, vc)
			if err != nil {
				g.finishPass(&info, start)
				return err
			}
			el.Content = g.cachedRender(renderer, ctx, key)
			g.rendered[ref] = &renderedCell{el: el, key: key, renderer: renderer}
			info.Rendered++
		}
	}

	g.finishPass(&info, start)
	return nil
}

// UpdateCells re-runs the update path for specific rendered cells,
// bypassing the fingerprint short-circuit. Hosts call this after an
// in-place edit that changed cell data without a structural change.
// Refs outside the rendered set are ignored; they will pick up the new
// value when they next enter the range.
func (g *Grid) UpdateCells(refs []CellRef) error {
	switch g.state {
	case StateDestroyed:
		return ErrDestroyed
	case StateUninitialized:
		return ErrNotInitialized
	}
	if g.rendering {
		g.deferred = append(g.deferred, func() { _ = g.UpdateCells(refs) })
		return nil
	}

	for _, ref := range refs {
		rc, present := g.rendered[ref]
		if !present {
			continue
		}
		dataRow, ok := g.transform.ViewToData(ref.Row)
		if !ok {
			continue
		}
		dataCol := g.colOrder[ref.Col]
		value, _ := g.dataValue(dataRow, dataCol)

		var flags rendercache.Flags
		if g.flagsFn != nil {
			flags = g.flagsFn(dataRow, dataCol)
		}

		rect := g.viewport.CellRect(ref.Row, ref.Col)
		key := rendercache.Fingerprint(ref.Row, ref.Col, value, flags, rect.Width, g.opts.Theme)
		ctx := CellContext{
			ViewRow: ref.Row,
			ViewCol: ref.Col,
			DataRow: dataRow,
			DataCol: dataCol,
			Value:   value,
			Rect:    rect,
			Flags:   flags,
			Theme:   g.opts.Theme,
		}
		rc.el.Content = rc.renderer.Update(ctx, rc.el.Content)
		g.cache.Put(key, rc.el.Content)
		rc.key = key
	}
	return nil
}

// cachedRender serves a cache hit or runs the render hook and stores
// the result.
func (g *Grid) cachedRender(renderer CellRenderer, ctx CellContext, key rendercache.Key) string {
	if content, ok := g.cache.Get(key); ok {
		return content
	}
	content := renderer.Render(ctx)
	g.cache.Put(key, content)
	return content
}

// cachedUpdate is the same for the update hook of a staying cell.
func (g *Grid) cachedUpdate(renderer CellRenderer, ctx CellContext, key rendercache.Key, prev string) string {
	if content, ok := g.cache.Get(key); ok {
		return content
	}
	content := renderer.Update(ctx, prev)
	g.cache.Put(key, content)
	return content
}

// finishPass closes out a pass: publish the end event, restore the
// lifecycle state, and apply mutations that arrived mid-pass.
func (g *Grid) finishPass(info *RenderInfo, start time.Time) {
	info.Duration = time.Since(start)
	g.state = StateInitialized
	g.rendering = false
	g.broker.Publish(pubsub.RenderEndEvent, *info)
	log.Debug(log.CatGrid, "render pass",
		"pass", info.Pass,
		"rendered", info.Rendered,
		"reused", info.Reused,
		"released", info.Released,
		"dur", info.Duration)

	if len(g.deferred) > 0 {
		pending := g.deferred
		g.deferred = nil
		for _, fn := range pending {
			fn()
		}
	}
}
