package pst

import "sort"

type iterFrame struct {
	id    uint64
	depth int
}

// ItemIterator lazily materializes items depth-first from the root
// descriptor. Each iterator owns its own cursor; several may run over
// one session concurrently.
type ItemIterator struct {
	p      *PST
	stack  []iterFrame
	filter func(*Item) bool
}

func (p *PST) newIterator(filter func(*Item) bool) *ItemIterator {
	it := &ItemIterator{p: p, filter: filter}
	if root := p.RootDescriptor(); root != nil {
		it.push(root, 0)
	}
	return it
}

func (it *ItemIterator) push(desc *Descriptor, depth int) {
	children := append([]uint64(nil), desc.Children...)
	sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })
	for i := len(children) - 1; i >= 0; i-- {
		it.stack = append(it.stack, iterFrame{id: children[i], depth: depth})
	}
}

// Next returns the next matching item, or false when the walk is
// done. Descriptors whose blocks cannot be materialized are skipped.
func (it *ItemIterator) Next() (*Item, int, bool) {
	for len(it.stack) > 0 {
		frame := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		desc, ok := it.p.Descriptors[frame.id]
		if !ok {
			continue
		}
		it.push(desc, frame.depth+1)

		item, err := it.p.LoadItem(desc)
		if err != nil {
			continue
		}
		if it.filter != nil && !it.filter(item) {
			continue
		}
		return item, frame.depth, true
	}
	return nil, 0, false
}

// Items iterates every materializable item under the root.
func (p *PST) Items() *ItemIterator {
	return p.newIterator(nil)
}

// Messages iterates non-folder items.
func (p *PST) Messages() *ItemIterator {
	return p.newIterator(func(i *Item) bool { return i.IsMessage() })
}

// Folders iterates folder items.
func (p *PST) Folders() *ItemIterator {
	return p.newIterator(func(i *Item) bool { return i.IsFolder() })
}

// Walk visits every item depth-first, carrying the depth below root.
// Returning false stops the walk.
func (p *PST) Walk(fn func(item *Item, depth int) bool) {
	it := p.Items()
	for {
		item, depth, ok := it.Next()
		if !ok {
			return
		}
		if !fn(item, depth) {
			return
		}
	}
}
