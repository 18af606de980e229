package gallery

// Indexed is an item together with its position in the full gallery. The index is what
// the lightbox opens at.
type Indexed struct {
	Item
	Index int
}

// Page is a contiguous run of items starting at Start.
type Page struct {
	Start int
	Items []Indexed
}

// Len returns the number of items in the page.
func (p Page) Len() int { return len(p.Items) }

// Loader tracks how much of the gallery has been shown. A Loader belongs to a single
// request or session and is not safe for concurrent use.
type Loader struct {
	items   []Item
	tiers   Tiers
	bp      Breakpoint
	cursor  int
	pending int
	loading bool
	subs    map[int]func([]Item)
	nextSub int
}

// NewLoader returns a loader over items with nothing shown yet.
func NewLoader(items []Item, tiers Tiers) *Loader {
	return &Loader{items: items, tiers: tiers, bp: Mobile, subs: map[int]func([]Item){}}
}

// Init detects the breakpoint and shows the initial page.
func (l *Loader) Init(width int) Page {
	l.bp = Detect(width)
	l.pending = 0
	l.loading = false
	n := min(l.tiers.InitialFor(l.bp), len(l.items))
	l.cursor = n
	page := l.page(0, n)
	l.notify()
	return page
}

// Resume restores a loader that already shows the first offset items, as when a
// "load more" request carries the client's position. Subscribers are not notified.
func (l *Loader) Resume(width, offset int) {
	l.bp = Detect(width)
	l.cursor = max(0, min(offset, len(l.items)))
	l.pending = 0
	l.loading = false
}

// Begin starts loading the next batch and returns it. It reports false when a load is
// already in flight or nothing remains; the "load more" control is disabled until Finish.
func (l *Loader) Begin() (Page, bool) {
	if l.loading || l.Done() {
		return Page{}, false
	}
	n := min(l.tiers.BatchFor(l.bp), len(l.items)-l.cursor)
	l.pending = n
	l.loading = true
	return l.page(l.cursor, l.cursor+n), true
}

// Finish commits the batch started by Begin, advances the cursor and notifies subscribers.
func (l *Loader) Finish() Page {
	if !l.loading {
		return Page{}
	}
	start := l.cursor
	l.cursor += l.pending
	l.pending = 0
	l.loading = false
	page := l.page(start, l.cursor)
	l.notify()
	return page
}

// LoadMore appends the next batch. Once every item is shown it is a no-op.
func (l *Loader) LoadMore() Page {
	if _, ok := l.Begin(); !ok {
		return Page{}
	}
	return l.Finish()
}

// Resize updates the breakpoint without touching shown items and reports whether it
// changed, in which case the remaining-count label needs refreshing.
func (l *Loader) Resize(width int) bool {
	bp := Detect(width)
	if bp == l.bp {
		return false
	}
	l.bp = bp
	return true
}

// Reset forgets everything shown and starts over at the initial page.
func (l *Loader) Reset(width int) Page {
	return l.Init(width)
}

// Breakpoint returns the current viewport class.
func (l *Loader) Breakpoint() Breakpoint { return l.bp }

// Visible returns every item shown so far as one page.
func (l *Loader) Visible() Page { return l.page(0, l.cursor) }

// Batch is the size of the next "load more" batch, capped by what remains.
func (l *Loader) Batch() int { return min(l.tiers.BatchFor(l.bp), l.Remaining()) }

// Loading reports whether a batch is in flight.
func (l *Loader) Loading() bool { return l.loading }

// Loaded returns how many items are shown.
func (l *Loader) Loaded() int { return l.cursor }

// Total returns the gallery size.
func (l *Loader) Total() int { return len(l.items) }

// Remaining returns how many items are not shown yet.
func (l *Loader) Remaining() int { return len(l.items) - l.cursor }

// Done reports whether every item is shown.
func (l *Loader) Done() bool { return l.cursor >= len(l.items) }

// Shown returns the shown items in order.
func (l *Loader) Shown() []Item {
	out := make([]Item, l.cursor)
	copy(out, l.items[:l.cursor])
	return out
}

// Subscribe registers fn to receive the shown items after every change and returns a
// function that removes it.
func (l *Loader) Subscribe(fn func([]Item)) func() {
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	return func() { delete(l.subs, id) }
}

func (l *Loader) notify() {
	if len(l.subs) == 0 {
		return
	}
	shown := l.Shown()
	for i := 0; i < l.nextSub; i++ {
		if fn, ok := l.subs[i]; ok {
			fn(shown)
		}
	}
}

func (l *Loader) page(from, to int) Page {
	p := Page{Start: from, Items: make([]Indexed, 0, to-from)}
	for i := from; i < to; i++ {
		p.Items = append(p.Items, Indexed{Item: l.items[i], Index: i})
	}
	return p
}
