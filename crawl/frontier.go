package crawl

// entry is a queued page with the link depth it may still follow.
type entry struct {
	URL   string
	Depth int
}

// Frontier is a FIFO worklist of normalized URLs. Each URL is accepted
// at most once, so the queue never holds duplicates.
// It is not safe for concurrent use.
type Frontier struct {
	seen  map[string]struct{}
	queue []entry
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{seen: make(map[string]struct{})}
}

// Push enqueues url with the given remaining depth.
// Returns false if the URL has already been pushed.
func (f *Frontier) Push(url string, depth int) bool {
	if _, ok := f.seen[url]; ok {
		return false
	}
	f.seen[url] = struct{}{}
	f.queue = append(f.queue, entry{URL: url, Depth: depth})
	return true
}

// Pop removes and returns the oldest entry.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, int, bool) {
	if len(f.queue) == 0 {
		return "", 0, false
	}
	e := f.queue[0]
	f.queue[0] = entry{}
	f.queue = f.queue[1:]
	return e.URL, e.Depth, true
}
