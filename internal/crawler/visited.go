package crawler

// VisitedSet tracks URLs already dequeued during one crawl so no page is
// visited twice. It is crawl-local and discarded when the crawl ends.
type VisitedSet struct {
	seen  map[string]struct{}
	order []string
}

// NewVisitedSet returns an empty set.
func NewVisitedSet() *VisitedSet {
	return &VisitedSet{seen: make(map[string]struct{})}
}

// Mark records the URL as visited. It reports false if the URL was already
// marked, making visit marking idempotent.
func (v *VisitedSet) Mark(url string) bool {
	if _, ok := v.seen[url]; ok {
		return false
	}
	v.seen[url] = struct{}{}
	v.order = append(v.order, url)
	return true
}

// Seen reports whether the URL was already dequeued.
func (v *VisitedSet) Seen(url string) bool {
	_, ok := v.seen[url]
	return ok
}

// Size returns the number of visited URLs, which equals the number of pages
// attempted.
func (v *VisitedSet) Size() int {
	return len(v.seen)
}

// URLs returns the visited URLs in visit order.
func (v *VisitedSet) URLs() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}
