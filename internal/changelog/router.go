package changelog

// Router assigns parsed lines to section indexes.
type Router struct {
	index map[string]int
}

// NewRouter indexes every tag of every section. When two sections declare
// the same tag, the section declared later wins.
func NewRouter(infos []SectionInfo) *Router {
	// First pass: flatten the ordered sections into (tag, index) entries.
	type entry struct {
		tag   string
		index int
	}
	var entries []entry
	for i, info := range infos {
		for _, tag := range info.Tags {
			entries = append(entries, entry{tag: tag, index: i})
		}
	}

	// Second pass: write in declaration order, overwriting earlier entries.
	index := make(map[string]int, len(entries))
	for _, e := range entries {
		index[e.tag] = e.index
	}
	return &Router{index: index}
}

// SectionFor returns the section index a single tag maps to.
func (r *Router) SectionFor(tag string) (int, bool) {
	i, ok := r.index[tag]
	return i, ok
}

// Route returns the section for line: the first of its tags that is mapped,
// then the wildcard section. It reports false when the line belongs nowhere.
func (r *Router) Route(line Line) (int, bool) {
	for _, tag := range line.Tags {
		if i, ok := r.index[tag]; ok {
			return i, true
		}
	}
	return r.SectionFor(WildcardTag)
}
