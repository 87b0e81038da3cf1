package tabs

import "sort"

// LazyMountManager tracks which pages have ever been selected. The set only
// grows.
type LazyMountManager struct {
	pageCount int
	mounted   map[int]bool
	onMount   []func(index int)
}

// NewLazyMountManager creates a manager. With lazy unset every page is
// mounted immediately; otherwise only initial is.
func NewLazyMountManager(pageCount, initial int, lazy bool) *LazyMountManager {
	m := &LazyMountManager{
		pageCount: pageCount,
		mounted:   make(map[int]bool, pageCount),
	}
	if !lazy {
		for i := 0; i < pageCount; i++ {
			m.mounted[i] = true
		}
		return m
	}
	if initial >= 0 && initial < pageCount {
		m.mounted[initial] = true
	}
	return m
}

// OnMount registers fn to run when a page becomes mounted for the first time.
func (m *LazyMountManager) OnMount(fn func(index int)) {
	m.onMount = append(m.onMount, fn)
}

// OnIndexSelected mounts index if it isn't already.
func (m *LazyMountManager) OnIndexSelected(index int) {
	if index < 0 || index >= m.pageCount || m.mounted[index] {
		return
	}
	m.mounted[index] = true
	for _, fn := range m.onMount {
		fn(index)
	}
}

// IsMounted reports whether index has been mounted.
func (m *LazyMountManager) IsMounted(index int) bool {
	return m.mounted[index]
}

// Mounted returns mounted page indices in ascending order.
func (m *LazyMountManager) Mounted() []int {
	out := make([]int, 0, len(m.mounted))
	for i := range m.mounted {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
