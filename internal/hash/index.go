package hash

// Index maps names to their insertion positions through their xxHash64.
//
// Names that share a hash are chained, and a name added twice resolves to its latest position,
// which gives JSON objects with duplicate keys last-one-wins semantics.
type Index struct {
	heads map[uint64]int
	names []string
	next  []int
}

// NewIndex creates an Index sized for n names.
func NewIndex(n int) *Index {
	return &Index{
		heads: make(map[uint64]int, n),
		names: make([]string, 0, n),
		next:  make([]int, 0, n),
	}
}

// Add appends name and returns its position.
func (x *Index) Add(name string) int {
	pos := len(x.names)
	h := ID(name)

	prev, ok := x.heads[h]
	if !ok {
		prev = -1
	}
	x.heads[h] = pos
	x.names = append(x.names, name)
	x.next = append(x.next, prev)

	return pos
}

// Lookup returns the latest position of name.
func (x *Index) Lookup(name string) (int, bool) {
	pos, ok := x.heads[ID(name)]
	if !ok {
		return -1, false
	}
	for ; pos >= 0; pos = x.next[pos] {
		if x.names[pos] == name {
			return pos, true
		}
	}

	return -1, false
}

// LookupBytes is Lookup for a byte slice key. It does not allocate.
func (x *Index) LookupBytes(name []byte) (int, bool) {
	pos, ok := x.heads[Bytes(name)]
	if !ok {
		return -1, false
	}
	for ; pos >= 0; pos = x.next[pos] {
		if x.names[pos] == string(name) {
			return pos, true
		}
	}

	return -1, false
}

// Len returns the number of names added.
func (x *Index) Len() int {
	return len(x.names)
}

// Reset empties the index while retaining its capacity.
func (x *Index) Reset() {
	clear(x.heads)
	x.names = x.names[:0]
	x.next = x.next[:0]
}
