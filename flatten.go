package docfmt

// FlatRecord is the projection of a nested mapping onto dot-joined leaf
// paths. Path order follows the depth-first traversal of the source
// mapping; intermediate mapping nodes never appear, only leaves.
type FlatRecord struct {
	paths  []string
	byPath map[string]string
}

func newFlatRecord() FlatRecord {
	return FlatRecord{byPath: make(map[string]string)}
}

// Paths returns the record's paths in traversal order.
func (r FlatRecord) Paths() []string {
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// Get returns the scalar stored under path. Absent paths yield the empty
// string, the same projection a null leaf gets.
func (r FlatRecord) Get(path string) (string, bool) {
	s, ok := r.byPath[path]
	return s, ok
}

// Len returns the number of leaf paths in the record.
func (r FlatRecord) Len() int { return len(r.paths) }

func (r *FlatRecord) add(path, val string) {
	if _, ok := r.byPath[path]; !ok {
		r.paths = append(r.paths, path)
	}
	r.byPath[path] = val
}

// Flatten projects a mapping onto a flat record. Nested mappings recurse
// with dot-joined prefixes and contribute only their leaves. Sequences are
// not expanded into columns: they are stored whole, in compact form, under
// the current path. Null leaves become empty strings.
func Flatten(m Mapping) FlatRecord {
	r := newFlatRecord()
	flattenInto(&r, m, "")
	return r
}

func flattenInto(r *FlatRecord, m Mapping, prefix string) {
	for _, p := range m {
		path := p.Key
		if prefix != "" {
			path = prefix + "." + p.Key
		}
		switch v := p.Value.(type) {
		case Mapping:
			flattenInto(r, v, path)
		default:
			r.add(path, displayText(v))
		}
	}
}

// UnionHeaders derives the canonical column list for a set of records: the
// union of all paths, in first-seen order, without duplicates.
func UnionHeaders(records []FlatRecord) []string {
	var headers []string
	seen := make(map[string]struct{})
	for _, r := range records {
		for _, p := range r.paths {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			headers = append(headers, p)
		}
	}
	return headers
}

// tabularRecords projects a value onto flat records for tabular output.
// A sequence yields one record per element, flattening mapping elements and
// projecting anything else onto a single "Value" column. A lone mapping
// yields its own flattened record, and a bare scalar a single "Value" cell.
// An empty sequence yields no records; the caller decides whether that is
// an error.
func tabularRecords(v Value) ([]FlatRecord, []string) {
	switch t := v.(type) {
	case Sequence:
		if len(t) == 0 {
			return nil, nil
		}
		recs := make([]FlatRecord, 0, len(t))
		for _, el := range t {
			if m, ok := el.(Mapping); ok {
				recs = append(recs, Flatten(m))
			} else {
				recs = append(recs, scalarRecord(el))
			}
		}
		return recs, UnionHeaders(recs)
	case Mapping:
		rec := Flatten(t)
		return []FlatRecord{rec}, rec.Paths()
	default:
		rec := scalarRecord(v)
		return []FlatRecord{rec}, rec.Paths()
	}
}

func scalarRecord(v Value) FlatRecord {
	r := newFlatRecord()
	r.add("Value", displayText(v))
	return r
}
