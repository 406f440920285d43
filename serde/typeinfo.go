package serde

import (
	"cmp"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/arloliu/jsimd/internal/hash"
)

// field describes one encodable struct field.
type field struct {
	name      string
	index     []int
	typ       reflect.Type
	omitEmpty bool
	tagged    bool
	depth     int
}

// structInfo is the cached field layout of a struct type. names maps a field name to its
// position in fields.
type structInfo struct {
	fields []field
	names  *hash.Index
}

var structCache sync.Map // reflect.Type -> *structInfo

func cachedStructInfo(t reflect.Type) *structInfo {
	if si, ok := structCache.Load(t); ok {
		return si.(*structInfo)
	}

	fields := typeFields(t)
	si := &structInfo{fields: fields, names: hash.NewIndex(len(fields))}
	for _, f := range fields {
		si.names.Add(f.name)
	}

	actual, _ := structCache.LoadOrStore(t, si)

	return actual.(*structInfo)
}

// typeFields lists the fields of t in declaration order, flattening embedded structs. When several
// fields share a name the shallowest wins, then the tagged one; remaining ties drop the name.
func typeFields(t reflect.Type) []field {
	type embedded struct {
		typ   reflect.Type
		index []int
	}

	var fields []field
	visited := map[reflect.Type]bool{}
	current := []embedded{{typ: t}}

	for depth := 0; len(current) > 0; depth++ {
		var next []embedded
		for _, e := range current {
			if visited[e.typ] {
				continue
			}
			visited[e.typ] = true

			for i := range e.typ.NumField() {
				sf := e.typ.Field(i)
				tag := sf.Tag.Get("json")
				if tag == "-" {
					continue
				}
				name, opts, _ := strings.Cut(tag, ",")
				index := append(slices.Clone(e.index), i)

				if sf.Anonymous {
					ft := sf.Type
					if ft.Kind() == reflect.Pointer {
						ft = ft.Elem()
					}
					if name == "" && ft.Kind() == reflect.Struct {
						if !sf.IsExported() && sf.Type.Kind() == reflect.Pointer {
							continue
						}
						next = append(next, embedded{typ: ft, index: index})

						continue
					}
				}
				if !sf.IsExported() {
					continue
				}

				f := field{
					name:      name,
					index:     index,
					typ:       sf.Type,
					omitEmpty: hasOption(opts, "omitempty"),
					tagged:    name != "",
					depth:     depth,
				}
				if f.name == "" {
					f.name = sf.Name
				}
				fields = append(fields, f)
			}
		}
		current = next
	}

	return dominantFields(fields)
}

func hasOption(opts string, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}

	return false
}

func dominantFields(fields []field) []field {
	slices.SortStableFunc(fields, func(a, b field) int {
		if c := strings.Compare(a.name, b.name); c != 0 {
			return c
		}
		if c := cmp.Compare(a.depth, b.depth); c != 0 {
			return c
		}
		if a.tagged != b.tagged {
			if a.tagged {
				return -1
			}

			return 1
		}

		return 0
	})

	out := fields[:0]
	for i := 0; i < len(fields); {
		j := i + 1
		for j < len(fields) && fields[j].name == fields[i].name {
			j++
		}
		first := fields[i]
		if j-i == 1 || fields[i+1].depth != first.depth || fields[i+1].tagged != first.tagged {
			out = append(out, first)
		}
		i = j
	}

	slices.SortFunc(out, func(a, b field) int {
		return slices.Compare(a.index, b.index)
	})

	return out
}

// fieldByIndex walks index from v. With alloc set nil embedded pointers are allocated, otherwise
// a nil pointer on the way reports false.
func fieldByIndex(v reflect.Value, index []int, alloc bool) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !alloc || !v.CanSet() {
					return reflect.Value{}, false
				}
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}

	return v, true
}
