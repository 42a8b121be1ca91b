package query

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/kbukum/prodquery/errors"
)

// Direction is the sort direction of a Key.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts "asc", "ascending", "desc" and "descending". Empty means ascending.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, true
	case "desc", "descending":
		return Descending, true
	default:
		return Ascending, false
	}
}

// Key orders elements of T by one comparable attribute.
type Key[T any] struct {
	name string
	cmp  func(a, b T) int
	dir  Direction
	err  error
}

// By builds an ascending key from a selector returning an ordered value.
func By[T any, K cmp.Ordered](sel func(T) K) Key[T] {
	if sel == nil {
		return Key[T]{err: errors.InvalidSortKey("", "nil selector")}
	}
	return Key[T]{cmp: func(a, b T) int { return cmp.Compare(sel(a), sel(b)) }}
}

// Natural orders ordered scalars by their own value.
func Natural[T cmp.Ordered]() Key[T] {
	return Key[T]{name: "value", cmp: cmp.Compare[T]}
}

// Named labels the key for logs and errors.
func (k Key[T]) Named(name string) Key[T] {
	k.name = name
	return k
}

// Name returns the key label, if any.
func (k Key[T]) Name() string { return k.name }

// Asc returns the key with ascending direction.
func (k Key[T]) Asc() Key[T] { return k.Direction(Ascending) }

// Desc returns the key with descending direction.
func (k Key[T]) Desc() Key[T] { return k.Direction(Descending) }

// Direction returns the key with the given direction.
func (k Key[T]) Direction(d Direction) Key[T] {
	k.dir = d
	return k
}

func (k Key[T]) String() string {
	name := k.name
	if name == "" {
		name = "key"
	}
	return name + ":" + k.dir.String()
}

func (k Key[T]) validate() error {
	if k.err != nil {
		return k.err
	}
	if k.cmp == nil {
		return errors.InvalidSortKey(k.name, "key has no comparer")
	}
	return nil
}

// OrderBy returns a stably sorted copy of src. The first key is primary and
// each following key breaks ties left by the previous ones.
func OrderBy[T any](src []T, keys ...Key[T]) ([]T, error) {
	if len(keys) == 0 {
		return nil, errors.InvalidSortKey("", "no sort keys given")
	}
	for _, k := range keys {
		if err := k.validate(); err != nil {
			return nil, err
		}
	}
	out := All(src)
	slices.SortStableFunc(out, func(a, b T) int {
		for _, k := range keys {
			c := k.cmp(a, b)
			if k.dir == Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return out, nil
}

// Field resolves an ascending key on a struct field of T (or *T) by Go name,
// json tag or yaml tag, case-insensitively. Only string, integer and float
// fields can be ordered; anything else is INVALID_SORT_KEY.
func Field[T any](name string) (Key[T], error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Key[T]{}, errors.InvalidSortKey(name, "empty field name")
	}

	typ := reflect.TypeFor[T]()
	isPtr := typ.Kind() == reflect.Pointer
	if isPtr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return Key[T]{}, errors.InvalidSortKey(name, fmt.Sprintf("%s has no fields", typ))
	}

	sf, ok := lookupField(typ, name)
	if !ok {
		return Key[T]{}, errors.InvalidSortKey(name, fmt.Sprintf("no orderable field on %s", typ.Name()))
	}
	compare, ok := kindComparer(sf.Type.Kind())
	if !ok {
		return Key[T]{}, errors.InvalidSortKey(name, fmt.Sprintf("field %s of type %s is not orderable", sf.Name, sf.Type))
	}

	idx := sf.Index
	return Key[T]{
		name: name,
		cmp: func(a, b T) int {
			va, vb := reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem()
			if isPtr {
				// nil elements sort before non-nil ones
				switch {
				case va.IsNil() && vb.IsNil():
					return 0
				case va.IsNil():
					return -1
				case vb.IsNil():
					return 1
				}
				va, vb = va.Elem(), vb.Elem()
			}
			return compare(va.FieldByIndex(idx), vb.FieldByIndex(idx))
		},
	}, nil
}

// ParseKeys builds keys from text like "color:desc,name".
func ParseKeys[T any](expr string) ([]Key[T], error) {
	if strings.TrimSpace(expr) == "" {
		return nil, errors.InvalidSortKey("", "empty key list")
	}
	var keys []Key[T]
	for _, part := range strings.Split(expr, ",") {
		field, dirText, _ := strings.Cut(strings.TrimSpace(part), ":")
		dir, ok := ParseDirection(dirText)
		if !ok {
			return nil, errors.InvalidSortKey(field, fmt.Sprintf("unknown direction %q", dirText))
		}
		k, err := Field[T](field)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k.Direction(dir))
	}
	return keys, nil
}

func lookupField(typ reflect.Type, name string) (reflect.StructField, bool) {
	for _, sf := range reflect.VisibleFields(typ) {
		if !sf.IsExported() || sf.Anonymous || !reachable(typ, sf.Index) {
			continue
		}
		if strings.EqualFold(sf.Name, name) ||
			strings.EqualFold(tagName(sf, "json"), name) ||
			strings.EqualFold(tagName(sf, "yaml"), name) {
			return sf, true
		}
	}
	return reflect.StructField{}, false
}

// reachable rejects fields promoted through embedded pointers, which
// FieldByIndex cannot follow when nil.
func reachable(typ reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		typ = typ.Field(i).Type
		if typ.Kind() != reflect.Struct {
			return false
		}
	}
	return true
}

func tagName(sf reflect.StructField, tag string) string {
	name, _, _ := strings.Cut(sf.Tag.Get(tag), ",")
	if name == "-" {
		return ""
	}
	return name
}

func kindComparer(kind reflect.Kind) (func(a, b reflect.Value) int, bool) {
	switch kind {
	case reflect.String:
		return func(a, b reflect.Value) int { return strings.Compare(a.String(), b.String()) }, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Int(), b.Int()) }, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Uint(), b.Uint()) }, true
	case reflect.Float32, reflect.Float64:
		return func(a, b reflect.Value) int { return cmp.Compare(a.Float(), b.Float()) }, true
	default:
		return nil, false
	}
}
