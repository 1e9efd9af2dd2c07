package main

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// columnRef is a user supplied column, either by header name or by 0-based
// index.
type columnRef struct {
	name    string
	index   int
	isIndex bool
}

func nameRef(name string) columnRef {
	return columnRef{name: name}
}

func indexRef(idx int) columnRef {
	return columnRef{index: idx, isIndex: true}
}

func (r columnRef) String() string {
	if r.isIndex {
		return strconv.Itoa(r.index)
	}
	return strconv.Quote(r.name)
}

// parseColumnRefs splits a comma separated list. Integer tokens are indices,
// others names. An empty list means auto-detect and returns nil.
func parseColumnRefs(spec string) []columnRef {
	if spec == "" {
		return nil
	}

	parts := strings.Split(spec, ",")
	refs := make([]columnRef, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if idx, err := strconv.Atoi(p); err == nil {
			refs = append(refs, indexRef(idx))
		} else {
			refs = append(refs, nameRef(p))
		}
	}
	return refs
}

type columnSelector struct {
	auto    bool
	columns map[int]struct{}
}

func autoSelector() columnSelector {
	return columnSelector{auto: true}
}

// selects tells whether the cell at column col is a conversion candidate.
// Column 0 never is.
func (s columnSelector) selects(col int, cell string) bool {
	if col == 0 {
		return false
	}
	if s.auto {
		return isHexString(cell)
	}
	_, ok := s.columns[col]
	return ok
}

// indices returns the explicit columns in ascending order, nil in auto mode.
func (s columnSelector) indices() []int {
	if s.auto {
		return nil
	}
	var idx []int
	for i := 1; len(idx) < len(s.columns); i++ {
		if _, ok := s.columns[i]; ok {
			idx = append(idx, i)
		}
	}
	return idx
}

// resolveColumns maps refs onto header positions. Refs that cannot be used are
// dropped, and reported through the returned error, which is not fatal.
func resolveColumns(refs []columnRef, header []string) (columnSelector, error) {
	if refs == nil {
		return autoSelector(), nil
	}

	colIdx := getColIndex(header)
	sel := columnSelector{columns: make(map[int]struct{}, len(refs))}

	var warnings error
	for _, ref := range refs {
		if ref.isIndex {
			switch {
			case ref.index == 0:
				warnings = multierr.Append(warnings, fmt.Errorf("column index %d is the first column and will be ignored", ref.index))
			case ref.index < 0 || ref.index >= len(header):
				warnings = multierr.Append(warnings, fmt.Errorf("column index %d out of range (header has %d columns)", ref.index, len(header)))
			default:
				sel.columns[ref.index] = struct{}{}
			}
			continue
		}

		idx, ok := colIdx[ref.name]
		switch {
		case !ok:
			warnings = multierr.Append(warnings, fmt.Errorf("column %s not found in header", ref))
		case idx == 0:
			warnings = multierr.Append(warnings, fmt.Errorf("column %s is the first column and will be ignored", ref))
		default:
			sel.columns[idx] = struct{}{}
		}
	}

	return sel, warnings
}

// getColIndex maps each header name to its first position.
func getColIndex(title []string) map[string]int {
	var colIdx = make(map[string]int, len(title))
	for i, name := range title {
		if _, ok := colIdx[name]; !ok {
			colIdx[name] = i
		}
	}
	return colIdx
}
