package functions

import "sort"

// compareDefs orders two definitions. The order must agree with
// compareSelector below so binary search works over the same table.
func compareDefs(a, b Definition) int {
	if a.Category != b.Category {
		return int(a.Category) - int(b.Category)
	}
	if a.Category == CategoryOSC {
		return a.MaxParams - b.MaxParams
	}
	if a.Final != b.Final {
		return int(a.Final) - int(b.Final)
	}
	if a.Leader != b.Leader {
		return int(a.Leader) - int(b.Leader)
	}
	if a.Intermediate != b.Intermediate {
		return int(a.Intermediate) - int(b.Intermediate)
	}
	if a.MinParams != b.MinParams {
		return a.MinParams - b.MinParams
	}
	return a.MaxParams - b.MaxParams
}

// compareSelector orders a selector against a definition. Parameter
// count participates as a window: any argc within [min, max] matches.
func compareSelector(s Selector, d Definition) int {
	if s.Category != d.Category {
		return int(s.Category) - int(d.Category)
	}
	if s.Category == CategoryOSC {
		return s.Argc - d.MaxParams
	}
	if s.Final != d.Final {
		return int(s.Final) - int(d.Final)
	}
	if s.Leader != d.Leader {
		return int(s.Leader) - int(d.Leader)
	}
	if s.Intermediate != d.Intermediate {
		return int(s.Intermediate) - int(d.Intermediate)
	}
	if s.Argc < d.MinParams {
		return -1
	}
	if s.Argc > d.MaxParams {
		return +1
	}
	return 0
}

var sorted = func() []Definition {
	defs := make([]Definition, len(All))
	copy(defs, All)
	sort.Slice(defs, func(i, j int) bool {
		return compareDefs(defs[i], defs[j]) < 0
	})
	return defs
}()

// Select finds the definition matching the selector, or nil.
func Select(s Selector) *Definition {
	lo, hi := 0, len(sorted)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch cmp := compareSelector(s, sorted[mid]); {
		case cmp < 0:
			hi = mid - 1
		case cmp > 0:
			lo = mid + 1
		default:
			return &sorted[mid]
		}
	}
	return nil
}

// SelectC0 resolves a C0 control byte.
func SelectC0(final byte) *Definition {
	return Select(Selector{Category: CategoryC0, Final: final})
}

// SelectESC resolves an escape sequence from its single intermediate
// (or 0) and final byte. Multi-byte intermediates are intentionally not
// supported.
func SelectESC(intermediate, final byte) *Definition {
	return Select(Selector{Category: CategoryESC, Intermediate: intermediate, Final: final})
}

// SelectCSI resolves a control sequence.
func SelectCSI(leader byte, argc int, intermediate, final byte) *Definition {
	return Select(Selector{Category: CategoryCSI, Leader: leader, Argc: argc, Intermediate: intermediate, Final: final})
}

// SelectDCS resolves a device control string at hook time.
func SelectDCS(leader byte, argc int, intermediate, final byte) *Definition {
	return Select(Selector{Category: CategoryDCS, Leader: leader, Argc: argc, Intermediate: intermediate, Final: final})
}

// SelectOSC resolves an operating system command by its numeric code.
func SelectOSC(code int) *Definition {
	return Select(Selector{Category: CategoryOSC, Argc: code})
}
