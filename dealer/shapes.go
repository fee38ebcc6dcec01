package dealer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"bridgesim/deal"
)

// Balanced reports whether the shape has no shortage and at most one
// doubleton (4-3-3-3, 4-4-3-2, 5-3-3-2).
func Balanced(shape [4]int) bool {
	doubletons := 0
	for _, n := range shape {
		if n < 2 {
			return false
		}
		if n == 2 {
			doubletons++
		}
	}
	return doubletons <= 1
}

// SemiBalanced reports whether the shape merely has no singleton or void,
// admitting 5-4-2-2 and 6-3-2-2 alongside the balanced shapes.
func SemiBalanced(shape [4]int) bool {
	for _, n := range shape {
		if n < 2 {
			return false
		}
	}
	return true
}

// Shortage reports whether the shape contains a singleton or void.
func Shortage(shape [4]int) bool {
	for _, n := range shape {
		if n < 2 {
			return true
		}
	}
	return false
}

// ExpandShapes expands a shape pattern into the concrete shapes it allows.
// The pattern is slash-delimited groups of dash-separated suit lengths;
// lengths within a group permute over the consecutive suits the group
// covers, while a bare length is pinned to its suit. Examples:
//
//	"5/4-3-1"     five spades, the 4, 3 and 1 in any of the other suits
//	"4/3/4-2/"    4=4 majors, minors either way round
//	"/4-3//5-1/"  4-3 either way in the majors, 5-1 either way in the minors
func ExpandShapes(pattern string) ([][4]int, error) {
	var groups [][]int
	total := 0
	for _, part := range strings.Split(pattern, "/") {
		if part == "" {
			continue
		}
		var group []int
		for _, tok := range strings.Split(part, "-") {
			n, err := strconv.Atoi(tok)
			if err != nil || n < 0 || n > 13 {
				return nil, fmt.Errorf("dealer: bad suit length %q in shape %q", tok, pattern)
			}
			group = append(group, n)
			total += n
		}
		groups = append(groups, group)
	}
	if total != 13 {
		return nil, fmt.Errorf("dealer: shape %q sums to %d, want 13", pattern, total)
	}

	shapes := [][4]int{}
	var build func(gi, offset int, acc [4]int)
	build = func(gi, offset int, acc [4]int) {
		if gi == len(groups) {
			shapes = append(shapes, acc)
			return
		}
		for _, perm := range permutations(groups[gi]) {
			next := acc
			copy(next[offset:], perm)
			build(gi+1, offset+len(perm), next)
		}
	}
	build(0, 0, [4]int{})
	return shapes, nil
}

// permutations returns the distinct orderings of lengths, preserving the
// input's preference order.
func permutations(lengths []int) [][]int {
	if len(lengths) <= 1 {
		return [][]int{append([]int{}, lengths...)}
	}
	var out [][]int
	seenKeys := map[string]bool{}
	for i, first := range lengths {
		rest := make([]int, 0, len(lengths)-1)
		rest = append(rest, lengths[:i]...)
		rest = append(rest, lengths[i+1:]...)
		for _, sub := range permutations(rest) {
			perm := append([]int{first}, sub...)
			key := fmt.Sprint(perm)
			if !seenKeys[key] {
				seenKeys[key] = true
				out = append(out, perm)
			}
		}
	}
	return out
}

// ShapeFilter builds a hand filter accepting exactly the shapes the
// pattern expands to.
func ShapeFilter(pattern string) (HandFilter, error) {
	shapes, err := ExpandShapes(pattern)
	if err != nil {
		return nil, err
	}
	return func(h deal.Hand) bool {
		shape := h.Shape()
		for _, s := range shapes {
			if s == shape {
				return true
			}
		}
		return false
	}, nil
}

// SortedShape returns the shape's lengths in descending order, the usual
// form for naming distributions (5-3-3-2 etc).
func SortedShape(shape [4]int) [4]int {
	s := shape
	sort.Sort(sort.Reverse(sort.IntSlice(s[:])))
	return s
}
