package common

import (
	"fmt"
	"strconv"
	"strings"
)

// UnboundedDepth marks a traversal slot with no depth limit.
const UnboundedDepth = -1

// Mode is the decoded metadata assembly mode. The wire form is a 4-slot
// descriptor "self_ancestors_descendants_relatives":
//
//	slot 1: include the subject's own statements (0 or 1)
//	slot 2: ancestor traversal depth (0 = none, -1 = unbounded)
//	slot 3: descendant traversal depth
//	slot 4: relatives-only descendant depth; a nonzero value assembles the
//	        related records without the subject's own statements
//
// Named aliases: "self" (1_0_0_0), "ancestors" (1_-1_0_0), "descendants"
// (1_0_-1_0) and "relatives" (0_0_0_-1).
type Mode struct {
	Self        bool
	Ancestors   int
	Descendants int
	Relatives   int
}

// ModeSelf is the default assembly mode: only the subject's own statements.
var ModeSelf = Mode{Self: true}

// ParseMode decodes a metadata mode descriptor or named alias. The empty
// string decodes to ModeSelf.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "":
		return ModeSelf, nil
	case "self":
		return ModeSelf, nil
	case "ancestors":
		return Mode{Self: true, Ancestors: UnboundedDepth}, nil
	case "descendants":
		return Mode{Self: true, Descendants: UnboundedDepth}, nil
	case "relatives":
		return Mode{Relatives: UnboundedDepth}, nil
	}

	parts := strings.Split(s, "_")
	if len(parts) != 4 {
		return Mode{}, fmt.Errorf("%w: %q", ErrBadMode, s)
	}
	slots := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < UnboundedDepth {
			return Mode{}, fmt.Errorf("%w: %q", ErrBadMode, s)
		}
		slots[i] = n
	}
	if slots[0] != 0 && slots[0] != 1 {
		return Mode{}, fmt.Errorf("%w: %q", ErrBadMode, s)
	}
	return Mode{
		Self:        slots[0] == 1,
		Ancestors:   slots[1],
		Descendants: slots[2],
		Relatives:   slots[3],
	}, nil
}

// String encodes the mode back into its 4-slot descriptor form.
func (m Mode) String() string {
	self := 0
	if m.Self {
		self = 1
	}
	return fmt.Sprintf("%d_%d_%d_%d", self, m.Ancestors, m.Descendants, m.Relatives)
}

// DescendantDepth returns the effective inward traversal depth, combining
// the descendants slot with the relatives-only slot.
func (m Mode) DescendantDepth() int {
	if m.Relatives != 0 {
		return m.Relatives
	}
	return m.Descendants
}
