// group.go - Font sizes for grouped and independent text blocks.
package layout

import (
	"fmt"

	"github.com/xob0t/GoFrame/pkg/typeset"
)

// Member is a text block paired with the string it displays in one locale.
type Member struct {
	Text  string
	Block TextBlock
}

// SharedFontSize computes the single font size used by every member of the
// group. Each member is fitted with its own font and an upper bound of
// min(override, group maximum); the result is the smallest of those maxima,
// the group maximum and the global maximum.
func SharedFontSize(m typeset.Measurer, group TextGroup, members []Member, globalFont *typeset.Font, globalMaxSize float64) (float64, error) {
	size := min(globalMaxSize, group.MaxFontSize)

	for _, mem := range members {
		if mem.Block.Group != group.Identifier {
			continue
		}

		bound := group.MaxFontSize
		if o := mem.Block.MaxFontSizeOverride; o != nil {
			bound = min(*o, group.MaxFontSize)
		}

		f := mem.Block.Font
		if f == nil {
			f = globalFont
		}

		fitted, err := typeset.MaximumFontSizeThatFits(m, mem.Text, f, mem.Block.Alignment, mem.Block.Rect().Size(), typeset.MinFontSize, bound)
		if err != nil {
			return 0, fmt.Errorf("text group %q: %w", group.Identifier, err)
		}
		size = min(size, fitted)
	}

	return size, nil
}

// ResolveFontSizes returns the font size of every member, in order. Grouped
// members get their group's shared size; the others are fitted on their own
// with their override, or the global maximum, as upper bound.
func ResolveFontSizes(m typeset.Measurer, members []Member, groups []TextGroup, globalFont *typeset.Font, globalMaxSize float64) ([]float64, error) {
	blocks := make([]TextBlock, len(members))
	for i, mem := range members {
		blocks[i] = mem.Block
	}
	if err := ValidateGroupReferences(blocks, groups); err != nil {
		return nil, err
	}

	shared := make(map[string]float64, len(groups))
	for _, g := range groups {
		size, err := SharedFontSize(m, g, members, globalFont, globalMaxSize)
		if err != nil {
			return nil, err
		}
		shared[g.Identifier] = size
	}

	sizes := make([]float64, len(members))
	for i, mem := range members {
		if mem.Block.Group != "" {
			sizes[i] = shared[mem.Block.Group]
			continue
		}

		bound := globalMaxSize
		if o := mem.Block.MaxFontSizeOverride; o != nil {
			bound = *o
		}

		f := mem.Block.Font
		if f == nil {
			f = globalFont
		}

		size, err := typeset.MaximumFontSizeThatFits(m, mem.Text, f, mem.Block.Alignment, mem.Block.Rect().Size(), typeset.MinFontSize, bound)
		if err != nil {
			return nil, fmt.Errorf("text %q: %w", mem.Block.Identifier, err)
		}
		sizes[i] = size
	}
	return sizes, nil
}
