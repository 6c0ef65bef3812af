package graph

import (
	"fmt"
	"strings"

	"github.com/msalah0e/tourney/internal/block"
)

// RenderShow renders one block with its feeders above and the stages it
// feeds below. The style funcs let callers colour output without this
// package importing a terminal library.
func RenderShow(s *Store, id string, brandFn, subtleFn, infoFn func(string) string) (string, error) {
	blk, ok := s.Block(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownBlock, id)
	}
	outgoing, incoming := s.ConnectionsOf(id)

	var b strings.Builder

	// Feeders (above the block)
	for i, c := range incoming {
		prefix := "  ├── "
		if i == len(incoming)-1 && len(outgoing) == 0 {
			prefix = "  └── "
		}
		src, _ := s.Block(c.From)
		fmt.Fprintf(&b, "%s%s %s %s\n", prefix, subtleFn("from"), subtleFn("──"), brandFn(src.Title))
		fmt.Fprintf(&b, "  │           %s\n", subtleFn(block.Label(src.Kind)))
		b.WriteString("  │\n")
	}

	// Block centre
	fmt.Fprintf(&b, "  ● %s\n", brandFn(blk.Title))
	fmt.Fprintf(&b, "  │  %s  %s\n", subtleFn(block.Label(blk.Kind)), subtleFn(shortID(blk.ID)))
	fmt.Fprintf(&b, "  │  %s\n", infoFn(blk.Config.String()))

	// Fed stages (below the block)
	if len(outgoing) > 0 {
		b.WriteString("  │\n")
	}
	for i, c := range outgoing {
		prefix := "  ├── "
		if i == len(outgoing)-1 {
			prefix = "  └── "
		}
		dst, _ := s.Block(c.To)
		fmt.Fprintf(&b, "%s%s %s %s\n", prefix, subtleFn("to"), subtleFn("──"), brandFn(dst.Title))
		fmt.Fprintf(&b, "              %s\n", subtleFn(block.Label(dst.Kind)))
	}

	return b.String(), nil
}

// RenderOrder renders the stage order as a numbered list, or the cycle
// error when there is none.
func RenderOrder(s *Store, brandFn, subtleFn func(string) string) (string, error) {
	ordered, err := s.StageOrder()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, blk := range ordered {
		fmt.Fprintf(&b, "  %2d. %s %s\n", i+1, brandFn(blk.Title), subtleFn("("+block.Label(blk.Kind)+")"))
	}
	return b.String(), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
