package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// Direction identifies which anchor family a reference points at.
type Direction string

const (
	// DirIn is a block input anchor.
	DirIn Direction = "in"
	// DirOut is a block output anchor.
	DirOut Direction = "out"
	// DirBinder is a lambda argument binder anchor.
	DirBinder Direction = "binder"
	// DirResult is a lambda body's result anchor.
	DirResult Direction = "result"
)

// AnchorRef is the stable, serializable reference to an anchor:
// block id, direction, and index. It is the form anchors take in
// diagram documents and the edit journal.
type AnchorRef struct {
	Block string
	Dir   Direction
	Index int
}

// String renders the reference as "block.dir[index]"; the result
// anchor has no index and renders as "block.result".
func (r AnchorRef) String() string {
	if r.Dir == DirResult {
		return r.Block + ".result"
	}
	return fmt.Sprintf("%s.%s[%d]", r.Block, string(r.Dir), r.Index)
}

// ParseAnchorRef parses the String form back into an AnchorRef.
func ParseAnchorRef(s string) (AnchorRef, error) {
	dot := strings.LastIndex(s, ".")
	if dot <= 0 || dot == len(s)-1 {
		return AnchorRef{}, fmt.Errorf("malformed anchor ref %q", s)
	}
	block, rest := s[:dot], s[dot+1:]

	if rest == "result" {
		return AnchorRef{Block: block, Dir: DirResult}, nil
	}

	open := strings.Index(rest, "[")
	if open < 0 || !strings.HasSuffix(rest, "]") {
		return AnchorRef{}, fmt.Errorf("malformed anchor ref %q", s)
	}
	dir := Direction(rest[:open])
	switch dir {
	case DirIn, DirOut, DirBinder:
	default:
		return AnchorRef{}, fmt.Errorf("unknown anchor direction %q in %q", dir, s)
	}
	idx, err := strconv.Atoi(rest[open+1 : len(rest)-1])
	if err != nil || idx < 0 {
		return AnchorRef{}, fmt.Errorf("malformed anchor index in %q", s)
	}
	return AnchorRef{Block: block, Dir: dir, Index: idx}, nil
}

// ResolveAnchor finds the anchor a reference points at.
func (g *Graph) ResolveAnchor(ref AnchorRef) (Anchor, error) {
	b, ok := g.blocks[ref.Block]
	if !ok {
		return nil, fmt.Errorf("unknown block %q", ref.Block)
	}

	switch ref.Dir {
	case DirIn:
		if ref.Index >= len(b.inputs) {
			return nil, fmt.Errorf("block %q has no input %d", ref.Block, ref.Index)
		}
		return b.inputs[ref.Index], nil
	case DirOut:
		if ref.Index >= len(b.outputs) {
			return nil, fmt.Errorf("block %q has no output %d", ref.Block, ref.Index)
		}
		return b.outputs[ref.Index], nil
	case DirBinder:
		if b.lambda == nil {
			return nil, fmt.Errorf("block %q is not a lambda", ref.Block)
		}
		if ref.Index >= len(b.lambda.binders) {
			return nil, fmt.Errorf("lambda %q has no binder %d", ref.Block, ref.Index)
		}
		return b.lambda.binders[ref.Index], nil
	case DirResult:
		if b.lambda == nil {
			return nil, fmt.Errorf("block %q is not a lambda", ref.Block)
		}
		return b.lambda.result, nil
	default:
		return nil, fmt.Errorf("unknown anchor direction %q", ref.Dir)
	}
}
