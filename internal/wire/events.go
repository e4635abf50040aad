package wire

import "fmt"

// EditKind labels a journaled structural edit.
type EditKind string

const (
	EditAddBlock    EditKind = "add_block"
	EditAddLiteral  EditKind = "add_literal"
	EditAddLambda   EditKind = "add_lambda"
	EditRemoveBlock EditKind = "remove_block"
	EditConnect     EditKind = "connect"
	EditDisconnect  EditKind = "disconnect"
)

// Edit is one committed structural change, in the form it takes in the
// journal. Seq and Session are stamped by the pane at commit time; the
// remaining fields depend on Kind.
type Edit struct {
	Seq     int64    `json:"seq"`
	Session string   `json:"session"`
	Kind    EditKind `json:"kind"`

	Block     string   `json:"block,omitempty"`
	Func      string   `json:"func,omitempty"`
	Signature string   `json:"signature,omitempty"`
	Literal   string   `json:"literal,omitempty"`
	LitType   string   `json:"lit_type,omitempty"`
	Binders   []string `json:"binders,omitempty"`
	Parent    string   `json:"parent,omitempty"`

	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// Recorder receives committed edits, already stamped with seq and
// session. Implementations persist them (the sqlite journal) or
// collect them (tests). A Recorder must not call back into the pane.
type Recorder interface {
	RecordEdit(e Edit) error
}

// ApplyEdit replays a journaled edit against the pane, bypassing
// gestures and journaling. Replay drives this to rebuild a pane from
// its journal.
func (p *Pane) ApplyEdit(e Edit) error {
	g := p.graph
	switch e.Kind {
	case EditAddBlock:
		parent, err := p.parentContainer(e.Parent)
		if err != nil {
			return err
		}
		_, err = g.AddFunctionBlock(e.Block, e.Func, e.Signature, parent)
		return err
	case EditAddLiteral:
		parent, err := p.parentContainer(e.Parent)
		if err != nil {
			return err
		}
		_, err = g.AddLiteralBlock(e.Block, e.Literal, e.LitType, parent)
		return err
	case EditAddLambda:
		parent, err := p.parentContainer(e.Parent)
		if err != nil {
			return err
		}
		_, err = g.AddLambdaBlock(e.Block, e.Binders, parent)
		return err
	case EditRemoveBlock:
		return g.RemoveBlock(e.Block)
	case EditConnect:
		from, to, err := p.resolveEndpoints(e.From, e.To)
		if err != nil {
			return err
		}
		_, err = g.ConnectAnchors(from, to)
		return err
	case EditDisconnect:
		_, to, err := p.resolveEndpoints(e.From, e.To)
		if err != nil {
			return err
		}
		sink, ok := to.(*InputAnchor)
		if !ok {
			return fmt.Errorf("disconnect target %q is not an input", e.To)
		}
		if id, ok := sink.Connection(); ok {
			g.Remove(id)
		}
		return nil
	default:
		return fmt.Errorf("unknown edit kind %q", e.Kind)
	}
}

func (p *Pane) parentContainer(name string) (Container, error) {
	if name == "" {
		return p.graph.top, nil
	}
	c, ok := p.graph.ContainerByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown container %q", name)
	}
	return c, nil
}

func (p *Pane) resolveEndpoints(from, to string) (Anchor, Anchor, error) {
	fr, err := ParseAnchorRef(from)
	if err != nil {
		return nil, nil, err
	}
	tr, err := ParseAnchorRef(to)
	if err != nil {
		return nil, nil, err
	}
	a, err := p.graph.ResolveAnchor(fr)
	if err != nil {
		return nil, nil, err
	}
	b, err := p.graph.ResolveAnchor(tr)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}
