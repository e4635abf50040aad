package diagram

import (
	"fmt"

	"github.com/skeinproject/skein/internal/catalog"
	"github.com/skeinproject/skein/internal/wire"
)

// Build replays a document against a fresh pane. Blocks are created in
// declaration order, so a block's container must be declared before
// the blocks inside it. Pane options pass through, letting callers
// attach a journal recorder or a fixed session.
func Build(doc *Document, cat *catalog.Catalog, opts ...wire.PaneOption) (*wire.Pane, error) {
	pane := wire.NewPane(opts...)
	g := pane.Graph()

	for _, def := range doc.Blocks {
		container, err := resolveContainer(g, def)
		if err != nil {
			return nil, err
		}

		var b *wire.Block
		switch def.Kind {
		case "function":
			sig := def.Signature
			if sig == "" {
				entry, ok := cat.Lookup(def.Func)
				if !ok {
					return nil, fmt.Errorf("block %q: function %q not in catalog", def.ID, def.Func)
				}
				sig = entry.Signature
			}
			b, err = pane.AddFunctionBlock(def.ID, def.Func, sig, container)
		case "literal":
			b, err = pane.AddLiteralBlock(def.ID, def.Text, def.Type, container)
		case "lambda":
			b, err = pane.AddLambdaBlock(def.ID, def.Binders, container)
		default:
			return nil, fmt.Errorf("block %q: unknown kind %q", def.ID, def.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", def.ID, err)
		}
		b.SetPos(wire.Point{X: def.X, Y: def.Y})
	}

	for _, c := range doc.Connections {
		fromRef, err := wire.ParseAnchorRef(c.From)
		if err != nil {
			return nil, err
		}
		toRef, err := wire.ParseAnchorRef(c.To)
		if err != nil {
			return nil, err
		}
		from, err := g.ResolveAnchor(fromRef)
		if err != nil {
			return nil, err
		}
		to, err := g.ResolveAnchor(toRef)
		if err != nil {
			return nil, err
		}
		if _, err := pane.Connect(from, to); err != nil {
			return nil, fmt.Errorf("connection %s -> %s: %w", c.From, c.To, err)
		}
	}
	return pane, nil
}

func resolveContainer(g *wire.Graph, def BlockDef) (wire.Container, error) {
	if def.Container == "" {
		return g.Top(), nil
	}
	c, ok := g.ContainerByName(def.Container)
	if !ok {
		return nil, fmt.Errorf("block %q: container %q not declared before it", def.ID, def.Container)
	}
	return c, nil
}

// Export captures a pane back into a document. Blocks come out in
// creation order and connections in commit order, so export after
// build round-trips.
func Export(name string, p *wire.Pane) *Document {
	doc := &Document{Name: name}
	g := p.Graph()

	for _, b := range g.Blocks() {
		def := BlockDef{
			ID: b.ID(),
			X:  b.Pos().X,
			Y:  b.Pos().Y,
		}
		if c := b.Container(); c != g.Top() {
			def.Container = c.Name()
		}
		switch b.Kind() {
		case wire.FunctionBlock:
			def.Kind = "function"
			def.Func = b.Func()
			def.Signature = b.Signature()
		case wire.LiteralBlock:
			def.Kind = "literal"
			def.Text = b.LiteralText()
			def.Type = b.LiteralType()
		case wire.LambdaBlock:
			def.Kind = "lambda"
			for _, bind := range b.Lambda().Binders() {
				def.Binders = append(def.Binders, bind.Name())
			}
		}
		doc.Blocks = append(doc.Blocks, def)
	}

	for _, c := range g.Connections() {
		doc.Connections = append(doc.Connections, Connection{
			From: c.Source().Ref().String(),
			To:   c.Sink().Ref().String(),
		})
	}
	return doc
}
