package inspect

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skeinproject/skein/internal/hs"
	"github.com/skeinproject/skein/internal/testutil"
	"github.com/skeinproject/skein/internal/wire"
)

// buildMapLambda wires map over (\x -> succ x) applied to a list.
func buildMapLambda(t *testing.T) *wire.Block {
	t.Helper()
	g := wire.NewGraph()
	mapB, err := g.AddFunctionBlock("mapB", "map", "(a -> b) -> [a] -> [b]", g.Top())
	require.NoError(t, err)
	list, err := g.AddLiteralBlock("list", "[1,2,3]", "[Int]", g.Top())
	require.NoError(t, err)
	lam, err := g.AddLambdaBlock("f", []string{"x"}, g.Top())
	require.NoError(t, err)
	succ, err := g.AddFunctionBlock("succ", "succ", "Int -> Int", lam.Lambda())
	require.NoError(t, err)

	g.Connect(lam.Lambda().Binders()[0], succ.Inputs()[0])
	g.Connect(succ.Outputs()[0], lam.Lambda().Result())
	g.Connect(lam.Outputs()[0], mapB.Inputs()[0])
	g.Connect(list.Outputs()[0], mapB.Inputs()[1])
	return mapB
}

func TestTree_Golden(t *testing.T) {
	cat := testutil.LoadBaseCatalog(t)
	env := cat.Env()
	gold := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)

	t.Run("succ_apply", func(t *testing.T) {
		g := wire.NewGraph()
		five, err := g.AddLiteralBlock("five", "5", "Int", g.Top())
		require.NoError(t, err)
		succ, err := g.AddFunctionBlock("succ", "succ", "Int -> Int", g.Top())
		require.NoError(t, err)
		g.Connect(five.Outputs()[0], succ.Inputs()[0])

		gold.Assert(t, "succ_apply", []byte(Tree(env, succ.Expression())))
	})

	t.Run("partial_plus", func(t *testing.T) {
		g := wire.NewGraph()
		five, err := g.AddLiteralBlock("five", "5", "Int", g.Top())
		require.NoError(t, err)
		plus, err := g.AddFunctionBlock("plus", "+", "Int -> Int -> Int", g.Top())
		require.NoError(t, err)
		g.Connect(five.Outputs()[0], plus.Inputs()[0])

		gold.Assert(t, "partial_plus", []byte(Tree(env, plus.Expression())))
	})

	t.Run("map_lambda", func(t *testing.T) {
		mapB := buildMapLambda(t)
		gold.Assert(t, "map_lambda", []byte(Tree(env, mapB.Expression())))
	})
}

func TestTree_UnboundNameFallsBackToQuestionMark(t *testing.T) {
	env := hs.NewTypeEnv()
	e := &hs.Apply{Fn: &hs.Ident{Name: "mystery"}, Arg: &hs.Lit{Text: "1"}}

	out := Tree(env, e)
	assert.Contains(t, out, "mystery 1 :: ?")
	assert.Contains(t, out, "mystery :: ?")
}

func TestTree_BinderOutsideLambdaIsUntyped(t *testing.T) {
	cat := testutil.LoadBaseCatalog(t)
	env := cat.Env()

	lam := &hs.Lambda{
		Binders: []string{"x"},
		Body:    &hs.Apply{Fn: &hs.Ident{Name: "succ"}, Arg: &hs.Ident{Name: "x"}},
	}
	out := Tree(env, lam)

	// The lambda itself types fine; its body in isolation does not,
	// because the binder is out of reach.
	assert.Contains(t, out, `\x -> succ x :: Int -> Int`)
	assert.Contains(t, out, "succ x :: ?")
	assert.Contains(t, out, "x :: ?")
}
