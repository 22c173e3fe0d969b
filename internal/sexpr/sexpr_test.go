package sexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exprtools/borrowcheck/check"
	"github.com/exprtools/borrowcheck/prelude/std"
)

func TestParseSimpleFunction(t *testing.T) {
	src := `
(fn identity (arg x return)
  (block
    (return (item x))))
`
	tree, err := Parse(src)
	require.NoError(t, err)

	_, err = check.Check(tree, std.New(), nil)
	assert.NoError(t, err)
}

func TestParseRequiresMut(t *testing.T) {
	src := `
(fn f (arg a) (arg b a)
  (block
    (expr (mutate (item a) (item b)))))
`
	tree, err := Parse(src)
	require.NoError(t, err)

	_, err = check.Check(tree, std.New(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Requires mut a")
}

func TestParseUnclosedForm(t *testing.T) {
	_, err := Parse("(fn f (block")
	assert.Error(t, err)
}
