package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const movieData = `{
  "name": "Movies",
  "children": [
    {
      "name": "Drama",
      "children": [
        {"name": "Titanic", "category": "Drama", "value": "658672302"},
        {"name": "Forrest Gump", "category": "Drama ", "value": 329694499}
      ]
    },
    {
      "name": "Action",
      "children": [
        {"name": "Avatar ", "category": "Action", "value": "760505847"},
        {"name": "The Avengers", "category": "Action", "value": "623357910"},
        {"name": "Mystery Reel", "category": "Action"},
        {"name": "Bad Number", "category": "Action", "value": "n/a"}
      ]
    }
  ]
}`

func TestDecodeValuesWithDefaultOnMissing(t *testing.T) {
	root, err := Decode(strings.NewReader(movieData))
	require.NoError(t, err)
	require.Equal(t, "Movies", root.Name)
	require.Len(t, root.Children, 2)

	drama := root.Children[0]
	require.Equal(t, 658672302.0, drama.Children[0].Value)
	require.Equal(t, 329694499.0, drama.Children[1].Value)

	action := root.Children[1]
	require.Zero(t, action.Children[2].Value, "missing value defaults to 0")
	require.Zero(t, action.Children[3].Value, "unparsable value defaults to 0")
	require.Equal(t, 760505847.0+623357910.0, action.Sum())
}

func TestParseValueVariants(t *testing.T) {
	cases := map[string]float64{
		`null`:     0,
		`""`:       0,
		`" 12.5 "`: 12.5,
		`"NaN"`:    0,
		`7`:        7,
		`true`:     0,
		`{}`:       0,
	}
	for raw, want := range cases {
		require.Equal(t, want, parseValue([]byte(raw)), raw)
	}
}

func TestLeavesSortedBySumDescending(t *testing.T) {
	root, err := Decode(strings.NewReader(movieData))
	require.NoError(t, err)

	var names []string
	for _, leaf := range root.Leaves() {
		names = append(names, leaf.Name)
	}
	// Action (1.38e9) sorts before Drama (0.99e9); zero-valued leaves keep input order.
	require.Equal(t, []string{
		"Avatar ", "The Avengers", "Mystery Reel", "Bad Number",
		"Titanic", "Forrest Gump",
	}, names)
	require.Equal(t, "Drama", root.Children[0].Name, "Leaves must not reorder the tree")
}

func TestCategoriesTrimmedInFirstSeenOrder(t *testing.T) {
	root, err := Decode(strings.NewReader(movieData))
	require.NoError(t, err)
	require.Equal(t, []string{"Action", "Drama"}, Categories(root.Leaves()))
}

func TestLeavesOfSingleNode(t *testing.T) {
	n := &Node{Name: "solo", Value: 3}
	require.Equal(t, []*Node{n}, n.Leaves())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.json")
	require.NoError(t, os.WriteFile(path, []byte(movieData), 0o644))
	root, err := Load(path)
	require.NoError(t, err)
	require.Len(t, root.Leaves(), 6)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	_, err = Decode(strings.NewReader("{"))
	require.Error(t, err)
}
