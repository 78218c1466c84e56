package tile

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/ByLCY/labelwrap/dataset"
	"github.com/ByLCY/labelwrap/fontspec"
	"github.com/ByLCY/labelwrap/wrap"
)

var fivePerChar = wrap.MeasureFunc(func(text string, _ fontspec.Spec) (float64, error) {
	return float64(utf8.RuneCountInString(text)) * 5, nil
})

func newWrapper(t *testing.T, m wrap.TextMeasurer) *wrap.Wrapper {
	t.Helper()
	w, err := wrap.New(m, wrap.DefaultOptions())
	require.NoError(t, err)
	return w
}

func TestPlaceUsesFixedLineOffsets(t *testing.T) {
	spans := DefaultLabelLayout().Place([]string{"Harry Potter", "and the", "Goblet"})
	require.Equal(t, []Tspan{
		{X: 4, Y: 12, Text: "Harry Potter"},
		{X: 4, Y: 22, Text: "and the"},
		{X: 4, Y: 32, Text: "Goblet"},
	}, spans)
	require.Empty(t, DefaultLabelLayout().Place(nil))
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#1f77b4")
	require.NoError(t, err)
	require.Equal(t, Color{R: 0x1f, G: 0x77, B: 0xb4}, c)
	require.Equal(t, "#1f77b4", c.Hex())

	short, err := ParseColor("#abc")
	require.NoError(t, err)
	require.Equal(t, "#aabbcc", short.Hex())

	_, err = ParseColor("#12")
	require.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	require.Error(t, err)
}

func TestPaletteOrdinalAndCycling(t *testing.T) {
	p := NewPalette([]string{"Action", "Drama"}, []Color{{R: 1}, {R: 2}, {R: 3}})
	require.Equal(t, Color{R: 1}, p.Color("Action"))
	require.Equal(t, Color{R: 2}, p.Color(" Drama "))
	require.Equal(t, Color{R: 3}, p.Color("Comedy"))
	require.Equal(t, Color{R: 1}, p.Color("Family"), "colours cycle once exhausted")
	require.Equal(t, Color{R: 3}, p.Color("Comedy"))

	require.Equal(t, Category10[0], NewPalette(nil, nil).Color("x"))
}

func TestGridRowMajor(t *testing.T) {
	leaves := []*dataset.Node{
		{Name: "a", Category: "A"}, {Name: "b", Category: "B"}, {Name: "c", Category: "A"},
	}
	tiles := Grid(leaves, NewPalette(nil, nil), GridOptions{Columns: 2, TileWidth: 100, TileHeight: 50, Padding: 1, OriginY: 80})
	require.Len(t, tiles, 3)
	require.Equal(t, 0.0, tiles[0].X)
	require.Equal(t, 100.0, tiles[1].X)
	require.Equal(t, 0.0, tiles[2].X)
	require.Equal(t, 130.0, tiles[2].Y)
	require.Equal(t, 99.0, tiles[0].Width)
	require.Equal(t, 49.0, tiles[0].Height)
	require.Equal(t, tiles[0].Fill, tiles[2].Fill)
	require.NotEqual(t, tiles[0].Fill, tiles[1].Fill)
}

func TestLabelerWrapsAtTileWidth(t *testing.T) {
	tiles := []Tile{
		{Name: "The Avengers", Width: 80},
		{Name: "The Avengers", Width: 40},
		{Name: "   ", Width: 40},
	}
	err := Labeler{Wrapper: newWrapper(t, fivePerChar), Layout: DefaultLabelLayout()}.Label(tiles)
	require.NoError(t, err)
	require.Equal(t, []string{"The Avengers"}, tiles[0].Lines)
	require.Equal(t, []string{"The", "Avengers"}, tiles[1].Lines)
	require.Equal(t, 22.0, tiles[1].Label[1].Y)
	require.Nil(t, tiles[2].Label)
}

func TestLabelerStopsOnMeasurerFailure(t *testing.T) {
	boom := errors.New("boom")
	failing := wrap.MeasureFunc(func(string, fontspec.Spec) (float64, error) { return 0, boom })
	tiles := []Tile{{Name: "The Avengers", Width: 80}}
	err := Labeler{Wrapper: newWrapper(t, failing), Layout: DefaultLabelLayout()}.Label(tiles)
	require.ErrorIs(t, err, boom)

	require.ErrorIs(t, Labeler{}.Label(tiles), wrap.ErrMeasurerUnavailable)
}

func TestLabelerLeavesTilesUntouchedOnFailure(t *testing.T) {
	boom := errors.New("boom")
	m := wrap.MeasureFunc(func(text string, font fontspec.Spec) (float64, error) {
		if strings.HasPrefix(text, "Toy") {
			return 0, boom
		}
		return fivePerChar(text, font)
	})
	tiles := []Tile{
		{Name: "The Avengers", Width: 40, Lines: []string{"old"}},
		{Name: "Toy Story 3", Width: 40},
	}
	err := Labeler{Wrapper: newWrapper(t, m), Layout: DefaultLabelLayout()}.Label(tiles)
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"old"}, tiles[0].Lines)
	require.Nil(t, tiles[0].Label)
	require.Nil(t, tiles[1].Lines)
}

func TestLegendGrid(t *testing.T) {
	items := Legend([]string{"Action", "Drama", "Comedy", "Family"}, NewPalette(nil, nil), DefaultLegendOptions())
	require.Len(t, items, 4)
	require.Equal(t, 150.0, items[1].X)
	require.Equal(t, 300.0, items[2].X)
	require.Equal(t, 0.0, items[3].X)
	require.Equal(t, 30.0, items[3].Y)
	require.Equal(t, 25.0, items[0].TextX)
	require.Equal(t, 15.0, items[0].TextY)
}

func TestNewSheet(t *testing.T) {
	root := &dataset.Node{Name: "Movies", Children: []*dataset.Node{
		{Name: "Action", Children: []*dataset.Node{
			{Name: "Avatar", Category: "Action", Value: 3},
			{Name: "Pirates of the Caribbean: At World's End", Category: "Action", Value: 2},
		}},
		{Name: "Drama", Children: []*dataset.Node{
			{Name: "Titanic", Category: "Drama", Value: 1},
		}},
	}}
	opts := DefaultSheetOptions()
	opts.Grid.Columns = 2
	sheet, err := NewSheet(root, newWrapper(t, fivePerChar), opts)
	require.NoError(t, err)

	require.Len(t, sheet.Tiles, 3)
	require.Equal(t, 80.0, sheet.Tiles[0].Y)
	require.Equal(t, "Avatar", sheet.Tiles[0].Lines[0])
	pirates := sheet.Tiles[1]
	require.Greater(t, len(pirates.Lines), 1)
	require.Equal(t, pirates.Name, strings.Join(pirates.Lines, " "))

	require.Len(t, sheet.Legend, 2)
	// two rows of 60px tiles from y=80, then a 20px gap
	require.Equal(t, 220.0, sheet.Legend[0].Y)
	require.Equal(t, 270.0, sheet.Height)
	require.Equal(t, 1000.0, sheet.Width)
	require.Equal(t, 40.0, sheet.TitleBaseline())

	_, err = NewSheet(nil, newWrapper(t, fivePerChar), opts)
	require.Error(t, err)
}
