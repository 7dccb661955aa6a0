package pagination

import (
	"net/url"
	"testing"

	"github.com/miphreal/drf-tweaks/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParams(t *testing.T) {
	v := validation.New()

	p, err := ParseParams(url.Values{"offset": {"5"}, "limit": {"all"}}, 100, v)
	require.NoError(t, err)
	require.NotNil(t, p.Offset)
	assert.Equal(t, 5, *p.Offset)
	assert.Nil(t, p.Page)
	assert.Equal(t, AllLimit, *p.Limit)

	pg, err := p.Paginator()
	require.NoError(t, err)
	assert.Equal(t, Window{Start: 5}, pg.Window())
}

func TestParseParamsRejectsOutOfRange(t *testing.T) {
	v := validation.New()

	_, err := ParseParams(url.Values{"limit": {"150"}, "page": {"-1"}, "offset": {"x"}}, 100, v)

	ve, ok := validation.AsError(err)
	require.True(t, ok)

	got := map[string]validation.Message{}
	for _, leaf := range ve.Detail.Flatten() {
		got[leaf.Field] = validation.Decode(leaf.Messages[0])
	}
	assert.Equal(t, "max_value", got["limit"].Code)
	assert.Equal(t, "Ensure this value is less than or equal to 100.", got["limit"].Text)
	assert.Equal(t, "min_value", got["page"].Code)
	assert.Equal(t, "invalid", got["offset"].Code)
}

func TestParseParamsEmpty(t *testing.T) {
	p, err := ParseParams(url.Values{}, 100, validation.New())
	require.NoError(t, err)
	assert.Equal(t, Params{}, p)
}

func TestAsValidationError(t *testing.T) {
	_, err := New(-1, nil, nil)

	converted := AsValidationError(err)

	ve, ok := validation.AsError(converted)
	require.True(t, ok)
	leaves := ve.Detail.Flatten()
	require.Len(t, leaves, 1)
	assert.Equal(t, "offset", leaves[0].Field)

	other := assert.AnError
	assert.Equal(t, other, AsValidationError(other))
}

func TestNewMeta(t *testing.T) {
	count := 42

	assert.Equal(t, Meta{Count: &count, Limit: 10, Page: 2, Offset: 20},
		NewMeta(Window{Start: 20, End: 30, Bounded: true}, &count))
	assert.Equal(t, Meta{Limit: AllLimit, Page: 0, Offset: 5}, NewMeta(Window{Start: 5}, nil))
	assert.Equal(t, Meta{Limit: 10, Page: 0, Offset: 5}, NewMeta(Window{Start: 5, End: 15, Bounded: true}, nil))
	assert.Equal(t, Meta{Limit: 0, Page: 0, Offset: 3}, NewMeta(Window{Start: 3, End: 3, Bounded: true}, nil))
}

func TestPaginate(t *testing.T) {
	p, err := New(nil, 1, 2)
	require.NoError(t, err)

	page := Paginate([]string{"a", "b", "c", "d", "e"}, p, true)

	assert.Equal(t, []string{"c", "d"}, page.Items)
	require.NotNil(t, page.Meta.Count)
	assert.Equal(t, 5, *page.Meta.Count)
	assert.Equal(t, 1, page.Meta.Page)
}
