package pagination

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestWindowResolution(t *testing.T) {
	tests := []struct {
		name   string
		offset any
		page   any
		limit  any
		want   Window
	}{
		{"defaults", nil, nil, nil, Window{Start: 0, End: 10, Bounded: true}},
		{"offset and limit", 5, nil, 10, Window{Start: 5, End: 15, Bounded: true}},
		{"page and limit", nil, 2, 10, Window{Start: 20, End: 30, Bounded: true}},
		{"offset wins over page", 3, 7, 10, Window{Start: 3, End: 13, Bounded: true}},
		{"all limit", nil, nil, "all", Window{Start: 0}},
		{"all limit ignores page", nil, 4, -1, Window{Start: 0}},
		{"all limit as string", nil, nil, "-1", Window{Start: 0}},
		{"all limit keeps offset", 5, 2, "all", Window{Start: 5}},
		{"numeric strings", "5", "1", "20", Window{Start: 5, End: 25, Bounded: true}},
		{"page only uses default limit", nil, "3", nil, Window{Start: 30, End: 40, Bounded: true}},
		{"zero limit", 0, nil, 0, Window{Start: 0, End: 0, Bounded: true}},
		{"pointers", intPtr(1), nil, intPtr(2), Window{Start: 1, End: 3, Bounded: true}},
		{"nil pointers", (*int)(nil), (*int)(nil), (*int)(nil), Window{Start: 0, End: 10, Bounded: true}},
		{"empty strings are unset", "", "", "", Window{Start: 0, End: 10, Bounded: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.offset, tt.page, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Window())
		})
	}
}

func TestInvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		offset any
		page   any
		limit  any
		want   error
		param  string
	}{
		{"negative offset", -1, nil, nil, ErrInvalidOffset, "offset"},
		{"negative offset string", "-1", nil, nil, ErrInvalidOffset, "offset"},
		{"non numeric offset", "abc", nil, nil, ErrInvalidOffset, "offset"},
		{"negative page", nil, -2, nil, ErrInvalidPage, "page"},
		{"float page", nil, 1.5, nil, ErrInvalidPage, "page"},
		{"negative limit", nil, nil, -5, ErrInvalidLimit, "limit"},
		{"word limit", nil, nil, "many", ErrInvalidLimit, "limit"},
		{"page past int range", nil, "922337203685477581", 10, ErrInvalidPage, "page"},
		{"offset past int range", math.MaxInt - 5, nil, 10, ErrInvalidOffset, "offset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.offset, tt.page, tt.limit)

			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.want)
			var pe *ParamError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.param, pe.Param)
		})
	}
}

func TestWithDefaultLimit(t *testing.T) {
	p, err := New(nil, nil, nil, WithDefaultLimit(25))
	require.NoError(t, err)
	assert.Equal(t, Window{End: 25, Bounded: true}, p.Window())

	end, bounded := p.End()
	assert.Equal(t, 25, end)
	assert.True(t, bounded)
	assert.Equal(t, 0, p.Start())
}

func TestFrame(t *testing.T) {
	items := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	assert.Equal(t, []int{5, 6, 7}, Frame(items, Window{Start: 5, End: 8, Bounded: true}))
	assert.Equal(t, []int{8, 9}, Frame(items, Window{Start: 8, End: 20, Bounded: true}))
	assert.Equal(t, []int{7, 8, 9}, Frame(items, Window{Start: 7}))
	assert.Empty(t, Frame(items, Window{Start: 15, End: 20, Bounded: true}))
	assert.Empty(t, Frame([]int{}, Window{End: 10, Bounded: true}))
	assert.Empty(t, Frame(items, Window{Start: -20, End: -10, Bounded: true}))

	frame := Frame(items, Window{Start: 0, End: 2, Bounded: true})
	frame = append(frame, 100)
	assert.Equal(t, 2, items[2], "appending to a frame must not touch the collection")
	assert.Len(t, frame, 3)
}
