package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Params
		want Params
	}{
		{"defaults", Params{}, Params{Page: 1, Limit: DefaultLimit}},
		{"negative page floors to one", Params{Page: -3, Limit: 10}, Params{Page: 1, Limit: 10}},
		{"limit capped", Params{Page: 2, Limit: 500}, Params{Page: 2, Limit: MaxLimit}},
		{"in range untouched", Params{Page: 4, Limit: 50}, Params{Page: 4, Limit: 50}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 25))
	assert.Equal(t, 1, PageCount(25, 25))
	assert.Equal(t, 2, PageCount(26, 25))
	assert.Equal(t, 4, PageCount(100, 30))
}
