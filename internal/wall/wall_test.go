package wall_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hostelhub/server/internal/core/datamodel"
	"github.com/hostelhub/server/internal/wall"
)

func TestExtractTags(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    datamodel.StringSlice
	}{
		{"no tags", "just a plain post", datamodel.StringSlice{}},
		{"single tag", "pizza night #food", datamodel.StringSlice{"food"}},
		{"multiple tags", "#Movie and #snacks tonight", datamodel.StringSlice{"movie", "snacks"}},
		{"lowercased", "#FOOD #Food #food", datamodel.StringSlice{"food"}},
		{"underscores and digits", "#room_101 party", datamodel.StringSlice{"room_101"}},
		{"hash alone ignored", "price # 100", datamodel.StringSlice{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, wall.ExtractTags(tc.content))
		})
	}
}
