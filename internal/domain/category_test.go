package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limonericx/community-bot/pkg/util"
)

func TestClassifyCategory(t *testing.T) {
	for _, category := range Categories() {
		got, err := ClassifyCategory(category.Value)
		require.NoError(t, err)
		assert.Equal(t, category, got)
	}
}

func TestClassifyCategoryUnknown(t *testing.T) {
	_, err := ClassifyCategory("missiles")
	assert.True(t, util.IsCode(err, util.CodeNotFound))
}

func TestCategoriesCopy(t *testing.T) {
	first := Categories()
	first[0].Label = "mutated"
	assert.NotEqual(t, "mutated", Categories()[0].Label)
}
