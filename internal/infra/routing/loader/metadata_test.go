package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeFile(t *testing.T) {
	content := "lat,long\n1,2\n,3\n"
	path := writeCSV(t, content)

	dataset, err := NewCSVLoader(Options{SkipIncomplete: true}).LoadFile(path)
	require.NoError(t, err)

	meta, err := DescribeFile(path, dataset)
	require.NoError(t, err)

	assert.Equal(t, path, meta.Path)
	assert.Equal(t, int64(len(content)), meta.SizeBytes)
	assert.Len(t, meta.SHA256, 64)
	assert.Equal(t, 2, meta.Rows)
	assert.Equal(t, 1, meta.Locations)
	assert.Equal(t, 1, meta.Skipped)
	assert.False(t, meta.LoadedAt.IsZero())

	summary := meta.Summary()
	assert.Equal(t, "16 B", summary["size"])
	assert.Equal(t, 1, summary["locations"])
}

func TestDescribeFile_SameContentSameChecksum(t *testing.T) {
	first, err := DescribeFile(writeCSV(t, "lat,long\n1,2\n"), nil)
	require.NoError(t, err)
	second, err := DescribeFile(writeCSV(t, "lat,long\n1,2\n"), nil)
	require.NoError(t, err)
	third, err := DescribeFile(writeCSV(t, "lat,long\n1,3\n"), nil)
	require.NoError(t, err)

	assert.Equal(t, first.SHA256, second.SHA256)
	assert.NotEqual(t, first.SHA256, third.SHA256)
	assert.Zero(t, first.Rows)
}

func TestDescribeFile_Missing(t *testing.T) {
	_, err := DescribeFile(writeCSV(t, "")+".missing", nil)

	assert.Error(t, err)
}
