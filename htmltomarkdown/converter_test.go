package htmltomarkdown_test

import (
	"testing"

	"github.com/pkorzen/draftpipe"
	"github.com/pkorzen/draftpipe/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	converter := htmltomarkdown.NewConverter()

	t.Run("converts article markup to markdown", func(t *testing.T) {
		t.Parallel()

		md, err := converter.Convert("<h2>Section</h2><p>Text with <strong>emphasis</strong>.</p><ul><li>one</li><li>two</li></ul>")
		require.NoError(t, err)

		assert.Contains(t, md, "## Section")
		assert.Contains(t, md, "**emphasis**")
		assert.Contains(t, md, "- one")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := converter.Convert("  ")
		require.Error(t, err)
		assert.Equal(t, draftpipe.EINVALID, draftpipe.ErrorCode(err))
	})
}
