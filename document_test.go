package enact_test

import (
	"testing"

	"github.com/FedorSmirnov89/enact"
	"github.com/stretchr/testify/require"
)

func TestDocumentClone(t *testing.T) {
	doc := enact.Document{
		"x": 1,
		"nested": map[string]any{
			"y": "foo",
		},
		"list": []any{1, 2, 3},
	}

	cp := doc.Clone()
	require.Equal(t, map[string]any(doc), map[string]any(cp))

	cp["x"] = 2
	cp["nested"].(map[string]any)["y"] = "bar"
	cp["list"].([]any)[0] = 0

	require.Equal(t, 1, doc["x"])
	require.Equal(t, "foo", doc["nested"].(map[string]any)["y"])
	require.Equal(t, 1, doc["list"].([]any)[0])
}

func TestDocumentCloneNil(t *testing.T) {
	var doc enact.Document
	require.Nil(t, doc.Clone())
}
