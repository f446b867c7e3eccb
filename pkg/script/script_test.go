package script

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleScript = `{
    "intro": {
        "dialogue": [
            {"character": "Narrator", "text": "Welcome."},
            {"character": "Alice", "text": "Hi!"}
        ],
        "choices": [
            {"text": "Start game", "nextScene": "level1"}
        ]
    },
    "level1": {"dialogue": [], "choices": []},
    "alpha": {"choices": [], "dialogue": [], "extra": 42}
}`

func TestParse_PreservesOrder(t *testing.T) {
	doc, err := Parse([]byte(sampleScript))
	require.NoError(t, err)

	assert.Equal(t, []string{"intro", "level1", "alpha"}, doc.Names())
	assert.Equal(t, 3, doc.Len())

	intro, ok := doc.Scene("intro")
	require.True(t, ok)
	assert.Equal(t, []DialogueLine{
		{Character: "Narrator", Text: "Welcome."},
		{Character: "Alice", Text: "Hi!"},
	}, intro.Dialogue)
	assert.Equal(t, []Choice{{Text: "Start game", NextScene: "level1"}}, intro.Choices)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{"intro": `},
		{name: "empty input", data: ``},
		{name: "top-level array", data: `[]`},
		{name: "top-level null", data: `null`},
		{name: "scene is a string", data: `{"intro": "hello"}`},
		{name: "scene is null", data: `{"intro": null}`},
		{name: "missing dialogue", data: `{"intro": {"choices": []}}`},
		{name: "missing choices", data: `{"intro": {"dialogue": []}}`},
		{name: "null dialogue", data: `{"intro": {"dialogue": null, "choices": []}}`},
		{name: "dialogue not an array", data: `{"intro": {"dialogue": {}, "choices": []}}`},
		{name: "line missing text", data: `{"intro": {"dialogue": [{"character": "A"}], "choices": []}}`},
		{name: "line text not a string", data: `{"intro": {"dialogue": [{"character": "A", "text": 1}], "choices": []}}`},
		{name: "choice missing nextScene", data: `{"intro": {"dialogue": [], "choices": [{"text": "Go"}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.data))
			assert.Error(t, err)
			assert.Nil(t, doc)
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	doc, err := Parse([]byte("  {}\n"))
	require.NoError(t, err)
	assert.Empty(t, doc.Names())
}

func TestEncode_RoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleScript))
	require.NoError(t, err)

	data, err := Encode(doc)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n"))
	assert.NotContains(t, string(data), "extra", "unknown fields are not written back")
	assert.NotContains(t, string(data), "null")

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, doc.Names(), again.Names())
	for _, name := range doc.Names() {
		want, _ := doc.Scene(name)
		got, _ := again.Scene(name)
		assert.Equal(t, want, got, "scene %q", name)
	}
}

func TestEncode_EmptySequencesAsArrays(t *testing.T) {
	doc := NewDocument()
	doc.Put("intro", NewScene())
	doc.Put("bare", &Scene{})

	data, err := Encode(doc)
	require.NoError(t, err)

	var raw map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, name := range []string{"intro", "bare"} {
		assert.JSONEq(t, `[]`, string(raw[name]["dialogue"]))
		assert.JSONEq(t, `[]`, string(raw[name]["choices"]))
	}
}

func TestDocument_PutRemove(t *testing.T) {
	doc := NewDocument()
	doc.Put("b", NewScene())
	doc.Put("a", NewScene())
	doc.Put(" a", NewScene())
	doc.Put("", NewScene())

	assert.Equal(t, []string{"b", "a", " a", ""}, doc.Names())
	assert.True(t, doc.Has(""))

	assert.True(t, doc.Remove("a"))
	assert.False(t, doc.Remove("a"))
	assert.Equal(t, []string{"b", " a", ""}, doc.Names())
}

func TestDocument_CloneIsDeep(t *testing.T) {
	doc, err := Parse([]byte(sampleScript))
	require.NoError(t, err)

	c := doc.Clone()
	scene, _ := c.Scene("intro")
	scene.Dialogue[0].Text = "changed"
	scene.Choices = append(scene.Choices, Choice{Text: "x", NextScene: "y"})
	c.Remove("alpha")

	orig, _ := doc.Scene("intro")
	assert.Equal(t, "Welcome.", orig.Dialogue[0].Text)
	assert.Len(t, orig.Choices, 1)
	assert.True(t, doc.Has("alpha"))
}

func TestEncodeYAML_KeepsOrder(t *testing.T) {
	doc, err := Parse([]byte(sampleScript))
	require.NoError(t, err)

	data, err := EncodeYAML(doc)
	require.NoError(t, err)

	out := string(data)
	assert.Less(t, strings.Index(out, "intro:"), strings.Index(out, "level1:"))
	assert.Less(t, strings.Index(out, "level1:"), strings.Index(out, "alpha:"))
	assert.Contains(t, out, "nextScene: level1")

	var back yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &back))
	require.Len(t, back.Content, 1)
	top := back.Content[0]
	require.Equal(t, yaml.MappingNode, top.Kind)
	assert.Equal(t, "intro", top.Content[0].Value)
	assert.Equal(t, "level1", top.Content[2].Value)
	assert.Equal(t, "alpha", top.Content[4].Value)
}

func TestEncodeYAML_QuotesAmbiguousScalars(t *testing.T) {
	doc := NewDocument()
	doc.Put("yes", NewScene())

	data, err := EncodeYAML(doc)
	require.NoError(t, err)

	var back map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &back))
	_, ok := back["yes"]
	assert.True(t, ok, "scene name must survive as a string key")
}
