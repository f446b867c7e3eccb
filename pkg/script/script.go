package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DialogueLine is a single spoken line within a scene.
type DialogueLine struct {
	Character string `json:"character"`
	Text      string `json:"text"`
}

// Choice is a player option leading to another scene. NextScene is stored
// verbatim and may name a scene that does not exist.
type Choice struct {
	Text      string `json:"text"`
	NextScene string `json:"nextScene"`
}

// Scene holds the ordered dialogue and choices of one scene.
type Scene struct {
	Dialogue []DialogueLine `json:"dialogue"`
	Choices  []Choice       `json:"choices"`
}

// NewScene returns a scene with empty dialogue and choice sequences.
func NewScene() *Scene {
	return &Scene{
		Dialogue: []DialogueLine{},
		Choices:  []Choice{},
	}
}

// Clone returns a deep copy of the scene.
func (s Scene) Clone() Scene {
	c := Scene{
		Dialogue: make([]DialogueLine, len(s.Dialogue)),
		Choices:  make([]Choice, len(s.Choices)),
	}
	copy(c.Dialogue, s.Dialogue)
	copy(c.Choices, s.Choices)
	return c
}

// MarshalJSON writes empty sequences as [] rather than null.
func (s Scene) MarshalJSON() ([]byte, error) {
	type scene Scene
	out := scene(s)
	if out.Dialogue == nil {
		out.Dialogue = []DialogueLine{}
	}
	if out.Choices == nil {
		out.Choices = []Choice{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON requires both the dialogue and choices arrays to be present.
func (s *Scene) UnmarshalJSON(data []byte) error {
	var raw struct {
		Dialogue *[]DialogueLine `json:"dialogue"`
		Choices  *[]Choice       `json:"choices"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Dialogue == nil {
		return errors.New(`missing "dialogue" array`)
	}
	if raw.Choices == nil {
		return errors.New(`missing "choices" array`)
	}
	s.Dialogue = *raw.Dialogue
	s.Choices = *raw.Choices
	return nil
}

func (d *DialogueLine) UnmarshalJSON(data []byte) error {
	var raw struct {
		Character *string `json:"character"`
		Text      *string `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Character == nil || raw.Text == nil {
		return errors.New(`dialogue line needs "character" and "text"`)
	}
	d.Character = *raw.Character
	d.Text = *raw.Text
	return nil
}

func (c *Choice) UnmarshalJSON(data []byte) error {
	var raw struct {
		Text      *string `json:"text"`
		NextScene *string `json:"nextScene"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Text == nil || raw.NextScene == nil {
		return errors.New(`choice needs "text" and "nextScene"`)
	}
	c.Text = *raw.Text
	c.NextScene = *raw.NextScene
	return nil
}

// Document is the whole script: scenes keyed by name, in insertion order.
type Document struct {
	scenes *orderedmap.OrderedMap[string, *Scene]
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{scenes: orderedmap.New[string, *Scene]()}
}

// Parse decodes and validates a script document. The top-level value must
// be an object whose values are scene objects.
func Parse(data []byte) (*Document, error) {
	if !json.Valid(data) {
		return nil, errors.New("invalid JSON")
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.New("script must be a JSON object of scenes")
	}

	doc := NewDocument()
	if err := doc.scenes.UnmarshalJSON(trimmed); err != nil {
		return nil, fmt.Errorf("failed to decode scenes: %w", err)
	}

	for pair := doc.scenes.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			return nil, fmt.Errorf("scene %q: must be an object", pair.Key)
		}
		if pair.Value.Dialogue == nil {
			pair.Value.Dialogue = []DialogueLine{}
		}
		if pair.Value.Choices == nil {
			pair.Value.Choices = []Choice{}
		}
	}
	return doc, nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	return d.scenes.MarshalJSON()
}

// Encode renders the document as indented JSON terminated by a newline.
func Encode(d *Document) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode script: %w", err)
	}
	return append(data, '\n'), nil
}

// Names returns scene names in document order.
func (d *Document) Names() []string {
	names := make([]string, 0, d.scenes.Len())
	for pair := d.scenes.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Scene returns the named scene. The pointer aliases the document.
func (d *Document) Scene(name string) (*Scene, bool) {
	return d.scenes.Get(name)
}

func (d *Document) Has(name string) bool {
	_, ok := d.scenes.Get(name)
	return ok
}

// Put inserts or replaces a scene. New names are appended at the end.
func (d *Document) Put(name string, scene *Scene) {
	d.scenes.Set(name, scene)
}

// Remove deletes a scene and reports whether it was present.
func (d *Document) Remove(name string) bool {
	_, ok := d.scenes.Delete(name)
	return ok
}

func (d *Document) Len() int {
	return d.scenes.Len()
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := NewDocument()
	for pair := d.scenes.Oldest(); pair != nil; pair = pair.Next() {
		scene := pair.Value.Clone()
		c.scenes.Set(pair.Key, &scene)
	}
	return c
}
