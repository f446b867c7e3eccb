package script

import (
	"gopkg.in/yaml.v3"
)

// MarshalYAML renders the document as a YAML mapping that keeps scene order
// and the same field names as the JSON form.
func (d *Document) MarshalYAML() (interface{}, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for pair := d.scenes.Oldest(); pair != nil; pair = pair.Next() {
		root.Content = append(root.Content, stringNode(pair.Key), sceneNode(pair.Value))
	}
	return root, nil
}

func sceneNode(s *Scene) *yaml.Node {
	dialogue := &yaml.Node{Kind: yaml.SequenceNode}
	for _, line := range s.Dialogue {
		dialogue.Content = append(dialogue.Content, mappingNode(
			"character", line.Character,
			"text", line.Text,
		))
	}

	choices := &yaml.Node{Kind: yaml.SequenceNode}
	for _, c := range s.Choices {
		choices.Content = append(choices.Content, mappingNode(
			"text", c.Text,
			"nextScene", c.NextScene,
		))
	}

	if len(dialogue.Content) == 0 {
		dialogue.Style = yaml.FlowStyle
	}
	if len(choices.Content) == 0 {
		choices.Style = yaml.FlowStyle
	}

	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			stringNode("dialogue"), dialogue,
			stringNode("choices"), choices,
		},
	}
}

// mappingNode builds a mapping from alternating key/value strings.
func mappingNode(kv ...string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range kv {
		n.Content = append(n.Content, stringNode(s))
	}
	return n
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// EncodeYAML renders the document as YAML.
func EncodeYAML(d *Document) ([]byte, error) {
	return yaml.Marshal(d)
}
