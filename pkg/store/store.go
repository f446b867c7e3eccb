package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jwebster45206/script-editor/pkg/script"
)

// Store owns one script document bound to a file. Every applied mutation
// rewrites the whole file before returning. A Store holds no open file
// handles between calls.
type Store struct {
	path string
	doc  *script.Document
}

// Open loads the script at path.
func Open(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	doc, err := script.Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	return &Store{path: path, doc: doc}, nil
}

// Create writes an empty script to path and opens it. It fails if the file
// already exists.
func Create(path string) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, &WriteError{Path: path, Err: os.ErrExist}
	}

	s := &Store{path: path, doc: script.NewDocument()}
	if err := s.Save(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string {
	return s.path
}

// Save rewrites the backing file from the in-memory document.
func (s *Store) Save() error {
	return s.write(s.doc)
}

// write replaces the backing file with doc. The data goes to a temporary
// file in the same directory which is then renamed over the target, so the
// target is never left half-written.
func (s *Store) write(doc *script.Document) error {
	data, err := script.Encode(doc)
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}

// mutate applies fn to a copy of the document. When fn reports Applied the
// copy is written and, only once the write succeeds, replaces the
// in-memory document.
func (s *Store) mutate(fn func(doc *script.Document) Result) (Result, error) {
	next := s.doc.Clone()
	res := fn(next)
	if !res.OK() {
		return res, nil
	}
	if err := s.write(next); err != nil {
		return res, err
	}
	s.doc = next
	return res, nil
}

// ListScenes returns scene names in document order.
func (s *Store) ListScenes() []string {
	return s.doc.Names()
}

// ViewScene returns a copy of the named scene.
func (s *Store) ViewScene(name string) (script.Scene, bool) {
	scene, ok := s.doc.Scene(name)
	if !ok {
		return script.Scene{}, false
	}
	return scene.Clone(), true
}

// Snapshot returns a deep copy of the whole document.
func (s *Store) Snapshot() *script.Document {
	return s.doc.Clone()
}

func (s *Store) AddScene(name string) (Result, error) {
	return s.mutate(func(doc *script.Document) Result {
		if doc.Has(name) {
			return SceneExists
		}
		doc.Put(name, script.NewScene())
		return Applied
	})
}

// DeleteScene removes a scene. Choices elsewhere that point at it are kept.
func (s *Store) DeleteScene(name string) (Result, error) {
	return s.mutate(func(doc *script.Document) Result {
		if !doc.Remove(name) {
			return SceneNotFound
		}
		return Applied
	})
}

func (s *Store) AddDialogue(scene, character, text string) (Result, error) {
	return s.mutate(func(doc *script.Document) Result {
		sc, ok := doc.Scene(scene)
		if !ok {
			return SceneNotFound
		}
		sc.Dialogue = append(sc.Dialogue, script.DialogueLine{Character: character, Text: text})
		return Applied
	})
}

func (s *Store) DeleteDialogue(scene string, index int) (Result, error) {
	return s.mutate(func(doc *script.Document) Result {
		sc, ok := doc.Scene(scene)
		if !ok {
			return SceneNotFound
		}
		if index < 0 || index >= len(sc.Dialogue) {
			return IndexOutOfRange
		}
		sc.Dialogue = append(sc.Dialogue[:index], sc.Dialogue[index+1:]...)
		return Applied
	})
}

// AddChoice appends a choice. nextScene is not required to exist.
func (s *Store) AddChoice(scene, text, nextScene string) (Result, error) {
	return s.mutate(func(doc *script.Document) Result {
		sc, ok := doc.Scene(scene)
		if !ok {
			return SceneNotFound
		}
		sc.Choices = append(sc.Choices, script.Choice{Text: text, NextScene: nextScene})
		return Applied
	})
}

func (s *Store) DeleteChoice(scene string, index int) (Result, error) {
	return s.mutate(func(doc *script.Document) Result {
		sc, ok := doc.Scene(scene)
		if !ok {
			return SceneNotFound
		}
		if index < 0 || index >= len(sc.Choices) {
			return IndexOutOfRange
		}
		sc.Choices = append(sc.Choices[:index], sc.Choices[index+1:]...)
		return Applied
	})
}

// String is used in log lines.
func (s *Store) String() string {
	return fmt.Sprintf("script(%s, %d scenes)", s.path, s.doc.Len())
}
