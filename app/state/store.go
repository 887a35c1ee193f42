package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the book document as indented JSON. The write goes through a
// temp file and rename so a crash mid-write never corrupts the previous save.
func (b *Book) Save(path string) error {
	return saveJSON(path, b)
}

func LoadBook(path string) (*Book, error) {
	var b Book
	if err := loadJSON(path, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (l *Lore) Save(path string) error {
	return saveJSON(path, l)
}

func LoadLore(path string) (*Lore, error) {
	var l Lore
	if err := loadJSON(path, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// Clone deep-copies the document through its serialized form, so a caller's
// state is never aliased by a running pipeline.
func (b *Book) Clone() *Book {
	var out Book
	cloneJSON(b, &out)
	return &out
}

func (l *Lore) Clone() *Lore {
	var out Lore
	cloneJSON(l, &out)
	return &out
}

func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit state: %w", err)
	}
	return nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}
	if err = json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse state: %w", err)
	}
	return nil
}

func cloneJSON(in, out any) {
	data, err := json.Marshal(in)
	if err != nil {
		panic(fmt.Sprintf("state clone marshal: %v", err))
	}
	if err = json.Unmarshal(data, out); err != nil {
		panic(fmt.Sprintf("state clone unmarshal: %v", err))
	}
}
