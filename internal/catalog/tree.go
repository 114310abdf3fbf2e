package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Tree is a directory of the collection. Leaves carry a Recipe.
type Tree struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Recipe   *Entry  `json:"recipe,omitempty"`
	Children []*Tree `json:"children,omitempty"`
}

// BuildTree scans base. Directories come before recipes, each sorted by name;
// directories without recipes are omitted.
func BuildTree(base string) (*Tree, error) {
	info, err := os.Stat(base)
	if err != nil {
		return nil, fmt.Errorf("scan recipes: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan recipes: %s is not a directory", base)
	}
	root, err := buildDir(base, "")
	if err != nil {
		return nil, err
	}
	if root == nil {
		root = &Tree{}
	}
	root.Name = filepath.Base(base)
	return root, nil
}

func buildDir(dir, rel string) (*Tree, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	node := &Tree{Name: filepath.Base(dir), Path: rel}
	var dirs, recipes []*Tree
	for _, e := range entries {
		childRel := e.Name()
		if rel != "" {
			childRel = rel + "/" + e.Name()
		}
		full := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if skipDir(e.Name()) {
				continue
			}
			child, err := buildDir(full, childRel)
			if err != nil {
				return nil, err
			}
			if child != nil {
				dirs = append(dirs, child)
			}
			continue
		}
		if !IsRecipeFile(e.Name()) {
			continue
		}
		entry := NewEntry(full)
		recipes = append(recipes, &Tree{Name: entry.Name, Path: childRel, Recipe: entry})
	}
	if len(dirs) == 0 && len(recipes) == 0 && rel != "" {
		return nil, nil
	}
	byName := func(items []*Tree) {
		sort.Slice(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	}
	byName(dirs)
	byName(recipes)
	node.Children = append(dirs, recipes...)
	return node, nil
}

// Walk calls fn for every recipe in tree order.
func (t *Tree) Walk(fn func(*Tree) error) error {
	if t == nil {
		return nil
	}
	if t.Recipe != nil {
		if err := fn(t); err != nil {
			return err
		}
	}
	for _, c := range t.Children {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Recipes flattens the tree.
func (t *Tree) Recipes() []*Tree {
	var out []*Tree
	_ = t.Walk(func(n *Tree) error {
		out = append(out, n)
		return nil
	})
	return out
}
