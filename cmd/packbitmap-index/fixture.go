// Copyright (c) the packbitmap authors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root for details.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/packbitmap/index/object"
	"github.com/packbitmap/index/store"
)

// graphFile is the on-disk shape this CLI accepts in place of a real
// packfile reader (spec §1: the object store is an external
// collaborator, out of scope). It describes the same closed reachability
// graph a packfile would, as JSON, so the builder can be exercised
// end-to-end without a packfile parser.
type graphFile struct {
	Checksum string       `json:"checksum"`
	Heads    []string     `json:"heads"`
	Objects  []graphEntry `json:"objects"`
}

type graphEntry struct {
	ID      string       `json:"id"`
	Kind    string       `json:"kind"`
	Tree    string       `json:"tree,omitempty"`
	Parents []string     `json:"parents,omitempty"`
	Entries []treeChild  `json:"entries,omitempty"`
}

type treeChild struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Name string `json:"name"`
}

func parseID(s string) (object.ID, error) {
	var id object.ID
	raw, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("invalid object id %q: %w", s, err)
	}
	if len(raw) != object.IDSize {
		return id, fmt.Errorf("invalid object id %q: want %d bytes, got %d", s, object.IDSize, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

func parseKind(s string) (object.Kind, error) {
	switch s {
	case "commit":
		return object.KindCommit, nil
	case "tree":
		return object.KindTree, nil
	case "blob":
		return object.KindBlob, nil
	case "tag":
		return object.KindTag, nil
	default:
		return 0, fmt.Errorf("unknown object kind %q", s)
	}
}

// loadGraph reads a graphFile and returns an in-memory store.Fixture plus
// the head commits to start the selector's linearization from.
func loadGraph(path string) (*store.Fixture, []object.ID, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read graph file: %w", err)
	}

	var gf graphFile
	if err := json.Unmarshal(raw, &gf); err != nil {
		return nil, nil, fmt.Errorf("parse graph file: %w", err)
	}

	fx := store.NewFixture()
	if gf.Checksum != "" {
		checksum, err := parseID(gf.Checksum)
		if err != nil {
			return nil, nil, err
		}
		fx.SetChecksum(checksum)
	}

	// Objects are added in file order, which becomes pack order and so
	// bit position. No particular order is required: the Closure Loader
	// checks commit parents only after every object is in the table.
	for _, entry := range gf.Objects {
		id, err := parseID(entry.ID)
		if err != nil {
			return nil, nil, err
		}
		kind, err := parseKind(entry.Kind)
		if err != nil {
			return nil, nil, err
		}

		switch kind {
		case object.KindBlob:
			fx.AddBlob(id)
		case object.KindTag:
			fx.AddTag(id)
		case object.KindTree:
			children := make([]store.Entry, 0, len(entry.Entries))
			for _, c := range entry.Entries {
				childID, err := parseID(c.ID)
				if err != nil {
					return nil, nil, err
				}
				childKind, err := parseKind(c.Kind)
				if err != nil {
					return nil, nil, err
				}
				children = append(children, store.Entry{ID: childID, Kind: childKind, Name: c.Name})
			}
			fx.AddTree(id, children...)
		case object.KindCommit:
			tree, err := parseID(entry.Tree)
			if err != nil {
				return nil, nil, err
			}
			parents := make([]object.ID, 0, len(entry.Parents))
			for _, p := range entry.Parents {
				parentID, err := parseID(p)
				if err != nil {
					return nil, nil, err
				}
				parents = append(parents, parentID)
			}
			fx.AddCommit(id, tree, parents...)
		}
	}

	heads := make([]object.ID, 0, len(gf.Heads))
	for _, h := range gf.Heads {
		id, err := parseID(h)
		if err != nil {
			return nil, nil, err
		}
		heads = append(heads, id)
	}

	return fx, heads, nil
}
