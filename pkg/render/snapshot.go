package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/swipeactions/pkg/graphics"
)

// UpdateSnapshotsEnv, when set to "1", makes MatchesFile rewrite golden files
// instead of comparing against them.
const UpdateSnapshotsEnv = "SWIPE_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot is a stable, serializable capture of a render tree.
type Snapshot struct {
	Size graphics.Size `json:"size"`
	Root *SnapshotNode `json:"root,omitempty"`
}

// SnapshotNode is a node with rounded geometry and without callbacks.
type SnapshotNode struct {
	ID            string            `json:"id"`
	Key           string            `json:"key,omitempty"`
	Frame         [4]float64        `json:"frame"`
	Fill          string            `json:"fill,omitempty"`
	CornerRadius  float64           `json:"cornerRadius,omitempty"`
	Clip          bool              `json:"clip,omitempty"`
	Mask          *[4]float64       `json:"mask,omitempty"`
	Icon          string            `json:"icon,omitempty"`
	IconTint      string            `json:"iconTint,omitempty"`
	IconSize      float64           `json:"iconSize,omitempty"`
	IgnorePointer bool              `json:"ignorePointer,omitempty"`
	Tappable      bool              `json:"tappable,omitempty"`
	Props         map[string]string `json:"props,omitempty"`
	Children      []*SnapshotNode   `json:"children,omitempty"`
}

// Capture snapshots root as laid out in a surface of the given size.
func Capture(root *Node, size graphics.Size) *Snapshot {
	snap := &Snapshot{Size: size}
	if root != nil {
		snap.Root = captureNode(root, &kindCounter{})
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When SWIPE_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := LoadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := s.MarshalIndent()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between other (expected) and this snapshot.
// Returns empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := s.MarshalIndent()
	b, _ := other.MarshalIndent()
	if bytes.Equal(a, b) {
		return ""
	}
	return lineDiff(string(b), string(a))
}

// MarshalIndent encodes the snapshot as indented JSON.
func (s *Snapshot) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadSnapshot reads a snapshot written by UpdateFile.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

// kindCounter assigns stable IDs like "button#0", "button#1".
type kindCounter struct {
	counts map[string]int
}

func (c *kindCounter) next(kind string) string {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	n := c.counts[kind]
	c.counts[kind] = n + 1
	return fmt.Sprintf("%s#%d", kind, n)
}

func captureNode(n *Node, counter *kindCounter) *SnapshotNode {
	out := &SnapshotNode{
		ID:            counter.next(n.Kind),
		Key:           n.Key,
		Frame:         rectArray(n.Frame),
		CornerRadius:  round2(n.CornerRadius),
		Clip:          n.Clip,
		Icon:          n.Icon,
		IconSize:      round2(n.IconSize),
		IgnorePointer: n.IgnorePointer,
		Tappable:      n.OnTap != nil,
	}
	if !n.Fill.IsTransparent() {
		out.Fill = n.Fill.Hex()
	}
	if n.Icon != "" {
		out.IconTint = n.IconTint.Hex()
	}
	if n.Mask != nil {
		mask := rectArray(*n.Mask)
		out.Mask = &mask
	}
	if len(n.Props) > 0 {
		out.Props = maps.Clone(n.Props)
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, captureNode(child, counter))
	}
	return out
}

func rectArray(r graphics.Rect) [4]float64 {
	return [4]float64{round2(r.Left), round2(r.Top), round2(r.Width()), round2(r.Height())}
}

// round2 rounds to two decimals and normalizes negative zero.
func round2(v float64) float64 {
	r := math.Round(v*100) / 100
	if r == 0 {
		return 0
	}
	return r
}

// lineDiff produces a simple line-oriented diff.
func lineDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := max(len(expectedLines), len(actualLines))
	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
