// Package document provides the value type used for configuration templates
// and stored configuration objects.
//
// A Value is a tagged union of mapping, sequence and scalar. Mappings keep
// their key order so that a rendered document reads like its template.
package document

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"

	oerrors "github.com/viewmodes/vmi/internal/errors"
)

// Kind discriminates the three shapes a Value can take.
type Kind int

const (
	// ScalarKind is a single string, number, bool or null.
	ScalarKind Kind = iota

	// SequenceKind is an ordered list of values.
	SequenceKind

	// MappingKind is an ordered set of string-keyed values.
	MappingKind
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case ScalarKind:
		return "scalar"
	case SequenceKind:
		return "sequence"
	case MappingKind:
		return "mapping"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Entry is one key/value pair of a mapping.
type Entry struct {
	Key   string
	Value *Value
}

// Value is a node of a configuration document.
type Value struct {
	kind Kind

	// scalar state
	text  string
	tag   string
	style yaml.Style

	items   []*Value
	entries []Entry
}

// NewMapping returns a mapping holding the given entries in order.
func NewMapping(entries ...Entry) *Value {
	return &Value{kind: MappingKind, entries: append([]Entry(nil), entries...)}
}

// NewSequence returns a sequence holding the given items in order.
func NewSequence(items ...*Value) *Value {
	return &Value{kind: SequenceKind, items: append([]*Value(nil), items...)}
}

// NewString returns a string scalar.
func NewString(s string) *Value {
	return &Value{kind: ScalarKind, text: s, tag: "!!str"}
}

// NewBool returns a boolean scalar.
func NewBool(b bool) *Value {
	if b {
		return &Value{kind: ScalarKind, text: "true", tag: "!!bool"}
	}
	return &Value{kind: ScalarKind, text: "false", tag: "!!bool"}
}

// NewStrings returns a sequence of string scalars.
func NewStrings(ss ...string) *Value {
	seq := &Value{kind: SequenceKind, items: make([]*Value, 0, len(ss))}
	for _, s := range ss {
		seq.items = append(seq.items, NewString(s))
	}
	return seq
}

// Kind returns the shape of the value.
func (v *Value) Kind() Kind { return v.kind }

// IsMapping reports whether v is a mapping.
func (v *Value) IsMapping() bool { return v != nil && v.kind == MappingKind }

// IsSequence reports whether v is a sequence.
func (v *Value) IsSequence() bool { return v != nil && v.kind == SequenceKind }

// IsScalar reports whether v is a scalar.
func (v *Value) IsScalar() bool { return v != nil && v.kind == ScalarKind }

// Scalar returns the raw text of a scalar.
func (v *Value) Scalar() (string, bool) {
	if !v.IsScalar() {
		return "", false
	}
	return v.text, true
}

// Tag returns the short YAML tag of a scalar, e.g. "!!str" or "!!int".
func (v *Value) Tag() string {
	return v.tag
}

// Len returns the number of entries or items. Scalars have length zero.
func (v *Value) Len() int {
	switch {
	case v.IsMapping():
		return len(v.entries)
	case v.IsSequence():
		return len(v.items)
	default:
		return 0
	}
}

// Get returns the value stored under key in a mapping.
func (v *Value) Get(key string) (*Value, bool) {
	if !v.IsMapping() {
		return nil, false
	}
	for _, e := range v.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Set stores val under key, replacing an existing entry in place or
// appending a new one. It is a no-op on non-mappings.
func (v *Value) Set(key string, val *Value) {
	if !v.IsMapping() {
		return
	}
	for i, e := range v.entries {
		if e.Key == key {
			v.entries[i].Value = val
			return
		}
	}
	v.entries = append(v.entries, Entry{Key: key, Value: val})
}

// Delete removes every entry for key from a mapping and reports whether
// one was present.
func (v *Value) Delete(key string) bool {
	if !v.IsMapping() {
		return false
	}
	kept := v.entries[:0]
	for _, e := range v.entries {
		if e.Key != key {
			kept = append(kept, e)
		}
	}
	removed := len(kept) != len(v.entries)
	for i := len(kept); i < len(v.entries); i++ {
		v.entries[i] = Entry{}
	}
	v.entries = kept
	return removed
}

// Keys returns the mapping keys in document order.
func (v *Value) Keys() []string {
	if !v.IsMapping() {
		return nil
	}
	keys := make([]string, 0, len(v.entries))
	for _, e := range v.entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Entries returns a copy of the mapping entries in document order.
func (v *Value) Entries() []Entry {
	if !v.IsMapping() {
		return nil
	}
	return append([]Entry(nil), v.entries...)
}

// Items returns a copy of the sequence items.
func (v *Value) Items() []*Value {
	if !v.IsSequence() {
		return nil
	}
	return append([]*Value(nil), v.items...)
}

// Append adds items to the end of a sequence.
func (v *Value) Append(items ...*Value) {
	if !v.IsSequence() {
		return
	}
	v.items = append(v.items, items...)
}

// Lookup walks nested mappings along path. It returns false as soon as a
// segment is missing or the current value is not a mapping, so an absent
// structure is distinguishable from an empty one.
func (v *Value) Lookup(path ...string) (*Value, bool) {
	cur := v
	for _, key := range path {
		next, ok := cur.Get(key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, cur != nil
}

// Strings returns the scalar texts of a sequence. It returns false when v
// is not a sequence or holds a non-scalar item.
func (v *Value) Strings() ([]string, bool) {
	if !v.IsSequence() {
		return nil, false
	}
	out := make([]string, 0, len(v.items))
	for _, item := range v.items {
		s, ok := item.Scalar()
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// RemoveScalars deletes every scalar item equal to s from a sequence,
// keeping the order of the rest, and returns how many were removed.
func (v *Value) RemoveScalars(s string) int {
	if !v.IsSequence() {
		return 0
	}
	kept := v.items[:0]
	removed := 0
	for _, item := range v.items {
		if text, ok := item.Scalar(); ok && text == s {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	for i := len(kept); i < len(v.items); i++ {
		v.items[i] = nil
	}
	v.items = kept
	return removed
}

// DeepCopy returns an independent copy of v.
func (v *Value) DeepCopy() *Value {
	if v == nil {
		return nil
	}
	out := &Value{kind: v.kind, text: v.text, tag: v.tag, style: v.style}
	if v.items != nil {
		out.items = make([]*Value, len(v.items))
		for i, item := range v.items {
			out.items[i] = item.DeepCopy()
		}
	}
	if v.entries != nil {
		out.entries = make([]Entry, len(v.entries))
		for i, e := range v.entries {
			out.entries[i] = Entry{Key: e.Key, Value: e.Value.DeepCopy()}
		}
	}
	return out
}

// Equal reports whether a and b hold the same structure and scalar text.
// Scalar presentation style is ignored.
func Equal(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case ScalarKind:
		return a.text == b.text && a.tag == b.tag
	case SequenceKind:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	default:
		if len(a.entries) != len(b.entries) {
			return false
		}
		for i := range a.entries {
			if a.entries[i].Key != b.entries[i].Key || !Equal(a.entries[i].Value, b.entries[i].Value) {
				return false
			}
		}
		return true
	}
}

// Parse decodes YAML text into a Value. Only the first document of a
// stream is read. An empty input yields an empty mapping. Syntax errors
// are returned as *errors.TemplateParseError.
func Parse(data []byte) (*Value, error) {
	return ParseNamed("", data)
}

// ParseNamed is Parse with a source name recorded in parse errors.
func ParseNamed(source string, data []byte) (*Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &oerrors.TemplateParseError{Source: source, Cause: err}
	}
	if node.Kind == 0 || len(node.Content) == 0 {
		return NewMapping(), nil
	}
	// The decoder enforces yaml.v3's alias and duplicate-key checks, which
	// parsing into a Node skips.
	if err := node.Decode(new(interface{})); err != nil {
		return nil, &oerrors.TemplateParseError{Source: source, Cause: err}
	}
	v, err := fromNode(node.Content[0])
	if err != nil {
		return nil, &oerrors.TemplateParseError{Source: source, Cause: err}
	}
	return v, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := fromNode(node)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v *Value) MarshalYAML() (interface{}, error) {
	return v.toNode(), nil
}

// Encode renders v as YAML with two-space indentation.
func (v *Value) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v.toNode()); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return buf.Bytes(), nil
}

// JSON renders v as JSON. Mapping keys are sorted by the JSON encoder.
func (v *Value) JSON() ([]byte, error) {
	data, err := v.Encode()
	if err != nil {
		return nil, err
	}
	out, err := k8syaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("converting document to JSON: %w", err)
	}
	return out, nil
}

// Interface converts v into plain Go values (map[string]interface{},
// []interface{}, string, int, bool, ...).
func (v *Value) Interface() (interface{}, error) {
	var out interface{}
	if err := v.toNode().Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return out, nil
}

// maxExpandedNodes bounds the size of a document after alias expansion.
const maxExpandedNodes = 1 << 20

// nodeReader converts yaml.Node trees into Values. It rejects alias
// cycles, duplicate mapping keys and documents that grow past
// maxExpandedNodes once aliases are copied.
type nodeReader struct {
	expanding map[*yaml.Node]bool
	nodes     int
}

func fromNode(n *yaml.Node) (*Value, error) {
	r := &nodeReader{expanding: map[*yaml.Node]bool{}}
	return r.read(n)
}

func (r *nodeReader) read(n *yaml.Node) (*Value, error) {
	r.nodes++
	if r.nodes > maxExpandedNodes {
		return nil, fmt.Errorf("line %d: document contains excessive aliasing", n.Line)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return NewMapping(), nil
		}
		return r.read(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: dangling alias", n.Line)
		}
		if r.expanding[n.Alias] {
			return nil, fmt.Errorf("line %d: anchor %q value contains itself", n.Line, n.Value)
		}
		r.expanding[n.Alias] = true
		v, err := r.read(n.Alias)
		delete(r.expanding, n.Alias)
		return v, err
	case yaml.ScalarNode:
		return &Value{kind: ScalarKind, text: n.Value, tag: n.ShortTag(), style: n.Style &^ yaml.TaggedStyle}, nil
	case yaml.SequenceNode:
		seq := &Value{kind: SequenceKind, items: make([]*Value, 0, len(n.Content))}
		for _, c := range n.Content {
			item, err := r.read(c)
			if err != nil {
				return nil, err
			}
			seq.items = append(seq.items, item)
		}
		return seq, nil
	case yaml.MappingNode:
		m := &Value{kind: MappingKind, entries: make([]Entry, 0, len(n.Content)/2)}
		seen := make(map[string]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", k.Line)
			}
			if line, dup := seen[k.Value]; dup {
				return nil, fmt.Errorf("line %d: mapping key %q already defined at line %d", k.Line, k.Value, line)
			}
			seen[k.Value] = k.Line
			val, err := r.read(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.entries = append(m.entries, Entry{Key: k.Value, Value: val})
		}
		return m, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}

func (v *Value) toNode() *yaml.Node {
	if v == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	switch v.kind {
	case SequenceKind:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.items {
			n.Content = append(n.Content, item.toNode())
		}
		return n
	case MappingKind:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.entries {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
				e.Value.toNode(),
			)
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: v.tag, Value: v.text, Style: v.style}
	}
}
