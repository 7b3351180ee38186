// Package objstore is the persistent-object system backing the notation
// and implicit registries. Registrations are recorded as a linear journal
// of (kind, payload) entries; state is reconstructed by replaying the
// journal through per-kind load hooks rather than by snapshotting.
//
// The protocol mirrors the declaration lifecycle: the owning registry
// installs its state first (the cache step, run exactly once per
// declaration) and only then appends an entry, so a failed registration
// never leaves a journal record behind. Load hooks run on every replay.
package objstore

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the journal format written by this build.
const FormatVersion = "1.0.0"

// supportedFormats gates which journal versions Open accepts.
var supportedFormats = mustConstraint("^1")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Entry is one journaled registration. Payload is an opaque string owned
// by the registering kind (the registries encode yaml into it).
type Entry struct {
	Kind    string `yaml:"kind"`
	Payload string `yaml:"payload"`
}

// Journal is an ordered registration log.
type Journal struct {
	entries []Entry
}

// NewJournal returns an empty journal.
func NewJournal() *Journal { return &Journal{} }

// Append records one registration. Callers append only after their own
// state mutation succeeded.
func (j *Journal) Append(kind, payload string) {
	j.entries = append(j.entries, Entry{Kind: kind, Payload: payload})
}

// Entries returns the journal contents in registration order.
func (j *Journal) Entries() []Entry { return j.entries }

// Len returns the number of journaled registrations.
func (j *Journal) Len() int { return len(j.entries) }

// Kind wires one object kind into the store.
type Kind struct {
	// Tag names the kind inside journal entries.
	Tag string
	// Load reinstalls one journaled registration. It runs on every
	// replay, in journal order.
	Load func(payload string) error
	// Substitute rewrites symbol identities inside a payload when the
	// environment is relocated. Optional; nil means payloads carry no
	// symbol identities.
	Substitute func(payload string, rename map[string]string) (string, error)
	// Discharge re-expresses a payload across a module boundary.
	// Optional; nil means entries pass through unchanged. An error
	// aborts the discharge of the whole journal.
	Discharge func(payload string) (string, error)
}

// Store dispatches journal entries to registered kinds.
type Store struct {
	kinds map[string]Kind
}

// NewStore returns a store with no kinds registered.
func NewStore() *Store {
	return &Store{kinds: make(map[string]Kind)}
}

// RegisterKind installs a kind. Registering the same tag twice is a
// programming error and is rejected.
func (s *Store) RegisterKind(k Kind) error {
	if k.Tag == "" || k.Load == nil {
		return fmt.Errorf("objstore: kind needs a tag and a load hook")
	}
	if _, dup := s.kinds[k.Tag]; dup {
		return fmt.Errorf("objstore: kind %q already registered", k.Tag)
	}
	s.kinds[k.Tag] = k
	return nil
}

// Replay runs every journal entry through its kind's load hook, in order.
// The first failure aborts the replay.
func (s *Store) Replay(j *Journal) error {
	for i, e := range j.entries {
		k, ok := s.kinds[e.Kind]
		if !ok {
			return fmt.Errorf("objstore: entry %d has unknown kind %q", i, e.Kind)
		}
		if err := k.Load(e.Payload); err != nil {
			return fmt.Errorf("objstore: replaying %s entry %d: %w", e.Kind, i, err)
		}
	}
	return nil
}

// Substitute produces a new journal with symbol identities renamed in
// every entry whose kind supports substitution. Values are otherwise
// unchanged: this is a pure key rewrite.
func (s *Store) Substitute(j *Journal, rename map[string]string) (*Journal, error) {
	out := NewJournal()
	for i, e := range j.entries {
		k, ok := s.kinds[e.Kind]
		if !ok {
			return nil, fmt.Errorf("objstore: entry %d has unknown kind %q", i, e.Kind)
		}
		payload := e.Payload
		if k.Substitute != nil {
			p, err := k.Substitute(payload, rename)
			if err != nil {
				return nil, fmt.Errorf("objstore: substituting %s entry %d: %w", e.Kind, i, err)
			}
			payload = p
		}
		out.Append(e.Kind, payload)
	}
	return out, nil
}

// Discharge maps every entry across a module boundary. Kinds may refuse;
// the first refusal aborts the discharge.
func (s *Store) Discharge(j *Journal) (*Journal, error) {
	out := NewJournal()
	for i, e := range j.entries {
		k, ok := s.kinds[e.Kind]
		if !ok {
			return nil, fmt.Errorf("objstore: entry %d has unknown kind %q", i, e.Kind)
		}
		payload := e.Payload
		if k.Discharge != nil {
			p, err := k.Discharge(payload)
			if err != nil {
				return nil, fmt.Errorf("objstore: discharging %s entry %d: %w", e.Kind, i, err)
			}
			payload = p
		}
		out.Append(e.Kind, payload)
	}
	return out, nil
}

type journalFile struct {
	Format  string  `yaml:"format"`
	Entries []Entry `yaml:"entries"`
}

// Save writes the journal to path in the current format version.
func Save(j *Journal, path string) error {
	data, err := yaml.Marshal(journalFile{Format: FormatVersion, Entries: j.entries})
	if err != nil {
		return fmt.Errorf("objstore: encoding journal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("objstore: writing journal: %w", err)
	}
	return nil
}

// Open reads a journal from path, rejecting unsupported format versions.
func Open(path string) (*Journal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("objstore: reading journal: %w", err)
	}
	var f journalFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("objstore: decoding journal: %w", err)
	}
	v, err := semver.NewVersion(f.Format)
	if err != nil {
		return nil, fmt.Errorf("objstore: invalid format version %q: %w", f.Format, err)
	}
	if !supportedFormats.Check(v) {
		return nil, fmt.Errorf("objstore: unsupported journal format %s (supported: %s)", f.Format, supportedFormats)
	}
	return &Journal{entries: f.Entries}, nil
}
