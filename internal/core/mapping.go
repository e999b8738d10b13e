package core

// RenameRecord describes one renamed entry.
type RenameRecord struct {
	OldName string `json:"old_name" yaml:"old_name"`
	NewName string `json:"new_name" yaml:"new_name"`
	// Dir is the slash-separated parent path relative to the working tree root,
	// as it was when the entry was renamed.
	Dir   string `json:"dir" yaml:"dir"`
	IsDir bool   `json:"is_dir" yaml:"is_dir"`
}

// Mapping is the ordered old-name to new-name table of one archive run.
// Files and directories share one namespace keyed by the old base name.
type Mapping struct {
	records []RenameRecord
	index   map[string]int
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// Add records a rename. A record with the same old name is replaced in place,
// so the later write wins and keeps the original position.
func (m *Mapping) Add(rec RenameRecord) {
	if i, ok := m.index[rec.OldName]; ok {
		m.records[i] = rec
		return
	}
	m.index[rec.OldName] = len(m.records)
	m.records = append(m.records, rec)
}

// Merge adds every record of other, in order.
func (m *Mapping) Merge(other *Mapping) {
	if other == nil {
		return
	}
	for _, rec := range other.records {
		m.Add(rec)
	}
}

// Lookup returns the new name recorded for old.
func (m *Mapping) Lookup(old string) (string, bool) {
	i, ok := m.index[old]
	if !ok {
		return "", false
	}
	return m.records[i].NewName, true
}

// Len returns the number of distinct old names.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.records)
}

// Records returns a copy of the records in insertion order.
func (m *Mapping) Records() []RenameRecord {
	if m == nil {
		return nil
	}
	out := make([]RenameRecord, len(m.records))
	copy(out, m.records)
	return out
}
