package sig

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
	"gopkg.in/yaml.v3"
)

// Snapshot renders sg's full declared state into a SnapshotRecord,
// tagging it with a fresh UUID so a later loader can tell which
// generation of the signature it is restoring.
func (s *Signature) Snapshot() (*SnapshotRecord, error) {
	rec := &SnapshotRecord{SnapshotID: uuid.NewString()}
	for _, sym := range s.Symbols() {
		symRec, err := encodeSymbol(sym)
		if err != nil {
			return nil, err
		}
		rec.Symbols = append(rec.Symbols, symRec)
	}
	return rec, nil
}

// Restore replaces nothing; it loads rec into a fresh Signature,
// canonicalizing every symbol's handle in a first pass (so
// self-referential and mutually recursive rules resolve) before
// filling in types and rules in a second pass.
func Restore(rec *SnapshotRecord) (*Signature, error) {
	sg := NewSignature()
	for _, symRec := range rec.Symbols {
		sg.Declare(symRec.Path, symRec.Name, symRec.IsConstant)
	}
	for _, symRec := range rec.Symbols {
		sym, ok := sg.Lookup(symRec.Path, symRec.Name)
		if !ok {
			return nil, fmt.Errorf("sig: internal error, symbol %s vanished between passes", symRec.Name)
		}
		if err := decodeSymbol(symRec, sym, sg); err != nil {
			return nil, err
		}
	}
	return sg, nil
}

// ExportYAML marshals a fresh snapshot of sg to YAML.
func (s *Signature) ExportYAML() ([]byte, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(snap)
}

// ImportYAML loads a signature from a YAML document previously
// produced by ExportYAML.
func ImportYAML(data []byte) (*Signature, error) {
	var snap SnapshotRecord
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("sig: parsing YAML snapshot: %w", err)
	}
	return Restore(&snap)
}

// WriteYAMLFile exports sg and writes it to path.
func (s *Signature) WriteYAMLFile(path string) error {
	data, err := s.ExportYAML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadYAMLFile loads a signature previously written by WriteYAMLFile.
func ReadYAMLFile(path string) (*Signature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ImportYAML(data)
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         TEXT PRIMARY KEY,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE TABLE IF NOT EXISTS symbols (
	snapshot_id TEXT NOT NULL REFERENCES snapshots(id),
	ordinal     INTEGER NOT NULL,
	path        TEXT NOT NULL,
	name        TEXT NOT NULL,
	is_constant INTEGER NOT NULL,
	type_yaml   TEXT,
	rules_yaml  TEXT,
	PRIMARY KEY (snapshot_id, ordinal)
);
`

// Store is a modernc.org/sqlite-backed signature database opened over
// a single file. Each call to SaveSnapshot appends a new, UUID-tagged
// generation; LatestSnapshotID names the most recently saved one and
// LoadSnapshot restores a generation by its ID.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if necessary) a sqlite database at path
// and ensures its schema exists.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sig: opening sqlite database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("sig: initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the store's underlying database connection.
func (st *Store) Close() error { return st.db.Close() }

// SaveSnapshot persists a fresh snapshot of sg, encoding each symbol's
// type and rule list as a YAML fragment (the teacher's own choice of
// serialization format for structured builtin values, reused here for
// a single symbol record rather than the whole document).
func (st *Store) SaveSnapshot(sg *Signature) (string, error) {
	snap, err := sg.Snapshot()
	if err != nil {
		return "", err
	}
	tx, err := st.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO snapshots (id) VALUES (?)`, snap.SnapshotID); err != nil {
		return "", fmt.Errorf("sig: inserting snapshot row: %w", err)
	}
	for i, symRec := range snap.Symbols {
		var typeYAML []byte
		if symRec.Type != nil {
			typeYAML, err = yaml.Marshal(symRec.Type)
			if err != nil {
				return "", err
			}
		}
		rulesYAML, err := yaml.Marshal(symRec.Rules)
		if err != nil {
			return "", err
		}
		_, err = tx.Exec(
			`INSERT INTO symbols (snapshot_id, ordinal, path, name, is_constant, type_yaml, rules_yaml) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			snap.SnapshotID, i, pathKey(symRec.Path), symRec.Name, boolToInt(symRec.IsConstant), string(typeYAML), string(rulesYAML),
		)
		if err != nil {
			return "", fmt.Errorf("sig: inserting symbol row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return snap.SnapshotID, nil
}

// LoadSnapshot restores the signature persisted under snapshotID.
func (st *Store) LoadSnapshot(snapshotID string) (*Signature, error) {
	rows, err := st.db.Query(
		`SELECT path, name, is_constant, type_yaml, rules_yaml FROM symbols WHERE snapshot_id = ? ORDER BY ordinal`,
		snapshotID,
	)
	if err != nil {
		return nil, fmt.Errorf("sig: querying symbols: %w", err)
	}
	defer rows.Close()

	snap := &SnapshotRecord{SnapshotID: snapshotID}
	for rows.Next() {
		var pathJoined, name, typeYAML, rulesYAML string
		var isConstant int
		if err := rows.Scan(&pathJoined, &name, &isConstant, &typeYAML, &rulesYAML); err != nil {
			return nil, fmt.Errorf("sig: scanning symbol row: %w", err)
		}
		symRec := &SymbolRecord{Path: splitPathKey(pathJoined), Name: name, IsConstant: isConstant != 0}
		if typeYAML != "" {
			symRec.Type = &TermRecord{}
			if err := yaml.Unmarshal([]byte(typeYAML), symRec.Type); err != nil {
				return nil, fmt.Errorf("sig: parsing symbol %s's type: %w", name, err)
			}
		}
		if rulesYAML != "" {
			if err := yaml.Unmarshal([]byte(rulesYAML), &symRec.Rules); err != nil {
				return nil, fmt.Errorf("sig: parsing symbol %s's rules: %w", name, err)
			}
		}
		snap.Symbols = append(snap.Symbols, symRec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return Restore(snap)
}

// LatestSnapshotID returns the most recently inserted snapshot id, or
// an error if the store holds none.
func (st *Store) LatestSnapshotID() (string, error) {
	var id string
	err := st.db.QueryRow(`SELECT id FROM snapshots ORDER BY created_at DESC, rowid DESC LIMIT 1`).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("sig: no snapshot found: %w", err)
	}
	return id, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func pathKey(path []string) string {
	return strings.Join(path, "/")
}

func splitPathKey(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "/")
}
