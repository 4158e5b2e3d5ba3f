package bytecode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when the unit file format changes.
const unitFileSchemaVersion uint16 = 1

// UnitFileExt is the extension of serialized unit files.
const UnitFileExt = ".lgu"

// ErrSchemaMismatch is returned when a unit file was written with a different
// schema version.
var ErrSchemaMismatch = errors.New("unit file schema mismatch")

type unitFilePayload struct {
	Schema uint16
	Unit   Unit
}

// WriteUnitFile serializes a unit to path atomically (temp file + rename).
func WriteUnitFile(path string, u *Unit) error {
	if u == nil {
		return fmt.Errorf("%s: nil unit", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", err)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(unitFilePayload{Schema: unitFileSchemaVersion, Unit: *u}); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: failed to encode unit: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ReadUnitFile deserializes a unit from path.
func ReadUnitFile(path string) (u *Unit, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	var payload unitFilePayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: failed to decode unit: %w", path, err)
	}
	if payload.Schema != unitFileSchemaVersion {
		return nil, fmt.Errorf("%s: schema %d (want %d): %w",
			path, payload.Schema, unitFileSchemaVersion, ErrSchemaMismatch)
	}
	return &payload.Unit, nil
}
