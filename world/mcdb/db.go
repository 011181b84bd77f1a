// Package mcdb implements a world provider backed by a LevelDB database.
// Columns are stored per section, with palettes serialised as little-endian
// NBT, and are checksummed so that unchanged columns are not rewritten and
// corrupted data is detected on load.
package mcdb

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"
	"github.com/dm-vev/worldslice/cube"
	"github.com/dm-vev/worldslice/world"
	"github.com/dm-vev/worldslice/world/chunk"
	"github.com/google/uuid"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// tag bytes appended to the 8-byte column index to form database keys.
const (
	keyMeta          byte = 0x00
	keySubChunk      byte = 0x01
	keyBlockEntities byte = 0x02
	keyChecksum      byte = 0x03
)

// keySettings is the database key under which world settings are stored.
var keySettings = []byte("settings")

// Config holds the optional parameters of a DB.
type Config struct {
	// Log is the Logger that errors and debug messages are written to. If
	// nil, Log is set to slog.Default().
	Log *slog.Logger
}

// DB implements a world provider for the LevelDB world format.
type DB struct {
	conf Config
	ldb  *leveldb.DB
	dir  string
}

// Open creates a new provider reading and writing from/to files under the
// path passed, creating the directory if it does not yet exist.
func (conf Config) Open(dir string) (*DB, error) {
	if conf.Log == nil {
		conf.Log = slog.Default()
	}
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, fmt.Errorf("open db: create directory: %w", err)
	}
	ldb, err := leveldb.OpenFile(filepath.Join(dir, "db"), &opt.Options{
		Compression: opt.FlateCompression,
		BlockSize:   16 * opt.KiB,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: leveldb: %w", err)
	}
	return &DB{conf: conf, ldb: ldb, dir: dir}, nil
}

// Open creates a DB with a default Config. See Config.Open.
func Open(dir string) (*DB, error) {
	var conf Config
	return conf.Open(dir)
}

// settingsData is the on-disk representation of world.Settings.
type settingsData struct {
	Name        string `nbt:"name"`
	ID          string `nbt:"id"`
	CurrentTick int64  `nbt:"tick"`
}

// Settings loads the settings stored in the DB into the Settings passed.
func (db *DB) Settings(s *world.Settings) {
	data, err := db.ldb.Get(keySettings, nil)
	if err != nil {
		// A missing settings key means the world is new.
		return
	}
	var d settingsData
	if err := nbt.UnmarshalEncoding(data, &d, nbt.LittleEndian); err != nil {
		db.conf.Log.Error("load settings: decode: " + err.Error())
		return
	}
	s.Lock()
	defer s.Unlock()
	s.Name = d.Name
	s.CurrentTick = d.CurrentTick
	if id, err := uuid.Parse(d.ID); err == nil {
		s.ID = id
	}
}

// SaveSettings saves the Settings passed to the DB.
func (db *DB) SaveSettings(s *world.Settings) {
	s.Lock()
	d := settingsData{Name: s.Name, ID: s.ID.String(), CurrentTick: s.CurrentTick}
	s.Unlock()

	data, err := nbt.MarshalEncoding(d, nbt.LittleEndian)
	if err != nil {
		db.conf.Log.Error("save settings: encode: " + err.Error())
		return
	}
	if err := db.ldb.Put(keySettings, data, nil); err != nil {
		db.conf.Log.Error("save settings: leveldb: " + err.Error())
	}
}

// columnMeta is the on-disk metadata of a column.
type columnMeta struct {
	// SectionCount is the length of the section slice of the column,
	// including nil entries.
	SectionCount uint8
}

// LoadColumn reads a column from the DB at the position passed. If no
// column is stored there, an error wrapping leveldb.ErrNotFound is returned.
func (db *DB) LoadColumn(pos world.ChunkPos) (*chunk.Column, error) {
	meta, err := db.ldb.Get(db.index(pos, keyMeta), nil)
	if err != nil {
		return nil, fmt.Errorf("load column %v: %w", pos, err)
	}
	if len(meta) != 1 {
		return nil, fmt.Errorf("load column %v: malformed metadata", pos)
	}

	col := &chunk.Column{Sections: make([]*chunk.Section, meta[0])}
	h := xxhash.New()
	for i := range col.Sections {
		data, err := db.ldb.Get(db.subChunkKey(pos, uint8(i)), nil)
		if err == leveldb.ErrNotFound {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("load column %v: section %v: %w", pos, i, err)
		}
		sub, err := chunk.DecodeSubChunk(data, world.AirRuntimeID())
		if err != nil {
			return nil, fmt.Errorf("load column %v: section %v: %w", pos, i, err)
		}
		col.Sections[i] = sub
		_, _ = h.Write(data)
	}
	db.verifyChecksum(pos, h.Sum64())

	if err := db.loadBlockEntities(pos, col); err != nil {
		return nil, err
	}
	return col, nil
}

// StoreColumn writes a column to the DB at the position passed. Column data
// whose checksum matches the stored one is not rewritten.
func (db *DB) StoreColumn(pos world.ChunkPos, col *chunk.Column) error {
	payloads := make([][]byte, len(col.Sections))
	h := xxhash.New()
	for i, sub := range col.Sections {
		if sub == nil {
			continue
		}
		payloads[i] = chunk.EncodeSubChunk(sub)
		_, _ = h.Write(payloads[i])
	}
	sum := h.Sum64()

	if stored, err := db.ldb.Get(db.index(pos, keyChecksum), nil); err == nil && len(stored) == 8 && binary.LittleEndian.Uint64(stored) == sum {
		// Sections unchanged since the last save: only block entities may
		// differ.
		return db.storeBlockEntities(pos, col)
	}

	batch := leveldb.MakeBatch(len(payloads) + 2)
	batch.Put(db.index(pos, keyMeta), []byte{uint8(len(col.Sections))})
	for i, payload := range payloads {
		if payload == nil {
			batch.Delete(db.subChunkKey(pos, uint8(i)))
			continue
		}
		batch.Put(db.subChunkKey(pos, uint8(i)), payload)
	}
	checksum := make([]byte, 8)
	binary.LittleEndian.PutUint64(checksum, sum)
	batch.Put(db.index(pos, keyChecksum), checksum)

	if err := db.ldb.Write(batch, nil); err != nil {
		return fmt.Errorf("store column %v: %w", pos, err)
	}
	return db.storeBlockEntities(pos, col)
}

// Close closes the underlying LevelDB database.
func (db *DB) Close() error {
	return db.ldb.Close()
}

// blockEntitiesData is the on-disk representation of the block entities of a
// column.
type blockEntitiesData struct {
	BlockEntities []blockEntityData `nbt:"entities"`
}

type blockEntityData struct {
	X    int32          `nbt:"x"`
	Y    int32          `nbt:"y"`
	Z    int32          `nbt:"z"`
	Data map[string]any `nbt:"data"`
}

// loadBlockEntities reads the block entities of a column from the DB into
// the Column passed.
func (db *DB) loadBlockEntities(pos world.ChunkPos, col *chunk.Column) error {
	data, err := db.ldb.Get(db.index(pos, keyBlockEntities), nil)
	if err == leveldb.ErrNotFound {
		return nil
	} else if err != nil {
		return fmt.Errorf("load column %v: block entities: %w", pos, err)
	}
	var d blockEntitiesData
	if err := nbt.UnmarshalEncoding(data, &d, nbt.LittleEndian); err != nil {
		return fmt.Errorf("load column %v: block entities: decode: %w", pos, err)
	}
	for _, be := range d.BlockEntities {
		col.BlockEntities = append(col.BlockEntities, chunk.BlockEntity{
			Pos:  cube.Pos{int(be.X), int(be.Y), int(be.Z)},
			Data: be.Data,
		})
	}
	return nil
}

// storeBlockEntities writes the block entities of the Column passed to the
// DB.
func (db *DB) storeBlockEntities(pos world.ChunkPos, col *chunk.Column) error {
	if len(col.BlockEntities) == 0 {
		if err := db.ldb.Delete(db.index(pos, keyBlockEntities), nil); err != nil {
			return fmt.Errorf("store column %v: block entities: %w", pos, err)
		}
		return nil
	}
	d := blockEntitiesData{BlockEntities: make([]blockEntityData, 0, len(col.BlockEntities))}
	for _, be := range col.BlockEntities {
		d.BlockEntities = append(d.BlockEntities, blockEntityData{
			X: int32(be.Pos[0]), Y: int32(be.Pos[1]), Z: int32(be.Pos[2]),
			Data: be.Data,
		})
	}
	data, err := nbt.MarshalEncoding(d, nbt.LittleEndian)
	if err != nil {
		return fmt.Errorf("store column %v: block entities: encode: %w", pos, err)
	}
	if err := db.ldb.Put(db.index(pos, keyBlockEntities), data, nil); err != nil {
		return fmt.Errorf("store column %v: block entities: %w", pos, err)
	}
	return nil
}

// verifyChecksum compares the stored checksum of a column against the hash
// of the section data read, logging a warning on mismatch. A mismatch means
// the database was modified outside this module or corrupted.
func (db *DB) verifyChecksum(pos world.ChunkPos, sum uint64) {
	stored, err := db.ldb.Get(db.index(pos, keyChecksum), nil)
	if err != nil || len(stored) != 8 {
		return
	}
	if binary.LittleEndian.Uint64(stored) != sum {
		db.conf.Log.Warn("Column checksum mismatch.", "X", pos[0], "Z", pos[1])
	}
}

// index returns a 9-byte key prefix for a column position and tag byte.
func (db *DB) index(pos world.ChunkPos, tag byte) []byte {
	b := make([]byte, 9)
	binary.LittleEndian.PutUint32(b, uint32(pos[0]))
	binary.LittleEndian.PutUint32(b[4:], uint32(pos[1]))
	b[8] = tag
	return b
}

// subChunkKey returns the database key of one section of a column.
func (db *DB) subChunkKey(pos world.ChunkPos, i uint8) []byte {
	return append(db.index(pos, keySubChunk), i)
}
