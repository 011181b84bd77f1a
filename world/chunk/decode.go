package chunk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/df-mc/worldupgrader/blockupgrader"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// blockStateVersion is the version tag written with every palette entry. It
// allows persisted block states to be upgraded when the format of a state
// changes between releases.
const blockStateVersion int32 = 17959425

// DecodeSubChunk decodes a Section from the disk representation produced by
// EncodeSubChunk. Palette entries are upgraded to their current versions
// before they are resolved against the block registry. An error is returned
// for malformed data or palette entries that no longer resolve to a
// registered block.
func DecodeSubChunk(data []byte, air uint32) (*Section, error) {
	buf := bytes.NewBuffer(data)
	ver, err := buf.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("decode sub chunk: read version: %w", err)
	}
	if ver != SubChunkVersion {
		return nil, fmt.Errorf("decode sub chunk: unsupported version %v", ver)
	}
	bits, err := buf.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("decode sub chunk: read bits per index: %w", err)
	}

	var wordCount uint32
	if err := binary.Read(buf, binary.LittleEndian, &wordCount); err != nil {
		return nil, fmt.Errorf("decode sub chunk: read word count: %w", err)
	}
	words := make([]uint32, wordCount)
	if err := binary.Read(buf, binary.LittleEndian, words); err != nil {
		return nil, fmt.Errorf("decode sub chunk: read words: %w", err)
	}

	var paletteLen uint16
	if err := binary.Read(buf, binary.LittleEndian, &paletteLen); err != nil {
		return nil, fmt.Errorf("decode sub chunk: read palette size: %w", err)
	}
	if paletteLen == 0 {
		return nil, fmt.Errorf("decode sub chunk: palette is empty")
	}

	dec := nbt.NewDecoderWithEncoding(buf, nbt.LittleEndian)
	values := make([]uint32, paletteLen)
	for i := range values {
		var s blockState
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("decode sub chunk: read palette entry %v: %w", i, err)
		}
		upgraded := blockupgrader.Upgrade(blockupgrader.BlockState{
			Name:       s.Name,
			Properties: s.Properties,
			Version:    s.Version,
		})
		rid, found := StateToRuntimeID(upgraded.Name, upgraded.Properties)
		if !found {
			return nil, fmt.Errorf("decode sub chunk: %v is not a registered block state", upgraded.Name)
		}
		values[i] = rid
	}

	sub := &Section{air: air, storage: newPalettedStorageFromData(uint16(bits), words, &Palette{values: values})}
	if _, err := io.ReadFull(buf, sub.blockLight[:]); err != nil {
		return nil, fmt.Errorf("decode sub chunk: read block light: %w", err)
	}
	if _, err := io.ReadFull(buf, sub.skyLight[:]); err != nil {
		return nil, fmt.Errorf("decode sub chunk: read sky light: %w", err)
	}
	if err := binary.Read(buf, binary.LittleEndian, sub.biomes[:]); err != nil {
		return nil, fmt.Errorf("decode sub chunk: read biomes: %w", err)
	}
	if err := binary.Read(buf, binary.LittleEndian, &sub.count); err != nil {
		return nil, fmt.Errorf("decode sub chunk: read block count: %w", err)
	}
	return sub, nil
}
