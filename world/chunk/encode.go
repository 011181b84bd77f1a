package chunk

import (
	"bytes"
	"encoding/binary"

	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// SubChunkVersion is the current version of the serialised Section format
// written to disk.
const SubChunkVersion = 1

// blockState is the on-disk representation of a single palette entry.
type blockState struct {
	Name       string         `nbt:"name"`
	Properties map[string]any `nbt:"states"`
	Version    int32          `nbt:"version"`
}

// EncodeSubChunk encodes a Section to its disk representation: a version
// byte, the packed block storage with its palette as little-endian NBT, both
// light layers and the biome array.
func EncodeSubChunk(sub *Section) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, 8192))
	buf.WriteByte(SubChunkVersion)
	buf.WriteByte(byte(sub.storage.bitsPerIndex))

	_ = binary.Write(buf, binary.LittleEndian, uint32(len(sub.storage.words)))
	_ = binary.Write(buf, binary.LittleEndian, sub.storage.words)

	values := sub.storage.palette.Values()
	_ = binary.Write(buf, binary.LittleEndian, uint16(len(values)))

	enc := nbt.NewEncoderWithEncoding(buf, nbt.LittleEndian)
	for _, rid := range values {
		name, properties, found := RuntimeIDToState(rid)
		if !found {
			// Unknown runtime IDs cannot round-trip. Persist them as air so
			// the section still decodes.
			name, properties, _ = RuntimeIDToState(sub.air)
		}
		_ = enc.Encode(blockState{Name: name, Properties: properties, Version: blockStateVersion})
	}

	buf.Write(sub.blockLight[:])
	buf.Write(sub.skyLight[:])
	_ = binary.Write(buf, binary.LittleEndian, sub.biomes[:])
	_ = binary.Write(buf, binary.LittleEndian, sub.count)
	return buf.Bytes()
}
