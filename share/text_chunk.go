package share

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"sort"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// embedText splices one tEXt chunk per metadata entry into an encoded
// PNG, directly before the IEND chunk. Keys are written in sorted order
// so output is deterministic.
func embedText(data []byte, metadata map[string]string) ([]byte, error) {
	if len(metadata) == 0 {
		return data, nil
	}
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, fmt.Errorf("share: not a png")
	}
	iend := findIEND(data)
	if iend < 0 {
		return nil, fmt.Errorf("share: png missing IEND chunk")
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out bytes.Buffer
	out.Write(data[:iend])
	for _, k := range keys {
		if err := writeTextChunk(&out, k, metadata[k]); err != nil {
			return nil, err
		}
	}
	out.Write(data[iend:])
	return out.Bytes(), nil
}

// findIEND returns the offset of the IEND chunk's length field, or -1.
func findIEND(data []byte) int {
	// Walk the chunk list rather than searching for the byte string, so
	// pixel data containing "IEND" cannot fool us.
	off := len(pngSignature)
	for off+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[off : off+4]))
		typ := string(data[off+4 : off+8])
		if typ == "IEND" {
			return off
		}
		off += 8 + length + 4
	}
	return -1
}

// extractText walks the chunk list and collects tEXt payloads.
func extractText(data []byte) (map[string]string, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, fmt.Errorf("share: not a png")
	}
	meta := make(map[string]string)
	off := len(pngSignature)
	for off+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[off : off+4]))
		typ := string(data[off+4 : off+8])
		if off+8+length+4 > len(data) {
			return nil, fmt.Errorf("share: truncated %s chunk", typ)
		}
		if typ == "tEXt" {
			payload := data[off+8 : off+8+length]
			if i := bytes.IndexByte(payload, 0); i > 0 {
				meta[string(payload[:i])] = string(payload[i+1:])
			}
		}
		if typ == "IEND" {
			break
		}
		off += 8 + length + 4
	}
	return meta, nil
}

// writeTextChunk appends a tEXt chunk: length, type, keyword NUL text,
// CRC over type+payload.
func writeTextChunk(out *bytes.Buffer, key, value string) error {
	if key == "" || len(key) > 79 {
		return fmt.Errorf("share: metadata key %q must be 1-79 bytes", key)
	}
	payload := make([]byte, 0, len(key)+1+len(value))
	payload = append(payload, key...)
	payload = append(payload, 0)
	payload = append(payload, value...)

	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(payload)))
	out.Write(length[:])

	crc := crc32.NewIEEE()
	crc.Write([]byte("tEXt"))
	crc.Write(payload)

	out.WriteString("tEXt")
	out.Write(payload)

	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	out.Write(sum[:])
	return nil
}
