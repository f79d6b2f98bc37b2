// SPDX-License-Identifier: EPL-2.0

// Package packet frames and parses the self-describing byte record carried
// over the acoustic channel: a magic tag, a base filename, an opaque
// payload, and a trailing CRC32 over everything that precedes it.
package packet

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
)

// Magic identifies a frame as belonging to this codec.
var Magic = [4]byte{'A', 'E', 'D', 'C'}

// MinSize is the smallest a valid frame can be: magic(4) + name_len(1) +
// name(1) + data_len(4) + data(0) + crc(4).
const MinSize = 4 + 1 + 1 + 4 + 0 + 4

var (
	// ErrTooShort is returned when a buffer is shorter than MinSize.
	ErrTooShort = errors.New("packet: buffer shorter than minimum frame size")
	// ErrBadMagic is returned when the magic tag does not match.
	ErrBadMagic = errors.New("packet: bad magic")
	// ErrBufferOverrun is returned when name_len or data_len would read
	// past the end of the buffer.
	ErrBufferOverrun = errors.New("packet: name_len/data_len overflow buffer")
	// ErrEmptyName is returned when framing is asked to use an empty name.
	ErrEmptyName = errors.New("packet: name must be 1..255 bytes")
)

// Frame is a parsed packet: the base filename, its payload, and whether
// the trailing CRC32 matched on parse (always true for freshly framed
// packets).
type Frame struct {
	Name    string
	Payload []byte
	CRCOK   bool
}

// CRC32 computes the IEEE 802.3 CRC32 of data, matching the reflected
// polynomial 0xEDB88320, init 0xFFFFFFFF, final XOR 0xFFFFFFFF contract
// spec'd for this codec. hash/crc32.ChecksumIEEE already implements
// exactly that variant.
func CRC32(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// Pack serializes a filename and payload into the wire layout:
// magic | name_len | name | data_len | payload | crc32.
//
// name is truncated to its base form by the caller; Pack only enforces
// the 1..255 length bound described in the data model.
func Pack(name string, payload []byte) ([]byte, error) {
	if len(name) == 0 || len(name) > 255 {
		return nil, ErrEmptyName
	}

	buf := make([]byte, 0, MinSize+len(name)+len(payload))
	buf = append(buf, Magic[:]...)
	buf = append(buf, byte(len(name)))
	buf = append(buf, name...)

	var dataLen [4]byte
	binary.LittleEndian.PutUint32(dataLen[:], uint32(len(payload)))
	buf = append(buf, dataLen[:]...)
	buf = append(buf, payload...)

	crc := CRC32(buf)
	var crcBuf [4]byte
	binary.LittleEndian.PutUint32(crcBuf[:], crc)
	buf = append(buf, crcBuf[:]...)

	return buf, nil
}

// Unpack parses a frame. Hard failures (buffer too short, bad magic, a
// length field that would overrun the buffer) return an error and no
// frame. A CRC32 mismatch is not a hard failure: the payload is still
// returned with CRCOK set to false, so a caller can persist
// possibly-corrupt data for forensic inspection, per this codec's
// maximize-recovery policy.
func Unpack(buf []byte) (Frame, error) {
	if len(buf) < MinSize {
		return Frame{}, ErrTooShort
	}
	if [4]byte(buf[0:4]) != Magic {
		return Frame{}, ErrBadMagic
	}

	nameLen := int(buf[4])
	nameStart := 5
	nameEnd := nameStart + nameLen
	if nameEnd+4 > len(buf) {
		return Frame{}, ErrBufferOverrun
	}

	dataLen := int(binary.LittleEndian.Uint32(buf[nameEnd : nameEnd+4]))
	dataStart := nameEnd + 4
	dataEnd := dataStart + dataLen
	if dataEnd+4 > len(buf) {
		return Frame{}, ErrBufferOverrun
	}

	name := string(buf[nameStart:nameEnd])
	payload := make([]byte, dataLen)
	copy(payload, buf[dataStart:dataEnd])

	wantCRC := binary.LittleEndian.Uint32(buf[dataEnd : dataEnd+4])
	gotCRC := CRC32(buf[:dataEnd])

	return Frame{Name: name, Payload: payload, CRCOK: gotCRC == wantCRC}, nil
}
