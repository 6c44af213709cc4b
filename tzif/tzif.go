// Package tzif reads the TZif file format according to RFC8536.
// https://datatracker.ietf.org/doc/html/rfc8536
//
// Only the pieces the conversion engine needs are materialized: the
// version and the footer TZ string, which carries the zone's ongoing
// rules in the same language tzstr parses. The historical transition
// tables in the data blocks are skipped over.
package tzif

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// NOTE: All multi-octet integer values MUST be stored in network octet
// order format (high-order octet first, otherwise known as big-endian),
// with all bits significant.  Signed integer values MUST be represented
// using two's complement.
var order = binary.BigEndian

// Version represents the version of a TZif file.
// In V1, time values are 32bit (four-octets) and in V2 upwards time
// values are 64bit (eight-octets). V1 files carry no footer.
type Version byte

func (v Version) String() string {
	switch v {
	case V1:
		return "V1 (0x00)"
	case V2:
		return "V2 (0x32)"
	case V3:
		return "V3 (0x33)"
	case V4:
		return "V4 (0x34)"
	default:
		return fmt.Sprintf("<undefined version (%d)>", v)
	}
}

const (
	// V1 represents a version 1 TZif file. It contains only the version 1
	// header and data block and MUST NOT contain a footer.
	V1 Version = 0x00
	// V2 represents a version 2 TZif file. It contains the version 1
	// header and data block, a version 2+ header and data block, and a
	// footer whose TZ string, if nonempty, adheres to the POSIX TZ
	// environment variable format.
	V2 Version = 0x32
	// V3 represents a version 3 TZif file. Like V2, except the footer TZ
	// string MAY use the extensions described in Section 3.3.1 of RFC8536.
	V3 Version = 0x33
	// V4 represents a version 4 TZif file. It is not specified in RFC8536
	// but in the tzfile(5) man page; the differences to V3 concern leap
	// second records only.
	V4 Version = 0x34
)

// Magic is the four-octet ASCII sequence "TZif" (0x54 0x5A 0x69 0x66),
// which identifies the file as utilizing the Time Zone Information Format.
var Magic = [4]byte{'T', 'Z', 'i', 'f'}

// File is the decoded shape of a TZif file.
type File struct {
	Version Version

	// TZString is the footer TZ string describing how instants after the
	// last recorded transition behave. Empty for V1 files and for files
	// with an empty footer.
	TZString string
}

// header mirrors the six-count TZif header that precedes each data
// block.
type header struct {
	Version  Version
	Reserved [15]byte

	// Isutcnt and Isstdcnt MUST each be zero or equal to Typecnt.
	Isutcnt  uint32
	Isstdcnt uint32
	Leapcnt  uint32
	Timecnt  uint32
	Typecnt  uint32
	Charcnt  uint32
}

// dataBlockSize is the octet length of the data block this header
// announces. timeSize is 4 for version 1 blocks and 8 for version 2+.
func (h header) dataBlockSize(timeSize int64) int64 {
	return int64(h.Timecnt)*(timeSize+1) +
		int64(h.Typecnt)*6 +
		int64(h.Charcnt) +
		int64(h.Leapcnt)*(timeSize+4) +
		int64(h.Isstdcnt) +
		int64(h.Isutcnt)
}

func (h header) validate() error {
	if h.Isutcnt != 0 && h.Isutcnt != h.Typecnt {
		return fmt.Errorf("invalid isutcnt (%d): must be 0 or equal to typecnt (%d)", h.Isutcnt, h.Typecnt)
	}
	if h.Isstdcnt != 0 && h.Isstdcnt != h.Typecnt {
		return fmt.Errorf("invalid isstdcnt (%d): must be 0 or equal to typecnt (%d)", h.Isstdcnt, h.Typecnt)
	}
	return nil
}

// Decode reads a TZif stream up to and including the footer. The data
// blocks are validated against their headers only as far as skipping
// them requires.
func Decode(r io.Reader) (File, error) {
	br := bufio.NewReader(r)

	var f File
	h1, err := readHeader(br)
	if err != nil {
		return f, fmt.Errorf("read v1 header: %w", err)
	}
	f.Version = h1.Version
	if err := skipDataBlock(br, h1, 4); err != nil {
		return f, fmt.Errorf("skip v1 data block: %w", err)
	}
	if f.Version == V1 {
		return f, nil
	}

	h2, err := readHeader(br)
	if err != nil {
		return f, fmt.Errorf("read v2 header: %w", err)
	}
	if h2.Version != h1.Version {
		return f, fmt.Errorf("inconsistent version: v1 header = %v, v2 header = %v", h1.Version, h2.Version)
	}
	if err := skipDataBlock(br, h2, 8); err != nil {
		return f, fmt.Errorf("skip v2 data block: %w", err)
	}

	f.TZString, err = readFooter(br)
	if err != nil {
		return f, fmt.Errorf("read footer: %w", err)
	}
	return f, nil
}

func readHeader(r io.Reader) (header, error) {
	var h header
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return h, fmt.Errorf("reading magic: %w", err)
	}
	if !bytes.Equal(magic, Magic[:]) {
		return h, fmt.Errorf("invalid magic: %v", magic)
	}
	if err := binary.Read(r, order, &h); err != nil {
		return h, err
	}
	switch h.Version {
	case V1, V2, V3, V4:
	default:
		return h, fmt.Errorf("unsupported version %v", h.Version)
	}
	return h, h.validate()
}

func skipDataBlock(r *bufio.Reader, h header, timeSize int64) error {
	n, err := io.CopyN(io.Discard, r, h.dataBlockSize(timeSize))
	if err != nil {
		return fmt.Errorf("after %d octets: %w", n, err)
	}
	return nil
}

// readFooter reads the NL-enclosed footer record. The TZ string between
// the newlines may be empty and MUST NOT contain a NUL octet.
func readFooter(r *bufio.Reader) (string, error) {
	lead, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	if lead != '\n' {
		return "", fmt.Errorf("footer does not start with NL: %q", lead)
	}
	s, err := r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("unterminated footer: %w", err)
	}
	s = s[:len(s)-1]
	if bytes.IndexByte([]byte(s), 0) >= 0 {
		return "", fmt.Errorf("footer contains NUL octet")
	}
	return s, nil
}
