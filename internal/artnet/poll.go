package artnet

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// PollLength is the size of an encoded ArtPoll in the form this package sends.
const PollLength = 14

// PollFlags is the ArtPoll "Flags" (TalkToMe) byte.
type PollFlags uint8

// ArtPoll flag bits
const (
	PollFlagReplyOnChange PollFlags = 1 << 1 // Send ArtPollReply when node conditions change
	PollFlagDiagnostics   PollFlags = 1 << 2 // Send diagnostics messages
	PollFlagDiagUnicast   PollFlags = 1 << 3 // Diagnostics are unicast rather than broadcast
	PollFlagDisableVLC    PollFlags = 1 << 4 // Disable VLC transmission
	PollFlagTargeted      PollFlags = 1 << 5 // Targeted mode (port range fields are used)
)

// DefaultPollFlags is the fixed flag byte sent with every poll (0b00000100).
const DefaultPollFlags = PollFlagDiagnostics

// Field offsets within an encoded poll
//
//	[0-7]   "Art-Net\0"  ID
//	[8-9]   0x2000       OpCode (little-endian)
//	[10-11] 14           ProtVer (big-endian)
//	[12]    0x04         Flags
//	[13]    priority     DiagPriority
const (
	offsetID       = 0
	offsetOpCode   = 8
	offsetVersion  = 10
	offsetFlags    = 12
	offsetPriority = 13
)

// Poll is an ArtPoll datagram. The extended fields (target port range,
// ESTA manufacturer, OEM code) are not encoded.
type Poll struct {
	Flags    PollFlags
	Priority Priority
}

// NewPoll returns a poll with the default flags and the given priority
func NewPoll(priority Priority) Poll {
	return Poll{Flags: DefaultPollFlags, Priority: priority}
}

// BuildPoll encodes an ArtPoll with the default flags and the given
// diagnostics priority. The output is always PollLength bytes.
func BuildPoll(priority Priority) [PollLength]byte {
	return NewPoll(priority).encode()
}

func (p Poll) encode() [PollLength]byte {
	var buf [PollLength]byte
	copy(buf[offsetID:offsetOpCode], ID[:])
	binary.LittleEndian.PutUint16(buf[offsetOpCode:offsetVersion], uint16(OpPoll))
	binary.BigEndian.PutUint16(buf[offsetVersion:offsetFlags], ProtocolVersion)
	buf[offsetFlags] = byte(p.Flags)
	buf[offsetPriority] = byte(p.Priority)
	return buf
}

// MarshalBinary implements encoding.BinaryMarshaler
func (p Poll) MarshalBinary() ([]byte, error) {
	return p.AppendBinary(make([]byte, 0, PollLength))
}

// AppendBinary appends the encoded poll to b
func (p Poll) AppendBinary(b []byte) ([]byte, error) {
	buf := p.encode()
	return append(b, buf[:]...), nil
}

// ValidatePoll checks that data is a well-formed ArtPoll as encoded by
// this package.
//
// Validation checks:
//   - Exact length (14 bytes)
//   - Art-Net ID signature
//   - OpCode is OpPoll
//   - Protocol version is 14
//   - Priority is a defined priority code
func ValidatePoll(data []byte) error {
	if len(data) != PollLength {
		return fmt.Errorf("poll length %d bytes (expected %d)", len(data), PollLength)
	}
	if !bytes.Equal(data[offsetID:offsetOpCode], ID[:]) {
		return fmt.Errorf("invalid Art-Net ID: %q", data[offsetID:offsetOpCode])
	}
	if op := OpCode(binary.LittleEndian.Uint16(data[offsetOpCode:offsetVersion])); op != OpPoll {
		return fmt.Errorf("unexpected opcode %s (expected %s)", op, OpPoll)
	}
	if v := binary.BigEndian.Uint16(data[offsetVersion:offsetFlags]); v != ProtocolVersion {
		return fmt.Errorf("unexpected protocol version %d (expected %d)", v, ProtocolVersion)
	}
	if p := Priority(data[offsetPriority]); !p.Valid() {
		return fmt.Errorf("invalid diagnostics priority 0x%02x", uint8(p))
	}
	return nil
}

// DescribePoll renders an annotated, field-by-field dump of an encoded poll.
// Fields past the end of data are omitted.
func DescribePoll(data []byte) string {
	var b strings.Builder

	field := func(start, end int, name, value string) {
		if len(data) < end {
			return
		}
		hexBytes := fmt.Sprintf("% x", data[start:end])
		fmt.Fprintf(&b, "[%2d-%2d] %-23s  %-9s %s\n", start, end-1, hexBytes, name, value)
	}

	field(offsetID, offsetOpCode, "ID", fmt.Sprintf("%q", data[offsetID:min(len(data), offsetOpCode)]))
	if len(data) >= offsetVersion {
		op := OpCode(binary.LittleEndian.Uint16(data[offsetOpCode:offsetVersion]))
		field(offsetOpCode, offsetVersion, "OpCode", fmt.Sprintf("%s (LE)", op))
	}
	if len(data) >= offsetFlags {
		field(offsetVersion, offsetFlags, "ProtVer", fmt.Sprintf("%d (BE)", binary.BigEndian.Uint16(data[offsetVersion:offsetFlags])))
	}
	if len(data) > offsetFlags {
		field(offsetFlags, offsetFlags+1, "Flags", fmt.Sprintf("0b%08b", data[offsetFlags]))
	}
	if len(data) > offsetPriority {
		field(offsetPriority, offsetPriority+1, "Priority", Priority(data[offsetPriority]).String())
	}
	if len(data) > PollLength {
		fmt.Fprintf(&b, "[%2d-  ] %d trailing byte(s)\n", PollLength, len(data)-PollLength)
	}

	return b.String()
}
