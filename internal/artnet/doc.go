// Package artnet encodes the Art-Net discovery datagram (ArtPoll).
//
// Art-Net controllers locate nodes by broadcasting an ArtPoll on UDP port
// 6454. This package only builds that one packet; it does not parse
// ArtPollReply or any other opcode.
//
// # Wire Format
//
// The poll is a fixed 14-byte datagram:
//
//	Offset  Size  Field      Encoding
//	0       8     ID         "Art-Net\0"
//	8       2     OpCode     little-endian, OpPoll = 0x2000
//	10      2     ProtVer    big-endian, 14
//	12      1     Flags      0b00000100
//	13      1     Priority   DpLow .. DpVolatile
//
// Note the mixed endianness: the opcode is little-endian while the protocol
// version is big-endian.
//
// # Broadcast Targets
//
// Two well-known destinations are defined, PrimaryBroadcast
// (2.255.255.255) and SecondaryBroadcast (10.255.255.255). Polls go to the
// secondary by default.
//
// # Usage Example
//
//	datagram := artnet.BuildPoll(artnet.DpLow)
//	_, err := conn.WriteTo(datagram[:], net.UDPAddrFromAddrPort(artnet.DefaultBroadcast))
//
// All functions are pure and safe for concurrent use.
package artnet
