package artnet

import "fmt"

// OpCode identifies the type of an Art-Net packet. It is sent little-endian.
type OpCode uint16

// Art-Net opcodes. Only OpPoll is transmitted; the rest are listed so
// dumps and logs can name them.
const (
	OpPoll      OpCode = 0x2000
	OpPollReply OpCode = 0x2100

	OpDiagData OpCode = 0x2300
	OpCommand  OpCode = 0x2400

	OpDataRequest OpCode = 0x2700
	OpDataReply   OpCode = 0x2800

	OpDmx     OpCode = 0x5000
	OpNzs     OpCode = 0x5100
	OpSync    OpCode = 0x5200
	OpAddress OpCode = 0x6000
	OpInput   OpCode = 0x7000

	OpTodRequest OpCode = 0x8000
	OpTodData    OpCode = 0x8100
	OpTodControl OpCode = 0x8200

	OpRdm    OpCode = 0x8300
	OpRdmSub OpCode = 0x8400

	OpVideoSetup   OpCode = 0xa010
	OpVideoPalette OpCode = 0xa020
	OpVideoData    OpCode = 0xa040

	OpMacMaster OpCode = 0xf000
	OpMacSlave  OpCode = 0xf100

	OpFirmwareMaster OpCode = 0xf200
	OpFirmwareReply  OpCode = 0xf300

	OpFileTnMaster OpCode = 0xf400
	OpFileFnMaster OpCode = 0xf500
	OpFileFnReply  OpCode = 0xf600

	OpIpProg      OpCode = 0xf800
	OpIpProgReply OpCode = 0xf900

	OpMedia             OpCode = 0x9000
	OpMediaPatch        OpCode = 0x9100
	OpMediaControl      OpCode = 0x9200
	OpMediaControlReply OpCode = 0x9300

	OpTimeCode OpCode = 0x9700
	OpTimeSync OpCode = 0x9800

	OpTrigger OpCode = 0x9900

	OpDirectory      OpCode = 0x9a00
	OpDirectoryReply OpCode = 0x9b00
)

var opCodeNames = map[OpCode]string{
	OpPoll:              "OpPoll",
	OpPollReply:         "OpPollReply",
	OpDiagData:          "OpDiagData",
	OpCommand:           "OpCommand",
	OpDataRequest:       "OpDataRequest",
	OpDataReply:         "OpDataReply",
	OpDmx:               "OpDmx",
	OpNzs:               "OpNzs",
	OpSync:              "OpSync",
	OpAddress:           "OpAddress",
	OpInput:             "OpInput",
	OpTodRequest:        "OpTodRequest",
	OpTodData:           "OpTodData",
	OpTodControl:        "OpTodControl",
	OpRdm:               "OpRdm",
	OpRdmSub:            "OpRdmSub",
	OpVideoSetup:        "OpVideoSetup",
	OpVideoPalette:      "OpVideoPalette",
	OpVideoData:         "OpVideoData",
	OpMacMaster:         "OpMacMaster",
	OpMacSlave:          "OpMacSlave",
	OpFirmwareMaster:    "OpFirmwareMaster",
	OpFirmwareReply:     "OpFirmwareReply",
	OpFileTnMaster:      "OpFileTnMaster",
	OpFileFnMaster:      "OpFileFnMaster",
	OpFileFnReply:       "OpFileFnReply",
	OpIpProg:            "OpIpProg",
	OpIpProgReply:       "OpIpProgReply",
	OpMedia:             "OpMedia",
	OpMediaPatch:        "OpMediaPatch",
	OpMediaControl:      "OpMediaControl",
	OpMediaControlReply: "OpMediaControlReply",
	OpTimeCode:          "OpTimeCode",
	OpTimeSync:          "OpTimeSync",
	OpTrigger:           "OpTrigger",
	OpDirectory:         "OpDirectory",
	OpDirectoryReply:    "OpDirectoryReply",
}

// Known reports whether op is in the Art-Net opcode table
func (op OpCode) Known() bool {
	_, ok := opCodeNames[op]
	return ok
}

// String returns the opcode name, or its hex value if unknown
func (op OpCode) String() string {
	if name, ok := opCodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OpCode(0x%04x)", uint16(op))
}
