// Package format decodes the fixed file header of R13 through R2000
// drawings: the format signature, the drawing codepage and the section
// locator table pointing at the header variables, classes and object map.
package format

const (
	// MagicSize is the length of the ASCII format signature at offset 0.
	MagicSize = 6

	// Offsets within the file header. All values are little-endian.
	//
	//	Offset  Size  Field
	//	------  ----  ------------------------------------------
	//	 0x00    6    "AC1012" .. "AC1015"
	//	 0x06    5    zero
	//	 0x0B    1    maintenance release
	//	 0x0C    1    always 1
	//	 0x0D    4    preview image address
	//	 0x11    1    writing application version
	//	 0x12    1    writing application maintenance release
	//	 0x13    2    codepage
	//	 0x15    4    locator record count
	//	 0x19    9n   locator records (number RC, address RL, size RL)
	//	  ...    2    CRC, seed 0, xor'ed by record count
	//	  ...   16    header end sentinel
	MaintenanceOffset = 0x0B
	ImageOffset       = 0x0D
	AppVersionOffset  = 0x11
	CodepageOffset    = 0x13
	RecordCountOffset = 0x15
	RecordsOffset     = 0x19

	// RecordSize is the encoded size of one locator record.
	RecordSize = 9

	// MaxRecords bounds the locator table. Writers never emit more than six.
	MaxRecords = 16
)

// crcXor is applied to the header CRC depending on the record count.
var crcXor = map[uint32]uint16{
	3: 0xA598,
	4: 0x8101,
	5: 0x3CC4,
	6: 0x8461,
}

// Section numbers used in locator records.
const (
	SectionHeader SectionNumber = iota
	SectionClasses
	SectionObjectMap
	SectionFreeSpace
	SectionTemplate
	SectionAuxHeader
)
