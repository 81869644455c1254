package format

import (
	"errors"
	"fmt"

	"github.com/joshuapare/dwgkit/dwg/bits"
	"github.com/joshuapare/dwgkit/dwg/codepage"
	"github.com/joshuapare/dwgkit/dwg/crc"
	"github.com/joshuapare/dwgkit/dwg/version"
	"github.com/joshuapare/dwgkit/internal/buf"
)

// SectionNumber identifies the section a locator record points at.
type SectionNumber uint8

func (n SectionNumber) String() string {
	switch n {
	case SectionHeader:
		return "header"
	case SectionClasses:
		return "classes"
	case SectionObjectMap:
		return "objmap"
	case SectionFreeSpace:
		return "freespace"
	case SectionTemplate:
		return "template"
	case SectionAuxHeader:
		return "auxheader"
	}
	return fmt.Sprintf("section(%d)", uint8(n))
}

// Record locates one section in the file.
type Record struct {
	Number  SectionNumber `json:"number" yaml:"number"`
	Address uint32        `json:"address" yaml:"address"`
	Size    uint32        `json:"size" yaml:"size"`
}

// Header is the decoded R13-R2000 file header.
type Header struct {
	Version        version.Version   `json:"version" yaml:"version"`
	Maintenance    uint8             `json:"maintenance" yaml:"maintenance"`
	ImageAddress   uint32            `json:"image_address" yaml:"image_address"`
	AppVersion     uint8             `json:"app_version" yaml:"app_version"`
	AppMaintenance uint8             `json:"app_maintenance" yaml:"app_maintenance"`
	Codepage       codepage.Codepage `json:"codepage" yaml:"codepage"`
	Records        []Record          `json:"records" yaml:"records"`
	// CRCValid is false when the stored checksum did not match.
	CRCValid bool `json:"crc_valid" yaml:"crc_valid"`
}

// Section returns the locator record numbered n.
func (h *Header) Section(n SectionNumber) (Record, error) {
	for _, r := range h.Records {
		if r.Number == n {
			return r, nil
		}
	}
	return Record{}, fmt.Errorf("%w: %s", ErrNotFound, n)
}

// Supported reports whether v uses the header layout handled here.
func Supported(v version.Version) bool {
	return v >= version.R13b1 && v <= version.R2000
}

// ParseHeader reads the file header from the start of c and leaves c after
// the end sentinel. A CRC mismatch is logged and recorded in CRCValid, or
// returned as bits.ErrCRCMismatch when c is strict.
func ParseHeader(c *bits.Chain) (Header, error) {
	var h Header
	if err := c.SetPosition(0); err != nil {
		return h, err
	}
	magic, err := c.ReadBytes(MagicSize)
	if err != nil {
		return h, fmt.Errorf("file header: %w", err)
	}
	v, err := version.FromMagic(string(magic))
	if err != nil {
		return h, fmt.Errorf("file header: %w: %q", ErrSignatureMismatch, magic)
	}
	if !Supported(v) {
		return h, fmt.Errorf("file header: %w: %s", ErrUnsupported, v)
	}
	h.Version = v

	var cp uint16
	var count uint32
	steps := []func() error{
		func() error { return c.SetPosition(MaintenanceOffset * 8) },
		func() (err error) { h.Maintenance, err = c.ReadRC(); return },
		func() error { return c.SetPosition(ImageOffset * 8) },
		func() (err error) { h.ImageAddress, err = c.ReadRL(); return },
		func() error { return c.SetPosition(AppVersionOffset * 8) },
		func() (err error) { h.AppVersion, err = c.ReadRC(); return },
		func() (err error) { h.AppMaintenance, err = c.ReadRC(); return },
		func() error { return c.SetPosition(CodepageOffset * 8) },
		func() (err error) { cp, err = c.ReadRS(); return },
		func() error { return c.SetPosition(RecordCountOffset * 8) },
		func() (err error) { count, err = c.ReadRL(); return },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return h, fmt.Errorf("file header: %w", err)
		}
	}
	h.Codepage = codepage.Codepage(cp)
	if count > MaxRecords {
		return h, fmt.Errorf("file header: %w: %d locator records", ErrCorrupt, count)
	}

	table, ok := buf.MulOverflowSafe(int(count), RecordSize)
	if !ok || !buf.Has(c.Bytes(), RecordsOffset, table) {
		return h, fmt.Errorf("file header: %w: %d locator records in %d bytes", bits.ErrTruncated, count, c.Len())
	}
	if err := c.SetPosition(RecordsOffset * 8); err != nil {
		return h, fmt.Errorf("file header: %w", err)
	}

	h.Records = make([]Record, 0, count)
	for i := range count {
		var r Record
		num, err := c.ReadRC()
		if err == nil {
			r.Address, err = c.ReadRL()
		}
		if err == nil {
			r.Size, err = c.ReadRL()
		}
		if err != nil {
			return h, fmt.Errorf("file header: record %d: %w", i, err)
		}
		r.Number = SectionNumber(num)
		h.Records = append(h.Records, r)
	}

	want, err := headerCRC(c, count)
	if err != nil {
		return h, fmt.Errorf("file header: %w", err)
	}
	got, err := c.ReadRS()
	if err != nil {
		return h, fmt.Errorf("file header: %w", err)
	}
	h.CRCValid = got == want
	if !h.CRCValid {
		if c.Flags()&bits.Strict != 0 {
			return h, fmt.Errorf("file header: %w: stored %#04x, computed %#04x", bits.ErrCRCMismatch, got, want)
		}
		c.Log().Err("format: header crc mismatch", "stored", got, "computed", want)
	}

	if err := c.ExpectSentinel(bits.SentinelHeaderEnd); err != nil {
		return h, fmt.Errorf("file header: %w: %w", ErrCorrupt, err)
	}
	c.Log().Trace("format: header", "version", h.Version, "codepage", h.Codepage, "records", len(h.Records))
	return h, nil
}

// WriteHeader writes h at the start of c, followed by the CRC and the end
// sentinel. The chain's own version is not consulted.
func WriteHeader(c *bits.Chain, h *Header) error {
	if !Supported(h.Version) {
		return fmt.Errorf("file header: %w: %s", ErrUnsupported, h.Version)
	}
	if len(h.Records) > MaxRecords {
		return fmt.Errorf("file header: %w: %d locator records", ErrCorrupt, len(h.Records))
	}
	if h.Codepage < 0 || h.Codepage > 0xFFFF {
		return fmt.Errorf("file header: %w: codepage %d", ErrCorrupt, int(h.Codepage))
	}
	if err := c.SetPosition(0); err != nil {
		return err
	}
	var zero [MaintenanceOffset - MagicSize]byte
	errs := []error{
		c.WriteBytes([]byte(h.Version.Magic())),
		c.WriteBytes(zero[:]),
		c.WriteRC(h.Maintenance),
		c.WriteRC(1),
		c.WriteRL(h.ImageAddress),
		c.WriteRC(h.AppVersion),
		c.WriteRC(h.AppMaintenance),
		c.WriteRS(uint16(h.Codepage)),
		c.WriteRL(uint32(len(h.Records))),
	}
	for _, r := range h.Records {
		errs = append(errs, c.WriteRC(uint8(r.Number)), c.WriteRL(r.Address), c.WriteRL(r.Size))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("file header: %w", err)
	}
	sum, err := headerCRC(c, uint32(len(h.Records)))
	if err != nil {
		return fmt.Errorf("file header: %w", err)
	}
	if err := c.WriteRS(sum); err != nil {
		return fmt.Errorf("file header: %w", err)
	}
	return c.WriteSentinel(bits.SentinelHeaderEnd)
}

// headerCRC returns the checksum of the bytes before the position, xor'ed
// for count records.
func headerCRC(c *bits.Chain, count uint32) (uint16, error) {
	p, ok := buf.Slice(c.Bytes(), 0, int(c.Byte()))
	if !ok {
		return 0, fmt.Errorf("%w: crc end %d of %d", bits.ErrOutOfRange, c.Byte(), c.Len())
	}
	return crc.Checksum16(0, p) ^ crcXor[count], nil
}

// MarshalText encodes n as its name.
func (n SectionNumber) MarshalText() ([]byte, error) { return []byte(n.String()), nil }
