package bits

import (
	"fmt"
	"strings"
)

// Kind names a primitive so field sequences can be read and written from
// tables. Kinds that need a parameter (TF, DD, CRC) are not listed.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindB
	KindBB
	Kind3B
	Kind4Bits
	KindRC
	KindRCd
	KindRS
	KindRSd
	KindRL
	KindRLd
	KindRLL
	KindRLLd
	KindRD
	KindBS
	KindBSd
	KindBL
	KindBLd
	KindBLL
	KindBD
	KindBOT
	KindObjectType
	KindMC
	KindUMC
	KindMS
	KindBT
	KindBE
	Kind2RD
	Kind3RD
	Kind2BD
	Kind3BD
	KindTV
	KindTU
	KindT
	KindT32
	KindTU32
	KindTIMEBLL
	KindTIMERLL
	KindH
	kindCount
)

type kindCodec struct {
	name  string
	read  func(*Chain) (any, error)
	write func(*Chain, any) error
}

func reader[T any](f func(*Chain) (T, error)) func(*Chain) (any, error) {
	return func(c *Chain) (any, error) {
		v, err := f(c)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func writer[T any](f func(*Chain, T) error) func(*Chain, any) error {
	return func(c *Chain, v any) error {
		t, ok := v.(T)
		if !ok {
			var zero T
			return fmt.Errorf("%w: got %T, want %T", ErrOutOfRange, v, zero)
		}
		return f(c, t)
	}
}

var kinds = [kindCount]kindCodec{
	KindB:          {"B", reader((*Chain).ReadB), writer((*Chain).WriteB)},
	KindBB:         {"BB", reader((*Chain).ReadBB), writer((*Chain).WriteBB)},
	Kind3B:         {"3B", reader((*Chain).Read3B), writer((*Chain).Write3B)},
	Kind4Bits:      {"4BITS", reader((*Chain).Read4Bits), writer((*Chain).Write4Bits)},
	KindRC:         {"RC", reader((*Chain).ReadRC), writer((*Chain).WriteRC)},
	KindRCd:        {"RCd", reader((*Chain).ReadRCd), writer((*Chain).WriteRCd)},
	KindRS:         {"RS", reader((*Chain).ReadRS), writer((*Chain).WriteRS)},
	KindRSd:        {"RSd", reader((*Chain).ReadRSd), writer((*Chain).WriteRSd)},
	KindRL:         {"RL", reader((*Chain).ReadRL), writer((*Chain).WriteRL)},
	KindRLd:        {"RLd", reader((*Chain).ReadRLd), writer((*Chain).WriteRLd)},
	KindRLL:        {"RLL", reader((*Chain).ReadRLL), writer((*Chain).WriteRLL)},
	KindRLLd:       {"RLLd", reader((*Chain).ReadRLLd), writer((*Chain).WriteRLLd)},
	KindRD:         {"RD", reader((*Chain).ReadRD), writer((*Chain).WriteRD)},
	KindBS:         {"BS", reader((*Chain).ReadBS), writer((*Chain).WriteBS)},
	KindBSd:        {"BSd", reader((*Chain).ReadBSd), writer((*Chain).WriteBSd)},
	KindBL:         {"BL", reader((*Chain).ReadBL), writer((*Chain).WriteBL)},
	KindBLd:        {"BLd", reader((*Chain).ReadBLd), writer((*Chain).WriteBLd)},
	KindBLL:        {"BLL", reader((*Chain).ReadBLL), writer((*Chain).WriteBLL)},
	KindBD:         {"BD", reader((*Chain).ReadBD), writer((*Chain).WriteBD)},
	KindBOT:        {"BOT", reader((*Chain).ReadBOT), writer((*Chain).WriteBOT)},
	KindObjectType: {"OT", reader((*Chain).ReadObjectType), writer((*Chain).WriteObjectType)},
	KindMC:         {"MC", reader((*Chain).ReadMC), writer((*Chain).WriteMC)},
	KindUMC:        {"UMC", reader((*Chain).ReadUMC), writer((*Chain).WriteUMC)},
	KindMS:         {"MS", reader((*Chain).ReadMS), writer((*Chain).WriteMS)},
	KindBT:         {"BT", reader((*Chain).ReadBT), writer((*Chain).WriteBT)},
	KindBE:         {"BE", reader((*Chain).ReadBE), writer((*Chain).WriteBE)},
	Kind2RD:        {"2RD", reader((*Chain).Read2RD), writer((*Chain).Write2RD)},
	Kind3RD:        {"3RD", reader((*Chain).Read3RD), writer((*Chain).Write3RD)},
	Kind2BD:        {"2BD", reader((*Chain).Read2BD), writer((*Chain).Write2BD)},
	Kind3BD:        {"3BD", reader((*Chain).Read3BD), writer((*Chain).Write3BD)},
	KindTV:         {"TV", reader((*Chain).ReadTV), writer((*Chain).WriteTV)},
	KindTU:         {"TU", reader((*Chain).ReadTU), writer((*Chain).WriteTU)},
	KindT:          {"T", reader((*Chain).readText), writer((*Chain).writeText)},
	KindT32:        {"T32", reader((*Chain).ReadT32), writer((*Chain).WriteT32)},
	KindTU32:       {"TU32", reader((*Chain).ReadTU32), writer((*Chain).WriteTU32)},
	KindTIMEBLL:    {"TIMEBLL", reader((*Chain).ReadTIMEBLL), writer((*Chain).WriteTIMEBLL)},
	KindTIMERLL:    {"TIMERLL", reader((*Chain).ReadTIMERLL), writer((*Chain).WriteTIMERLL)},
	KindH:          {"H", reader((*Chain).ReadH), writer((*Chain).WriteH)},
}

func (k Kind) valid() bool { return k > KindInvalid && k < kindCount }

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kinds[k].name
}

// ParseKind maps a primitive name such as "BS" or "3BD" to its Kind.
// Matching ignores case.
func ParseKind(name string) (Kind, error) {
	for k := KindB; k < kindCount; k++ {
		if strings.EqualFold(kinds[k].name, name) {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("%w: unknown primitive %q", ErrOutOfRange, name)
}

// ParseKinds parses a comma separated list of primitive names.
func ParseKinds(list string) ([]Kind, error) {
	var out []Kind
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

// ReadKind reads one value of kind k. The dynamic type of the result is the
// one the matching Read method returns.
func (c *Chain) ReadKind(k Kind) (any, error) {
	if !k.valid() {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, k)
	}
	v, err := kinds[k].read(c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", k, err)
	}
	return v, nil
}

// WriteKind writes v as kind k. v must have the type ReadKind returns for k.
func (c *Chain) WriteKind(k Kind, v any) error {
	if !k.valid() {
		return fmt.Errorf("%w: %s", ErrOutOfRange, k)
	}
	if err := kinds[k].write(c, v); err != nil {
		return fmt.Errorf("%s: %w", k, err)
	}
	return nil
}

// readText is T as driven by tables: with the Import flag the RL-length
// forms replace BS-length ones.
func (c *Chain) readText() (string, error) {
	if c.flags&Import == 0 {
		return c.ReadT()
	}
	if c.from.WideStrings() {
		return c.ReadTU32()
	}
	return c.ReadT32()
}

func (c *Chain) writeText(s string) error {
	if c.flags&Import == 0 {
		return c.WriteT(s)
	}
	if c.version.WideStrings() {
		return c.WriteTU32(s)
	}
	return c.WriteT32(s)
}
