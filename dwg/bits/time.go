package bits

import (
	"time"
)

const (
	julianUnixEpoch = 2440588 // Julian day number of 1970-01-01
	msPerDay        = 24 * 60 * 60 * 1000
)

// Timestamp is a DWG date: a Julian day number and milliseconds into that
// day. Elapsed-time fields use the same layout with Days counting whole days.
type Timestamp struct {
	Days   uint32
	Millis uint32
}

// Time converts a calendar timestamp to UTC time.
func (t Timestamp) Time() time.Time {
	days := int64(t.Days) - julianUnixEpoch
	return time.UnixMilli(days*msPerDay + int64(t.Millis)).UTC()
}

// Duration converts an elapsed-time timestamp.
func (t Timestamp) Duration() time.Duration {
	return time.Duration(t.Days)*24*time.Hour + time.Duration(t.Millis)*time.Millisecond
}

// TimestampOf converts t to a calendar timestamp. Times before the Julian
// epoch clamp to day 0.
func TimestampOf(t time.Time) Timestamp {
	ms := t.UnixMilli()
	days := ms / msPerDay
	rem := ms % msPerDay
	if rem < 0 {
		days--
		rem += msPerDay
	}
	jd := days + julianUnixEpoch
	if jd < 0 {
		return Timestamp{}
	}
	return Timestamp{Days: uint32(jd), Millis: uint32(rem)}
}

// ReadTIMEBLL reads a timestamp as two BL values.
func (c *Chain) ReadTIMEBLL() (t Timestamp, err error) {
	defer c.undo(c.pos, &err)
	if t.Days, err = c.ReadBL(); err != nil {
		return Timestamp{}, err
	}
	if t.Millis, err = c.ReadBL(); err != nil {
		return Timestamp{}, err
	}
	return t, nil
}

// WriteTIMEBLL writes a timestamp as two BL values.
func (c *Chain) WriteTIMEBLL(t Timestamp) (err error) {
	defer c.undo(c.pos, &err)
	if err := c.WriteBL(t.Days); err != nil {
		return err
	}
	return c.WriteBL(t.Millis)
}

// ReadTIMERLL reads a timestamp as two RL values.
func (c *Chain) ReadTIMERLL() (t Timestamp, err error) {
	defer c.undo(c.pos, &err)
	if t.Days, err = c.ReadRL(); err != nil {
		return Timestamp{}, err
	}
	if t.Millis, err = c.ReadRL(); err != nil {
		return Timestamp{}, err
	}
	return t, nil
}

// WriteTIMERLL writes a timestamp as two RL values.
func (c *Chain) WriteTIMERLL(t Timestamp) (err error) {
	defer c.undo(c.pos, &err)
	if err := c.WriteRL(t.Days); err != nil {
		return err
	}
	return c.WriteRL(t.Millis)
}
