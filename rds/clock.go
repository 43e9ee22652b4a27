package rds

import (
	"fmt"
	"time"
)

// mjdUnixEpoch is the Modified Julian Day of 1970-01-01.
const mjdUnixEpoch = 40587

// ClockTime is the broadcast clock: a UTC instant plus the station's local
// offset in signed half hours.
type ClockTime struct {
	UTC    time.Time
	Offset int
}

// Zone is a fixed zone for the local offset, named like "UTC+05:30".
func (ct ClockTime) Zone() *time.Location {
	mins := ct.Offset * 30
	sign := '+'
	if mins < 0 {
		sign = '-'
		mins = -mins
	}
	return time.FixedZone(fmt.Sprintf("UTC%c%02d:%02d", sign, mins/60, mins%60), ct.Offset*30*60)
}

// Local is the UTC instant expressed in the station's local time.
func (ct ClockTime) Local() time.Time {
	return ct.UTC.In(ct.Zone())
}

func (ct ClockTime) String() string {
	return ct.Local().Format("2006-01-02 15:04 MST")
}

// updateClock decodes a 4A group:
//
//	B: ...._...._...._..jj            MJD bits 16-15
//	C: jjjj_jjjj_jjjj_jjjh            MJD bits 14-0, hour bit 4
//	D: hhhh_mmmm_mmso_oooo            hour bits 3-0, minute, offset sign, offset
//
// Updates are published only when the minute changes.
func (d *Decoder) updateClock(g Group) {
	if g.B&0x3 == 0 && g.C == 0 && g.D == 0 {
		// all zero: the station isn't sending the time
		return
	}

	mjd := int64(g.B&0x3)<<15 | int64(g.C>>1)
	hours := int64(g.C&0x1)<<4 | int64(g.D>>12)
	mins := int64((g.D >> 6) & 0x3f)
	offset := int(g.D & 0x1f)
	if g.D&0x20 == 0x20 {
		offset = -offset
	}

	if hours > 23 || mins > 59 {
		d.log.WithField("group", g.String()).Debug("invalid clock time")
		return
	}

	minutes := (mjd-mjdUnixEpoch)*24*60 + hours*60 + mins
	if d.clockSeen && minutes == d.lastMinutes {
		return
	}
	d.clockSeen = true
	d.lastMinutes = minutes

	d.notify.clock(ClockTime{
		UTC:    time.Unix(minutes*60, 0).UTC(),
		Offset: offset,
	})
}
