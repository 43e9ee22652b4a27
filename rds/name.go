package rds

// updateName takes the two PS characters in block D of a 0A group. The
// name is confirmed when two consecutive complete cycles agree.
func (d *Decoder) updateName(g Group) {
	slot := g.Address() & 0x3
	buf := &d.ps[d.psActive]

	buf[slot*2] = hi(g.D)
	buf[slot*2+1] = lo(g.D)
	d.psSlots[d.psActive] |= 1 << uint(slot)

	if slot != 3 {
		return
	}

	shadow := 1 - d.psActive
	if d.psSlots[d.psActive] == 0xf && d.psSlots[shadow] == 0xf && d.ps[d.psActive] == d.ps[shadow] {
		name := decodeChars(buf[:])
		if name != d.psName {
			d.psName = name
			d.notify.name(name)
		}
	} else {
		d.log.WithField("ps", string(buf[:])).Debug("program service not confirmed")
	}

	// the buffer just written becomes the shadow, start the next cycle clean
	d.psActive = shadow
	d.ps[d.psActive] = [8]byte{}
	d.psSlots[d.psActive] = 0
}
