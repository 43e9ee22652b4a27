package rds

import "bytes"

const cr = 0x0d

// updateText takes four radiotext characters from blocks C and D of a 2A
// group. Text is confirmed at each return to slot 0 if it is complete (64
// characters, or terminated by a CR) and matches the previous cycle.
func (d *Decoder) updateText(g Group) {
	ab := g.Address()&0x10 == 0x10
	if ab != d.rtAB {
		// the station started a new message
		d.rtAB = ab
		d.rt[d.rtActive] = [64]byte{}
	}

	slot := g.Address() & 0xf
	buf := &d.rt[d.rtActive]
	idx := slot * 4

	buf[idx] = hi(g.C)
	buf[idx+1] = lo(g.C)
	buf[idx+2] = hi(g.D)
	buf[idx+3] = lo(g.D)

	// received a CR, clear everything afterwards
	if i := bytes.IndexByte(buf[idx:idx+4], cr); i != -1 {
		for j := idx + i + 1; j < len(buf); j++ {
			buf[j] = 0
		}
	}

	if slot != 0 {
		return
	}

	shadow := &d.rt[1-d.rtActive]
	n := textLen(buf)
	term := bytes.IndexByte(buf[:n], cr)
	if (n == len(buf) || term != -1) && n == textLen(shadow) && *buf == *shadow {
		if term != -1 {
			n = term + 1
		}
		text := decodeChars(buf[:n])
		if text != d.rtText {
			d.rtText = text
			d.notify.text(text)
		}
	} else {
		d.log.WithField("rt", string(buf[:n])).Debug("radiotext not confirmed")
	}

	d.rtActive = 1 - d.rtActive
}

// textLen is the length up to the first NUL.
func textLen(b *[64]byte) int {
	if i := bytes.IndexByte(b[:], 0); i != -1 {
		return i
	}
	return len(b)
}
