package rds

import "fmt"

/*
A group is four 16 bit blocks (the 10 bit checkwords are handled by the tuner):

* A: 16 bit PI Code; NA: encoded call sign, EU: country/coverage/program reference
* B:
    * Group Type      : xxxx_...._...._....
    * Version         : ...._x..._...._....
    * Traffic Program : ...._.x.._...._....
    * Program Type    : ...._..xx_xxx._....
    * GT-dependent    : ...._...._...x_xxxx
* C: GT-dependent (version B groups repeat PI here)
* D: GT-dependent
*/
type Group struct {
	A, B, C, D uint16
}

// PI is the program identification code carried in block A.
func (g Group) PI() uint16 {
	return g.A
}

func (g Group) CountryCode() int {
	return int(g.A >> 12)
}

func (g Group) CoverageArea() int {
	return int((g.A >> 8) & 0xf)
}

func (g Group) ProgramRef() int {
	return int(g.A & 0xff)
}

// Type is the 4 bit group type code, 0..15.
func (g Group) Type() int {
	return int(g.B >> 12)
}

func (g Group) VersionB() bool {
	return g.B&0x0800 == 0x0800
}

func (g Group) Traffic() bool {
	return g.B&0x0400 == 0x0400
}

// ProgramType is the PTY code, 0..31.
func (g Group) ProgramType() int {
	return int((g.B >> 5) & 0x1f)
}

// Address is the low 5 bits of block B, the slot index for fragment groups.
func (g Group) Address() int {
	return int(g.B & 0x1f)
}

// Code returns the conventional group name, e.g. "0A" or "15B".
func (g Group) Code() string {
	if g.VersionB() {
		return fmt.Sprintf("%dB", g.Type())
	}
	return fmt.Sprintf("%dA", g.Type())
}

func (g Group) String() string {
	return fmt.Sprintf("%.4X %.4X %.4X %.4X", g.A, g.B, g.C, g.D)
}

func hi(w uint16) byte { return byte(w >> 8) }
func lo(w uint16) byte { return byte(w & 0xff) }
