package rds

// CallSign derives the North American (RBDS) call letters from a PI code.
// See: U.S. RBDS Standard - April 1998 ("rbds1998.pdf"), pg 80-90.
// ok is false when the PI doesn't map to call letters.
func CallSign(pi uint16) (cs string, ok bool) {
	var b [4]byte
	var tmp uint16

	switch {
	case pi == 0:
		return "", false
	case (pi & 0x0F00) == 0x0000:
		// _0__ : European local (unique) broadcast
		b[0] = 'A'
		b[1] = 'A' + byte((pi>>12)&0xf)
		b[2] = 'A' + byte((pi>>4)&0xf)
		b[3] = 'A' + byte(pi&0xf)
	case (pi & 0x00FF) == 0x0000:
		// __00 : European test modes
		b[0] = 'A'
		b[1] = 'F'
		b[2] = 'A' + byte((pi>>12)&0xf)
		b[3] = 'A' + byte((pi>>8)&0xf)
	case pi >= 4096 && pi <= 39247:
		// 4-letter "W" and "K" stations
		if pi < 21672 {
			b[0] = 'K'
			tmp = pi - 4096
		} else {
			b[0] = 'W'
			tmp = pi - 21672
		}
		b[1] = 'A' + byte(tmp/676)
		tmp %= 676
		b[2] = 'A' + byte(tmp/26)
		tmp %= 26
		b[3] = 'A' + byte(tmp)
	default:
		return "", false
	}
	return string(b[:]), true
}

// GroupTypeName describes the payload of a group type/version pair.
func GroupTypeName(gt int, versionB bool) string {
	if gt < 0 || gt > 15 {
		return ""
	}
	if versionB {
		return groupTypesB[gt]
	}
	return groupTypesA[gt]
}

// ProgramTypeName names a PTY code using the RBDS (North America) table
// when rbds is set, and the EU table otherwise.
func ProgramTypeName(pty int, rbds bool) string {
	if pty < 0 || pty > 31 {
		return ""
	}
	if rbds {
		return ptNA[pty]
	}
	return ptEU[pty]
}

var ptNA = [32]string{
	"No program type",
	"News",
	"Information",
	"Sports",
	"Talk",
	"Rock",
	"Classic Rock",
	"Adult Hits",
	"Soft Rock",
	"Top 40",
	"Country",
	"Oldies",
	"Soft",
	"Nostalgia",
	"Jazz",
	"Classical",
	"Rhythm and Blues",
	"Soft Rhythm and Blues",
	"Language",
	"Religious Music",
	"Religious Talk",
	"Personality",
	"Public",
	"College",
	"Unassigned 24",
	"Unassigned 25",
	"Unassigned 26",
	"Unassigned 27",
	"Unassigned 28",
	"Weather",
	"Emergency Test",
	"Emergency",
}

var ptEU = [32]string{
	"No program type",
	"News",
	"Current Affairs",
	"Information",
	"Sport",
	"Education",
	"Drama",
	"Culture",
	"Science",
	"Varied",
	"Pop Music",
	"Rock Music",
	"M.O.R. Music",
	"Light Classical",
	"Serious Classical",
	"Other Music",
	"Weather",
	"Finance",
	"Children's Programs",
	"Social Affairs",
	"Religion",
	"Phone-In",
	"Travel",
	"Leisure",
	"Jazz Music",
	"Country Music",
	"National Music",
	"Oldies Music",
	"Folk Music",
	"Documentary",
	"Alarm test",
	"Alarm",
}

var groupTypesA = [16]string{
	"Basic Tuning and Switching Information only",
	"Program Item Number and Slow Labeling Codes only",
	"Radio Text only",
	"Applications Identification for ODA only",
	"Clock Time and Date only",
	"Transparent Data Channels (32 channels) or ODA",
	"In-House Applications of ODA",
	"Radio Paging of ODA",
	"Traffic Message Channel or ODA",
	"Emergency Warning System or ODA",
	"Program Type Name",
	"Open Data Applications",
	"Open Data Applications",
	"Enhanced Radio Paging or ODA",
	"Enhanced Other Networks Information Only",
	"Defined in RBDS only",
}

var groupTypesB = [16]string{
	"Basic Tuning and Switching Information only",
	"Program Item Number",
	"Radio Text only",
	"Open Data Applications",
	"Open Data Applications",
	"Transparent Data Channels (32 channels) or ODA",
	"In-House Applications of ODA",
	"Radio Paging of ODA",
	"Open Data Applications",
	"Open Data Applications",
	"Open Data Applications",
	"Open Data Applications",
	"Open Data Applications",
	"Open Data Applications",
	"Enhanced Other Networks Information Only",
	"Fast Switching Information only",
}
