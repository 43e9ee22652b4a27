package rds

// Observer receives every confirmed value. Use Attach to register all
// three callbacks at once.
type Observer interface {
	StationName(name string)
	Text(text string)
	ClockTime(ct ClockTime)
}

type notifier struct {
	onName func(string)
	onText func(string)
	onTime func(ClockTime)
}

func (n *notifier) name(s string) {
	if n.onName != nil {
		n.onName(s)
	}
}

func (n *notifier) text(s string) {
	if n.onText != nil {
		n.onText(s)
	}
}

func (n *notifier) clock(ct ClockTime) {
	if n.onTime != nil {
		n.onTime(ct)
	}
}

// OnStationName registers f for confirmed station names, replacing (and
// returning) the previous callback. A nil f removes the callback.
func (d *Decoder) OnStationName(f func(name string)) (prev func(string)) {
	prev, d.notify.onName = d.notify.onName, f
	return prev
}

// OnText registers f for confirmed radiotext, replacing (and returning)
// the previous callback. A nil f removes the callback.
func (d *Decoder) OnText(f func(text string)) (prev func(string)) {
	prev, d.notify.onText = d.notify.onText, f
	return prev
}

// OnTime registers f for clock time updates, replacing (and returning) the
// previous callback. A nil f removes the callback.
func (d *Decoder) OnTime(f func(ct ClockTime)) (prev func(ClockTime)) {
	prev, d.notify.onTime = d.notify.onTime, f
	return prev
}

// Attach registers o for all three categories, replacing whatever was
// registered before. Attach(nil) removes every callback.
func (d *Decoder) Attach(o Observer) {
	if o == nil {
		d.notify = notifier{}
		return
	}
	d.notify = notifier{
		onName: o.StationName,
		onText: o.Text,
		onTime: o.ClockTime,
	}
}
