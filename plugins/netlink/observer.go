package netlink

// Observer gets notified of every message a Session handles. Reasons are
// the rtnetlink.DropReason names: filtered, malformed, mismatch, header,
// enrichment, overrun or other.
type Observer interface {
	Record(event string)
	Dropped(group, reason string)
}

type nopObserver struct{}

func (nopObserver) Record(string) {}

func (nopObserver) Dropped(string, string) {}
