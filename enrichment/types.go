package enrichment

import (
	"strings"

	"github.com/fatih/structs"
	"github.com/scitags/nlmon-go/types"
)

// Prober specifies the behaviour of a source of link-layer information
// queried when a link comes up. Implementations must return (nil, nil) when
// the query is not supported for the given interface: that's not an error.
type Prober interface {
	ProbeLink(name string) (*LinkSettings, error)
	String() string
}

// LinkSettings holds the link negotiation results. The structs tags dictate
// the record field names and the declaration order dictates the order in
// which they're appended to a record.
type LinkSettings struct {
	// Speed in Mb/s; 0 if unknown
	Speed int64 `structs:"speed"`

	// Either "half" or "full"
	Duplex string `structs:"duplex"`

	Autoneg bool `structs:"autoneg"`
}

// Fields returns the settings as record fields. We'll leverage structs to
// honour the struct tags so that adding a setting only implies adding a
// tagged field.
func (s *LinkSettings) Fields() []types.Field {
	fields := []types.Field{}
	for _, f := range structs.New(s).Fields() {
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag("structs"), ",")
		if name == "" || name == "-" {
			continue
		}
		fields = append(fields, types.Field{Name: name, Value: f.Value()})
	}
	return fields
}

// Merge appends the settings to r. A nil receiver adds nothing.
func (s *LinkSettings) Merge(r *types.Record) {
	if s == nil {
		return
	}
	for _, f := range s.Fields() {
		r.Set(f.Name, f.Value)
	}
}

// Disabled is a Prober that never adds anything.
type Disabled struct{}

func (Disabled) String() string {
	return "disabled prober"
}

func (Disabled) ProbeLink(string) (*LinkSettings, error) {
	return nil, nil
}
