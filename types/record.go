package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Reserved field names present in every Record.
const (
	StampKey string = "stamp"
	EventKey string = "event"
)

// Field is a single named value within a Record. Values are always one of
// string, int64 or bool.
type Field struct {
	Name  string
	Value any
}

// Record is an ordered set of named fields built while decoding a single
// netlink message. Setting a name that's already present overwrites its
// value but keeps its original position, so the last write wins.
//
// A Record is populated by exactly one decoder invocation and should be
// treated as read-only once it's been handed over to a consumer.
//
// The StampKey field holds host-local CLOCK_MONOTONIC milliseconds sampled
// when decoding began. It's NOT a wire value sent by the kernel.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord returns an empty record with room for n fields.
func NewRecord(n int) *Record {
	return &Record{
		fields: make([]Field, 0, n),
		index:  make(map[string]int, n),
	}
}

// Set stores value under name. Integer values of any width are normalised
// to int64. Other types are rejected to keep records serialisable as the
// three supported kinds.
func (r *Record) Set(name string, value any) {
	switch v := value.(type) {
	case string, bool, int64:
	case int:
		value = int64(v)
	case int8:
		value = int64(v)
	case int16:
		value = int64(v)
	case int32:
		value = int64(v)
	case uint8:
		value = int64(v)
	case uint16:
		value = int64(v)
	case uint32:
		value = int64(v)
	case uint:
		value = int64(v)
	case uint64:
		value = int64(v)
	default:
		panic(fmt.Sprintf("unsupported record value type %T for %q", value, name))
	}

	if r.index == nil {
		r.index = map[string]int{}
	}

	if i, ok := r.index[name]; ok {
		r.fields[i].Value = value
		return
	}

	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

func (r *Record) SetString(name, value string) { r.Set(name, value) }
func (r *Record) SetInt(name string, value int64) { r.Set(name, value) }
func (r *Record) SetBool(name string, value bool) { r.Set(name, value) }

// Get returns the value stored under name.
func (r *Record) Get(name string) (any, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.fields[i].Value, true
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.fields)
}

// Fields returns a copy of the fields in insertion order.
func (r *Record) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

// Names returns the field names in insertion order.
func (r *Record) Names() []string {
	names := make([]string, 0, len(r.fields))
	for _, f := range r.fields {
		names = append(names, f.Name)
	}
	return names
}

// Event returns the event name (i.e. newlink, delroute...).
func (r *Record) Event() string {
	v, _ := r.Get(EventKey)
	s, _ := v.(string)
	return s
}

// Stamp returns the monotonic milliseconds sampled when decoding began.
func (r *Record) Stamp() int64 {
	v, _ := r.Get(StampKey)
	i, _ := v.(int64)
	return i
}

// MarshalJSON implements the json.Marshaler interface preserving the
// order in which fields were set.
func (r *Record) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("error marshalling field %q: %w", f.Name, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Record) String() string {
	parts := make([]string, 0, len(r.fields))
	for _, f := range r.fields {
		parts = append(parts, fmt.Sprintf("%s=%v", f.Name, f.Value))
	}
	return strings.Join(parts, " ")
}
