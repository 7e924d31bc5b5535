package varresolve

import (
	"bytes"
	"encoding/json"
)

// Entry is one resolved name/value pair. Value is a string, nil, or a
// nested Object. An Entry marshals as a single-key JSON object, so a
// []Entry result marshals as an array of single-key objects.
type Entry struct {
	Name  string
	Value any
}

// Object is an ordered collection of entries that marshals as a JSON
// object preserving insertion order. Member order in snapshots is
// meaningful (declaration order, diagnostic siblings directly after their
// member), so a plain map cannot represent it.
type Object []Entry

func (o Object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, e := range o {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return Object{e}.MarshalJSON()
}
