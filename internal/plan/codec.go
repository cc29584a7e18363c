package plan

import (
	"bytes"
	"encoding/json"
	"math"
	"slices"
	"strings"
)

// planKeys are the wire keys of Plan, in the order they are written.
var planKeys = []string{"id", "ts", "name", "style", "size", "goal", "tags", "notes", "services"}

// UnmarshalJSON decodes a plan object leniently. A known field holding an
// unexpected JSON type is left zero and kept verbatim in Extra, as is every
// unknown field, so the record encodes back the way it came in.
func (p *Plan) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*p = Plan{}
	for key, raw := range fields {
		if !p.decodeField(key, raw) {
			if p.Extra == nil {
				p.Extra = make(map[string]json.RawMessage)
			}
			p.Extra[key] = slices.Clone(raw)
		}
	}
	return nil
}

func (p *Plan) decodeField(key string, raw json.RawMessage) bool {
	switch key {
	case "id":
		return decodeInto(raw, &p.ID)
	case "ts":
		if decodeInto(raw, &p.TS) {
			return true
		}
		// 1.7e12 still sorts correctly; the raw form is kept for encoding.
		var f float64
		if decodeInto(raw, &f) && f == math.Trunc(f) {
			p.TS = int64(f)
		}
		return false
	case "name":
		return decodeInto(raw, &p.Name)
	case "style":
		return decodeInto(raw, &p.Style)
	case "size":
		return decodeInto(raw, &p.Size)
	case "goal":
		return decodeInto(raw, &p.Goal)
	case "tags":
		return decodeInto(raw, &p.Tags)
	case "notes":
		return decodeInto(raw, &p.Notes)
	case "services":
		return decodeInto(raw, &p.Services)
	}
	return false
}

// decodeInto sets *dst only when raw decodes cleanly.
func decodeInto[T any](raw json.RawMessage, dst *T) bool {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	*dst = v
	return true
}

// MarshalJSON writes the known fields in wire order, preferring a verbatim
// Extra value for any of them, then the remaining Extra keys sorted.
func (p Plan) MarshalJSON() ([]byte, error) {
	values := map[string]any{
		"id": p.ID, "ts": p.TS, "name": p.Name,
		"style": p.Style, "size": p.Size, "goal": p.Goal,
		"tags": p.Tags, "notes": p.Notes, "services": p.Services,
	}

	var b bytes.Buffer
	b.WriteByte('{')
	writeMember := func(key string, raw []byte) {
		if b.Len() > 1 {
			b.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		b.Write(k)
		b.WriteByte(':')
		b.Write(raw)
	}

	for _, key := range planKeys {
		raw, ok := p.Extra[key]
		if !ok {
			var err error
			if raw, err = json.Marshal(values[key]); err != nil {
				return nil, err
			}
		}
		writeMember(key, raw)
	}

	extra := make([]string, 0, len(p.Extra))
	for key := range p.Extra {
		if !slices.Contains(planKeys, key) {
			extra = append(extra, key)
		}
	}
	slices.SortFunc(extra, strings.Compare)
	for _, key := range extra {
		writeMember(key, p.Extra[key])
	}

	b.WriteByte('}')
	return b.Bytes(), nil
}

// dropExtra forgets verbatim values for keys whose typed field was just set.
func (p *Plan) dropExtra(keys ...string) {
	for _, k := range keys {
		delete(p.Extra, k)
	}
	if len(p.Extra) == 0 {
		p.Extra = nil
	}
}
