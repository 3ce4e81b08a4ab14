package format

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"olympos.io/encoding/edn"
)

// WriteEDN writes v as EDN. Values go through JSON first so json tags decide
// field names; object keys become keywords.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}

	var out []byte
	if pretty {
		out, err = edn.MarshalIndent(toEDN(x), "", "  ")
	} else {
		out, err = edn.Marshal(toEDN(x))
	}
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}

func toEDN(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[edn.Keyword]any, len(t))
		for k, val := range t {
			m[ednKeyword(k)] = toEDN(val)
		}
		return m
	case []any:
		xs := make([]any, len(t))
		for i, it := range t {
			xs[i] = toEDN(it)
		}
		return xs
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	default:
		return t
	}
}

func ednKeyword(s string) edn.Keyword {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "-")
	return edn.Keyword(s)
}
