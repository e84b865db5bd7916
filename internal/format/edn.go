package format

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteEDN writes v as EDN. Values go through encoding/json first, so json tags
// decide key names and only maps, vectors, strings, numbers, booleans and nil
// ever reach the encoder. Map keys become keywords.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(b, &generic); err != nil {
		return err
	}

	var sb strings.Builder
	writeEDNValue(&sb, generic, 0, pretty)
	sb.WriteByte('\n')
	_, err = io.WriteString(w, sb.String())
	return err
}

func writeEDNValue(sb *strings.Builder, v any, depth int, pretty bool) {
	switch x := v.(type) {
	case nil:
		sb.WriteString("nil")
	case bool:
		sb.WriteString(strconv.FormatBool(x))
	case string:
		sb.WriteString(strconv.Quote(x))
	case float64:
		if x == float64(int64(x)) {
			sb.WriteString(strconv.FormatInt(int64(x), 10))
		} else {
			sb.WriteString(strconv.FormatFloat(x, 'f', -1, 64))
		}
	case []any:
		elems := make([]func(), 0, len(x))
		for _, e := range x {
			elems = append(elems, func() { writeEDNValue(sb, e, depth+1, pretty) })
		}
		writeEDNCollection(sb, '[', ']', elems, depth, pretty)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		elems := make([]func(), 0, len(keys))
		for _, k := range keys {
			elems = append(elems, func() {
				sb.WriteString(ednKeyword(k))
				sb.WriteByte(' ')
				writeEDNValue(sb, x[k], depth+1, pretty)
			})
		}
		writeEDNCollection(sb, '{', '}', elems, depth, pretty)
	default:
		sb.WriteString(strconv.Quote(fmt.Sprint(v)))
	}
}

// writeEDNCollection lays out elements one per line when pretty, else space separated.
func writeEDNCollection(sb *strings.Builder, open, close byte, elems []func(), depth int, pretty bool) {
	sb.WriteByte(open)
	for i, write := range elems {
		switch {
		case pretty:
			sb.WriteByte('\n')
			sb.WriteString(strings.Repeat("  ", depth+1))
		case i > 0:
			sb.WriteByte(' ')
		}
		write()
	}
	if pretty && len(elems) > 0 {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat("  ", depth))
	}
	sb.WriteByte(close)
}

func ednKeyword(k string) string {
	k = strings.TrimSpace(k)
	return ":" + strings.ReplaceAll(k, " ", "-")
}
