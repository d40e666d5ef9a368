package log

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

var _ Sink = (*plainSink)(nil)

func newPlainSink(w io.Writer, timestamps bool) *plainSink {
	return &plainSink{w: w, timestamps: timestamps, start: time.Now()}
}

type plainSink struct {
	w          io.Writer
	timestamps bool
	start      time.Time
}

func (p *plainSink) Log(entry Entry) error {
	var prefix string
	if scope, ok := entry.Attributes[scopeKey]; ok {
		prefix = fmt.Sprintf("%s:%s: ", entry.Level, scope)
	} else {
		prefix = fmt.Sprintf("%s: ", entry.Level)
	}
	if p.timestamps {
		prefix = fmt.Sprintf("%8.3fs ", entry.Time.Sub(p.start).Seconds()) + prefix
	}
	var attrs string
	if len(entry.Attributes) > 0 {
		parts := make([]string, 0, len(entry.Attributes))
		for k, v := range entry.Attributes {
			if k == scopeKey {
				continue
			}
			parts = append(parts, k+"="+v)
		}
		if len(parts) > 0 {
			sort.Strings(parts)
			attrs = " (" + strings.Join(parts, " ") + ")"
		}
	}
	_, err := fmt.Fprintf(p.w, "%s%s%s\n", prefix, entry.Message, attrs)
	if err != nil {
		return fmt.Errorf("failed to write log entry: %w", err)
	}
	return nil
}
