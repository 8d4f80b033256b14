package fastping

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", errors.Errorf("unknown output format (%v)", s)
}

// Record is the structured form of a probe outcome. Port is 0 when the
// protocol has none and LatencyMs is -1 when the probe failed.
type Record struct {
	Protocol  string `json:"protocol"`
	Target    string `json:"target"`
	Port      int    `json:"port"`
	Success   bool   `json:"success"`
	LatencyMs int64  `json:"latency_ms"`
}

func NewRecord(req ProbeRequest, res ProbeResult) Record {
	r := Record{
		Protocol:  req.Protocol.String(),
		Target:    req.Target,
		Success:   res.Success,
		LatencyMs: -1,
	}
	if req.Protocol.UsesPort() {
		r.Port = int(req.Port)
	}
	if latency, ok := res.Latency(); ok {
		r.LatencyMs = latency.Milliseconds()
	}
	return r
}

// Text renders "[tcp] 10.0.0.1:80 reachable in 3ms" or "[icmp] 10.0.0.1 unreachable.".
func (r Record) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", r.Protocol, r.Target)
	if r.Port > 0 {
		fmt.Fprintf(&b, ":%d", r.Port)
	}
	if r.Success {
		fmt.Fprintf(&b, " reachable in %dms", r.LatencyMs)
	} else {
		b.WriteString(" unreachable.")
	}
	return b.String()
}

func (r Record) JSON() ([]byte, error) {
	return json.Marshal(r)
}

// Render writes the record as a single line.
func (r Record) Render(w io.Writer, f Format) error {
	var line []byte
	switch f {
	case FormatJSON:
		bts, err := r.JSON()
		if err != nil {
			return err
		}
		line = bts
	case FormatText, "":
		line = []byte(r.Text())
	default:
		return errors.Errorf("unknown output format (%v)", f)
	}
	line = append(line, '\n')
	_, err := w.Write(line)
	return err
}
