package cooklang

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Line     int      `json:"line" yaml:"line"`
	Message  string   `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", d.Severity, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Severity, d.Message)
}

// Report collects the diagnostics of one parse. Parsing is lenient: a recipe
// is produced even when the report holds errors.
type Report struct {
	Diagnostics []Diagnostic
}

func (r *Report) warnf(line int, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Severity: SeverityWarning, Line: line, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) errorf(line int, format string, args ...any) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Severity: SeverityError, Line: line, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) Warnings() []Diagnostic { return r.filter(SeverityWarning) }

func (r *Report) Errors() []Diagnostic { return r.filter(SeverityError) }

func (r *Report) HasErrors() bool { return len(r.Errors()) > 0 }

func (r *Report) filter(sev Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

func marshalOrderedJSON(entries []MetaEntry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("encode metadata %q: %w", e.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
