package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// RequestBodyParser handles the two body shapes the renderer sends: JSON and
// form-encoded data. The body is read once and parsed lazily.
type RequestBodyParser struct {
	body     []byte
	jsonData map[string]interface{}
	formData url.Values
	parsed   bool
	err      error
}

func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{}
	p.body, p.err = io.ReadAll(r.Body)
	return p
}

// Parse attempts to parse the body as JSON first, falling back to form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}
	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if p.body[0] == '{' || p.body[0] == '[' {
		p.jsonData = make(map[string]interface{})
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = err
			return err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Get returns a trimmed, sanitized string value from the parsed body.
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return strings.TrimSpace(sanitizeInput(stringValue(val)))
		}
	}
	if p.formData != nil {
		return strings.TrimSpace(sanitizeInput(p.formData.Get(key)))
	}
	return ""
}

// GetBool interprets common true spellings ("true", "1", "on").
func (p *RequestBodyParser) GetBool(key string) bool {
	switch strings.ToLower(p.Get(key)) {
	case "true", "1", "on", "yes":
		return true
	default:
		return false
	}
}

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
