package curl

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/google/shlex"
	"github.com/pkg/errors"
)

// A Request is the structured form of a cURL command line.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	// Body holds the decoded JSON payload (-d with a JSON document),
	// the raw payload string or a map of form fields (-F).
	Body any
}

// ErrNoURL is returned when the command carries no URL.
var ErrNoURL = errors.New("URL not found")

// Parse tokenizes a cURL command line and extracts the request details.
// Unknown flags are skipped.
func Parse(command string) (*Request, error) {
	parts, err := shlex.Split(command)
	if err != nil {
		return nil, errors.Wrap(err, "could not tokenize command")
	}

	request := &Request{
		Method:  "GET",
		Headers: map[string]string{},
	}

	for i := 0; i < len(parts); i++ {
		part := parts[i]

		switch {
		case (part == "-X" || part == "--request") && i+1 < len(parts):
			request.Method = strings.ToUpper(parts[i+1])
			i++
		case (part == "-H" || part == "--header") && i+1 < len(parts):
			key, value, ok := strings.Cut(parts[i+1], ":")
			if ok {
				request.Headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
			}
			i++
		case isdata(part) && i+1 < len(parts):
			request.Body = decode(parts[i+1])
			i++
		case (part == "-F" || part == "--form") && i+1 < len(parts):
			key, value, ok := strings.Cut(parts[i+1], "=")
			if ok {
				form, castable := request.Body.(map[string]any)
				if !castable {
					form = map[string]any{}
					request.Body = form
				}
				form[key] = value
			}
			i++
		case strings.HasPrefix(part, "http"):
			request.URL = part
		}
	}

	return request, nil
}

// Validate ensures the command is parsable and targets a URL.
func Validate(command string) error {
	request, err := Parse(command)
	if err != nil {
		return err
	}

	if request.URL == "" {
		return ErrNoURL
	}
	return nil
}

func isdata(part string) bool {
	switch part {
	case "-d", "--data", "--data-raw", "--data-binary":
		return true
	}
	return false
}

// decode returns the JSON document held by the payload or the payload itself.
func decode(payload string) any {
	decoder := json.NewDecoder(strings.NewReader(payload))
	decoder.UseNumber()

	var v any
	if err := decoder.Decode(&v); err != nil {
		return payload
	}
	if _, err := decoder.Token(); err != io.EOF {
		// Trailing garbage, not a JSON payload.
		return payload
	}
	return v
}
