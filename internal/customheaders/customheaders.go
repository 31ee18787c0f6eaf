package customheaders

import (
	"bufio"
	"errors"
	"net/http"
	"net/textproto"
	"strings"
)

// ErrInvalidHeaderParameter is returned for a header not of the form "Name: value"
var ErrInvalidHeaderParameter = errors.New("invalid syntax specified as header parameter")

// AddCustomHeaders adds headers to the response
func AddCustomHeaders(w http.ResponseWriter, headers http.Header) {
	for k, v := range headers {
		for _, value := range v {
			w.Header().Add(k, value)
		}
	}
}

// ParseHeaderString parses "Name: value" strings into canonical headers
func ParseHeaderString(customHeaders []string) (http.Header, error) {
	headers := http.Header{}
	for _, keyValueString := range customHeaders {
		keyValueString = strings.TrimSpace(keyValueString) + "\n\n"
		tp := textproto.NewReader(bufio.NewReader(strings.NewReader(keyValueString)))
		keyValue, err := tp.ReadMIMEHeader()
		if err != nil || len(keyValue) == 0 {
			return nil, ErrInvalidHeaderParameter
		}

		for k, v := range keyValue {
			k = textproto.CanonicalMIMEHeaderKey(strings.TrimSpace(k))
			headers[k] = append(headers[k], v...)
		}
	}
	return headers, nil
}
