package base64

import (
	"encoding/base64"
	"errors"
	"strings"
)

const marker = ";base64,"

var ErrInvalidDataURL = errors.New("invalid base64 data url")

func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, marker)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

func payload(file string) string {
	_, data, found := strings.Cut(file, marker)
	if !found {
		return file
	}

	return data
}

// DecodedLen returns the size in bytes of the decoded payload of a data URL.
func DecodedLen(file string) int {
	return base64.RawStdEncoding.DecodedLen(len(strings.TrimRight(payload(file), "=")))
}

// Decode splits a data URL into its content type and raw bytes.
func Decode(file string) (contentType string, data []byte, err error) {
	contentType = GetContentType(file)
	if contentType == "" {
		return "", nil, ErrInvalidDataURL
	}

	data, err = base64.StdEncoding.DecodeString(payload(file))
	if err != nil {
		return "", nil, errors.Join(ErrInvalidDataURL, err)
	}

	return contentType, data, nil
}
