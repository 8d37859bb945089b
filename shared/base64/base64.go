// Package base64 handles the data uris clients send for image uploads.
package base64

import (
	stdBase64 "encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	dataPrefix  = "data:"
	base64Token = ";base64,"
)

var ErrNotDataURI = errors.New("not a base64 data uri")

var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/webp": ".webp",
}

// split returns the media type and the encoded payload of data:<type>;base64,<payload>.
func split(file string) (mediaType, payload string, ok bool) {
	rest, found := strings.CutPrefix(file, dataPrefix)
	if !found {
		return "", "", false
	}

	mediaType, payload, found = strings.Cut(rest, base64Token)
	if !found || mediaType == "" {
		return "", "", false
	}

	return mediaType, payload, true
}

// GetContentType returns the media type of a data uri, or "" for anything else.
func GetContentType(file string) string {
	mediaType, _, _ := split(file)

	return mediaType
}

func IsDataURI(file string) bool {
	_, _, ok := split(file)

	return ok
}

// Decode splits a data uri into its content type and decoded payload.
func Decode(file string) (contentType string, data []byte, err error) {
	contentType, payload, ok := split(file)
	if !ok {
		return "", nil, ErrNotDataURI
	}

	data, err = stdBase64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode %s payload: %w", contentType, err)
	}

	return contentType, data, nil
}

// Extension returns the file extension for the image types accepted as uploads, "" otherwise.
func Extension(contentType string) string {
	return extensions[contentType]
}
