// SPDX-License-Identifier: Apache-2.0

// Package dataurl decodes base64 data URLs (RFC 2397) and persists their
// payloads to local disk.
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/andrea-de-micheli/sra-to-fastq/internal/extracted"
)

const (
	prefix         = "data:"
	base64Marker   = ";base64"
	defaultMIME    = "text/plain"
	maxErrorSample = 32
)

var (
	// ErrInvalidFormat reports a value that is not a base64 data URL.
	ErrInvalidFormat = errors.New("invalid data URL format")
	// ErrDecode reports a payload that is not valid standard base64.
	ErrDecode = errors.New("invalid base64 payload")
)

// DataURL is a parsed data URL.
type DataURL struct {
	// MIMEType is informational only. It is never checked against an allow-list.
	MIMEType string
	Params   []string
	Data     []byte
}

// IsDataURL reports whether s starts with the data URL scheme.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, prefix)
}

// Parse splits s into header and payload and decodes the payload.
func Parse(s string) (DataURL, error) {
	if s == "" || !IsDataURL(s) {
		return DataURL{}, fmt.Errorf("%w: missing %q prefix in %q", ErrInvalidFormat, prefix, sample(s))
	}

	header, payload, ok := strings.Cut(s, ",")
	if !ok {
		return DataURL{}, fmt.Errorf("%w: no ',' separating header from payload", ErrInvalidFormat)
	}

	mediaType := strings.TrimPrefix(header, prefix)
	if !strings.HasSuffix(mediaType, base64Marker) {
		return DataURL{}, fmt.Errorf("%w: only base64 data URLs are supported", ErrInvalidFormat)
	}
	mediaType = strings.TrimSuffix(mediaType, base64Marker)

	parts := strings.Split(mediaType, ";")
	mime := strings.TrimSpace(parts[0])
	if mime == "" {
		mime = defaultMIME
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return DataURL{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return DataURL{MIMEType: mime, Params: parts[1:], Data: data}, nil
}

// Extract decodes s and writes the payload to outputPath, creating or
// truncating it. Nothing is written when s fails to parse or decode.
func Extract(s, outputPath string) (extracted.File, error) {
	u, err := Parse(s)
	if err != nil {
		return extracted.File{}, err
	}
	f, err := extracted.Write(outputPath, u.Data)
	if err != nil {
		return extracted.File{}, err
	}
	f.MIMEType = u.MIMEType
	return f, nil
}

// sample shortens s for error messages; data URLs can be large.
func sample(s string) string {
	if len(s) <= maxErrorSample {
		return s
	}
	return s[:maxErrorSample] + "..."
}
