package jtree

import (
	"encoding/base64"
	"encoding/hex"
)

// Encoding decodes binary values carried in JSON strings
type Encoding interface {
	DecodeString(string) ([]byte, error)
}

type hexEncoding struct{}

func (hexEncoding) DecodeString(s string) ([]byte, error) { return hex.DecodeString(s) }

var (
	// Base64 is the standard base64 encoding
	Base64 Encoding = base64.StdEncoding
	// Base64URL is the URL safe base64 encoding
	Base64URL Encoding = base64.URLEncoding
	// Hex is the hex encoding (([0-9a-fA-F]{2})*)
	Hex Encoding = hexEncoding{}
)
