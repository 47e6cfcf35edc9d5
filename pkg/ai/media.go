package ai

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"strings"
)

// ErrInvalidDataURI is returned when a payload is not a base64 data URI with
// a media type.
var ErrInvalidDataURI = errors.New("invalid data URI")

// Media is a self-describing binary payload.
type Media struct {
	MIMEType string
	Data     []byte
}

// BaseType returns the lower-cased media type without parameters.
func (m Media) BaseType() string {
	mt, _, err := mime.ParseMediaType(m.MIMEType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(m.MIMEType))
	}
	return mt
}

// DataURI encodes the payload as data:<mimetype>;base64,<data>.
func (m Media) DataURI() string {
	return "data:" + m.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(m.Data)
}

// ParseDataURI decodes data:<mimetype>[;params];base64,<data>.
func ParseDataURI(uri string) (Media, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "data:")
	if !ok {
		return Media{}, fmt.Errorf("%w: missing data: scheme", ErrInvalidDataURI)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return Media{}, fmt.Errorf("%w: missing payload separator", ErrInvalidDataURI)
	}
	mediaType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return Media{}, fmt.Errorf("%w: payload must be base64 encoded", ErrInvalidDataURI)
	}
	if mediaType == "" {
		return Media{}, fmt.Errorf("%w: missing media type", ErrInvalidDataURI)
	}
	if _, _, err := mime.ParseMediaType(mediaType); err != nil {
		return Media{}, fmt.Errorf("%w: bad media type %q: %v", ErrInvalidDataURI, mediaType, err)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Media{}, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	if len(data) == 0 {
		return Media{}, fmt.Errorf("%w: empty payload", ErrInvalidDataURI)
	}

	return Media{MIMEType: mediaType, Data: data}, nil
}
