package canvas

import (
	"errors"
	"fmt"

	"github.com/vincent-petithory/dataurl"
)

// EmptyDataURL is what a surface with no pixels exports.
const EmptyDataURL = "data:,"

// ErrBadDataURL is returned for strings that are not well-formed data URIs.
var ErrBadDataURL = errors.New("canvas: malformed data URL")

// EncodeDataURL formats payload as a base64 data URI of the given media
// type, which must have the "type/subtype" form.
func EncodeDataURL(mediaType string, payload []byte) string {
	return dataurl.New(payload, mediaType).String()
}

// ParseDataURL splits a data URI into its media type, without parameters,
// and its decoded payload. Both base64 and percent-encoded payloads are
// accepted. A missing media type defaults to "text/plain".
func ParseDataURL(s string) (mediaType string, payload []byte, err error) {
	du, err := dataurl.DecodeString(s)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadDataURL, err)
	}
	return du.ContentType(), du.Data, nil
}
