package rtnetlink

import "errors"

var (
	// ErrMalformedAttribute signals an attribute whose declared length is
	// shorter than its header or reaches past the end of the message.
	ErrMalformedAttribute = errors.New("malformed attribute")

	// ErrAttributeTypeMismatch signals an attribute payload whose length
	// doesn't match the expected wire type (i.e. a 3-byte u32).
	ErrAttributeTypeMismatch = errors.New("attribute type mismatch")

	// ErrShortHeader signals a message body too short for its fixed header.
	ErrShortHeader = errors.New("short message header")

	// ErrUnsupportedFamily signals an address family we can't format.
	ErrUnsupportedFamily = errors.New("unsupported address family")

	// ErrFiltered is returned by decoders on purpose when a message must not
	// produce a record (i.e. non-unicast routes). It's not a failure.
	ErrFiltered = errors.New("message filtered")

	// ErrEnrichment wraps failures of the link settings probe.
	ErrEnrichment = errors.New("enrichment failed")
)
