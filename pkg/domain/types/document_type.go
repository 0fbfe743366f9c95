package types

import "fmt"

// DocumentType determines which routing graph applies to a case.
// It is fixed at creation.
type DocumentType string

const (
	DocumentTypeIncoming DocumentType = "INCOMING"
	DocumentTypeOutgoing DocumentType = "OUTGOING"
	DocumentTypeInternal DocumentType = "INTERNAL"
)

// AllDocumentTypes returns all valid document types
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypeIncoming,
		DocumentTypeOutgoing,
		DocumentTypeInternal,
	}
}

// IsValid checks if the document type is valid
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeIncoming,
		DocumentTypeOutgoing,
		DocumentTypeInternal:
		return true
	default:
		return false
	}
}

// String returns the string representation of the document type
func (t DocumentType) String() string {
	return string(t)
}

// ParseDocumentType parses a string into a DocumentType
func ParseDocumentType(s string) (DocumentType, error) {
	t := DocumentType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid document type: %s", s)
	}
	return t, nil
}
