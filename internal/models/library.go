package models

import (
	"encoding/json"
	"time"
)

// LibraryPass — запись хранилища пропусков (аналог PKPassLibrary)
type LibraryPass struct {
	SerialNumber       string
	PassTypeIdentifier string
	Kind               PassKind
	OrganizationName   string
	Description        string
	WebServiceURL      string
	Descriptor         json.RawMessage
	CreatedAt          time.Time
}
