package models

import "strings"

// Platform — целевая платформа кошелька
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// ParsePlatform принимает "ios"/"android" без учёта регистра
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case PlatformIOS:
		return PlatformIOS, true
	case PlatformAndroid:
		return PlatformAndroid, true
	}
	return "", false
}

// PassKind — вариант PassKit-пропуска
type PassKind string

const (
	KindPKPass           PassKind = "PKPass"
	KindSecureElement    PassKind = "PKSecureElementPass"
	KindStoredValue      PassKind = "PKStoredValuePass"
	KindIdentityDocument PassKind = "PKIdentityDocument"
	KindShareable        PassKind = "PKShareablePass"
)

// PassKinds в порядке появления в iOS
var PassKinds = []PassKind{KindPKPass, KindSecureElement, KindStoredValue, KindIdentityDocument, KindShareable}

var kindSlugs = map[string]PassKind{
	"pkpass":            KindPKPass,
	"secure-element":    KindSecureElement,
	"stored-value":      KindStoredValue,
	"identity-document": KindIdentityDocument,
	"shareable":         KindShareable,
}

// ParsePassKind принимает slug из URL или имя варианта
func ParsePassKind(s string) (PassKind, bool) {
	s = strings.TrimSpace(s)
	if k, ok := kindSlugs[strings.ToLower(s)]; ok {
		return k, true
	}
	for _, k := range PassKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Slug — сегмент URL для варианта
func (k PassKind) Slug() string {
	for s, v := range kindSlugs {
		if v == k {
			return s
		}
	}
	return ""
}
