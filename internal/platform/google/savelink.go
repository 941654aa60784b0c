package google

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

// SaveURLBase — префикс ссылки "Add to Google Wallet"
const SaveURLBase = "https://pay.google.com/gp/v/save/"

const (
	saveAudience = "google"
	saveType     = "savetowallet"
)

// ServiceAccount — поля ключа сервисного аккаунта, нужные для подписи и OAuth2
type ServiceAccount struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id,omitempty"`
	PrivateKeyID string `json:"private_key_id,omitempty"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	ClientID     string `json:"client_id,omitempty"`
	TokenURI     string `json:"token_uri,omitempty"`
}

// ReadServiceAccount читает JSON-ключ сервисного аккаунта
func ReadServiceAccount(path string) (ServiceAccount, []byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ServiceAccount{}, nil, fmt.Errorf("read credentials: %w", err)
	}
	var sa ServiceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return ServiceAccount{}, nil, fmt.Errorf("parse credentials: %w", err)
	}
	if sa.ClientEmail == "" || sa.PrivateKey == "" {
		return ServiceAccount{}, nil, fmt.Errorf("credentials: client_email and private_key are required")
	}
	return sa, raw, nil
}

// SaveClaims — claims JWT "savetowallet". Временных claims нет: токен детерминирован.
type SaveClaims struct {
	Origins []string           `json:"origins"`
	Type    string             `json:"typ"`
	Payload models.SavePayload `json:"payload"`
	jwt.RegisteredClaims
}

// SaveLinkSigner строит ссылки сохранения. Нулевой *SaveLinkSigner даёт неподписанную ссылку.
type SaveLinkSigner struct {
	email   string
	keyID   string
	key     *rsa.PrivateKey
	origins []string
}

func NewSaveLinkSigner(sa ServiceAccount, origins []string) (*SaveLinkSigner, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(sa.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	if origins == nil {
		origins = []string{}
	}
	return &SaveLinkSigner{email: sa.ClientEmail, keyID: sa.PrivateKeyID, key: key, origins: origins}, nil
}

// SaveURL — ссылка для сохранения объекта в Google Wallet.
// Подписанная ссылка несёт id объекта во фрагменте: токен не меняется, а id виден без декодирования.
func (s *SaveLinkSigner) SaveURL(classID, objectID string) (string, error) {
	if s == nil || s.key == nil {
		return SaveURLBase + "unsigned_jwt_for_" + objectID, nil
	}
	claims := SaveClaims{
		Origins: s.origins,
		Type:    saveType,
		Payload: models.SavePayload{
			GenericObjects: []models.SaveObjectRef{{ID: objectID, ClassID: classID}},
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   s.email,
			Audience: jwt.ClaimStrings{saveAudience},
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if s.keyID != "" {
		tok.Header["kid"] = s.keyID
	}
	signed, err := tok.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign save link: %w", err)
	}
	return SaveURLBase + signed + "#" + url.PathEscape(objectID), nil
}
