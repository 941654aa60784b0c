package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"flag"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/vbncursed/vkr/wallet-service/internal/platform/google"
)

// Генерирует файл в формате сервисного аккаунта Google для подписи ссылок сохранения
// в локальном режиме (GOOGLE_WALLET_CREDENTIALS_FILE)
func main() {
	var (
		out   string
		email string
		bits  int
	)
	flag.StringVar(&out, "out", "service-account.json", "output file")
	flag.StringVar(&email, "email", "wallet-dev@example.iam.gserviceaccount.com", "client email (JWT iss)")
	flag.IntVar(&bits, "bits", 2048, "RSA key size")
	flag.Parse()

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		log.Fatalf("keygen: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		log.Fatalf("marshal key: %v", err)
	}
	sa := google.ServiceAccount{
		Type:         "service_account",
		PrivateKeyID: uuid.New().String(),
		PrivateKey:   string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})),
		ClientEmail:  email,
		TokenURI:     "https://oauth2.googleapis.com/token",
	}
	// make sure the signer accepts the key
	if _, err := google.NewSaveLinkSigner(sa, nil); err != nil {
		log.Fatalf("verify: %v", err)
	}
	raw, err := json.MarshalIndent(sa, "", "  ")
	if err != nil {
		log.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(out, raw, 0o600); err != nil {
		log.Fatalf("write: %v", err)
	}
	log.Printf("wrote %s (kid %s)", out, sa.PrivateKeyID)
}
