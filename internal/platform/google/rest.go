package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

const (
	// DefaultAPIURL — базовый адрес Wallet Objects API
	DefaultAPIURL = "https://walletobjects.googleapis.com/walletobjects/v1"
	// IssuerScope — OAuth2 scope эмитента
	IssuerScope = "https://www.googleapis.com/auth/wallet_object.issuer"

	classResource  = "genericClass"
	objectResource = "genericObject"
	restTimeout    = 10 * time.Second
)

// RESTClient — Client поверх Google Wallet REST API
type RESTClient struct {
	base     string
	issuerID string
	hc       *http.Client
}

// NewRESTClient — клиент с готовым http.Client (уже авторизованным)
func NewRESTClient(baseURL, issuerID string, hc *http.Client) *RESTClient {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if hc == nil {
		hc = &http.Client{Timeout: restTimeout}
	}
	return &RESTClient{base: strings.TrimRight(baseURL, "/"), issuerID: issuerID, hc: hc}
}

// NewRESTClientFromCredentials авторизует клиент ключом сервисного аккаунта
func NewRESTClientFromCredentials(ctx context.Context, baseURL, issuerID string, credentialsJSON []byte) (*RESTClient, error) {
	creds, err := googleoauth.CredentialsFromJSON(ctx, credentialsJSON, IssuerScope)
	if err != nil {
		return nil, fmt.Errorf("google credentials: %w", err)
	}
	hc := oauth2.NewClient(ctx, creds.TokenSource)
	hc.Timeout = restTimeout
	return NewRESTClient(baseURL, issuerID, hc), nil
}

type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type listResponse[T any] struct {
	Resources  []T `json:"resources"`
	Pagination struct {
		NextPageToken string `json:"nextPageToken"`
	} `json:"pagination"`
}

// listAll идёт по страницам, пока nextPageToken не пуст
func listAll[T any](ctx context.Context, c *RESTClient, path string) ([]T, error) {
	var (
		out   []T
		token string
	)
	for {
		p := path
		if token != "" {
			p += "&token=" + url.QueryEscape(token)
		}
		var page listResponse[T]
		if _, err := c.do(ctx, http.MethodGet, p, nil, &page); err != nil {
			return nil, err
		}
		out = append(out, page.Resources...)
		next := page.Pagination.NextPageToken
		if next == "" {
			return out, nil
		}
		if next == token {
			return nil, apperrors.PlatformCallf("google wallet api repeated page token for %s", path)
		}
		token = next
	}
}

func (c *RESTClient) do(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+"/"+path, body)
	if err != nil {
		return 0, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return resp.StatusCode, err
	}
	if resp.StatusCode >= 300 {
		var e apiErrorBody
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &e) == nil && e.Error.Message != "" {
			msg = e.Error.Message
		}
		if resp.StatusCode == http.StatusNotFound {
			return resp.StatusCode, apperrors.NotFound(msg)
		}
		return resp.StatusCode, apperrors.PlatformCallf("google wallet api %d: %s", resp.StatusCode, msg)
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return resp.StatusCode, nil
}

// insert: 409 означает, что ресурс уже создан, это не ошибка
func (c *RESTClient) insert(ctx context.Context, resource string, v any) error {
	status, err := c.do(ctx, http.MethodPost, resource, v, nil)
	if status == http.StatusConflict {
		return nil
	}
	return err
}

func (c *RESTClient) InsertClass(ctx context.Context, cl models.GoogleWalletClass) error {
	return c.insert(ctx, classResource, cl)
}

func (c *RESTClient) InsertObject(ctx context.Context, o models.GoogleWalletObject) error {
	return c.insert(ctx, objectResource, o)
}

func (c *RESTClient) GetObject(ctx context.Context, id string) (models.GoogleWalletObject, error) {
	var o models.GoogleWalletObject
	_, err := c.do(ctx, http.MethodGet, objectResource+"/"+url.PathEscape(id), nil, &o)
	return o, err
}

func (c *RESTClient) PatchObject(ctx context.Context, id string, patch map[string]any) (models.GoogleWalletObject, error) {
	var o models.GoogleWalletObject
	_, err := c.do(ctx, http.MethodPatch, objectResource+"/"+url.PathEscape(id), patch, &o)
	return o, err
}

func (c *RESTClient) ExpireObject(ctx context.Context, id string) error {
	_, err := c.PatchObject(ctx, id, map[string]any{"state": string(models.StateExpired)})
	return err
}

// ListObjects обходит все страницы классов эмитента и их объектов
func (c *RESTClient) ListObjects(ctx context.Context) ([]ObjectEntry, error) {
	if c.issuerID == "" {
		return nil, apperrors.PlatformCallf("google wallet issuer id is not configured")
	}
	classes, err := listAll[models.GoogleWalletClass](ctx, c, classResource+"?issuerId="+url.QueryEscape(c.issuerID))
	if err != nil {
		return nil, err
	}
	out := []ObjectEntry{}
	for _, cl := range classes {
		objects, err := listAll[models.GoogleWalletObject](ctx, c, objectResource+"?classId="+url.QueryEscape(cl.ID))
		if err != nil {
			return nil, err
		}
		for _, o := range objects {
			out = append(out, ObjectEntry{Object: o, IssuerName: cl.IssuerName})
		}
	}
	return out, nil
}
