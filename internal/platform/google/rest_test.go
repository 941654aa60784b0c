package google

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"

	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

type walletAPI struct {
	srv        *httptest.Server
	objects    map[string]models.GoogleWalletObject
	objectBody []byte
	pageSize   int
}

func newWalletAPI(t *testing.T) *walletAPI {
	t.Helper()
	api := &walletAPI{objects: map[string]models.GoogleWalletObject{}, pageSize: 1}
	objects := api.objects
	mux := http.NewServeMux()
	mux.HandleFunc("POST /genericClass", func(w http.ResponseWriter, r *http.Request) {
		var c models.GoogleWalletClass
		_ = json.NewDecoder(r.Body).Decode(&c)
		if c.ID == "issuer.exists" {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error":{"code":409,"message":"already exists"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(c)
	})
	mux.HandleFunc("GET /genericClass", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("issuerId") != "3388000000012345" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("token") == "" {
			_, _ = w.Write([]byte(`{"resources":[{"id":"issuer.class123","issuerName":"Example Issuer"}],"pagination":{"nextPageToken":"c2"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"resources":[{"id":"issuer.class456","issuerName":"Second Issuer"}]}`))
	})
	mux.HandleFunc("POST /genericObject", func(w http.ResponseWriter, r *http.Request) {
		api.objectBody, _ = io.ReadAll(r.Body)
		var o models.GoogleWalletObject
		_ = json.Unmarshal(api.objectBody, &o)
		if o.ClassID == "missing.class" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"class not found"}}`))
			return
		}
		objects[o.ID] = o
		_ = json.NewEncoder(w).Encode(o)
	})
	mux.HandleFunc("GET /genericObject", func(w http.ResponseWriter, r *http.Request) {
		var ids []string
		for id, o := range objects {
			if o.ClassID == r.URL.Query().Get("classId") {
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)
		start, _ := strconv.Atoi(r.URL.Query().Get("token"))
		end := min(start+api.pageSize, len(ids))
		page := map[string]any{"resources": []models.GoogleWalletObject{}}
		for _, id := range ids[min(start, end):end] {
			page["resources"] = append(page["resources"].([]models.GoogleWalletObject), objects[id])
		}
		if end < len(ids) {
			page["pagination"] = map[string]string{"nextPageToken": strconv.Itoa(end)}
		}
		_ = json.NewEncoder(w).Encode(page)
	})
	mux.HandleFunc("GET /genericObject/{id}", func(w http.ResponseWriter, r *http.Request) {
		o, ok := objects[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":404,"message":"object not found"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(o)
	})
	mux.HandleFunc("PATCH /genericObject/{id}", func(w http.ResponseWriter, r *http.Request) {
		o, ok := objects[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var patch map[string]any
		_ = json.NewDecoder(r.Body).Decode(&patch)
		if s, ok := patch["state"].(string); ok {
			o.State = models.ObjectState(s)
		}
		objects[o.ID] = o
		_ = json.NewEncoder(w).Encode(o)
	})
	api.srv = httptest.NewServer(mux)
	t.Cleanup(api.srv.Close)
	return api
}

func TestRESTClientRoundTrip(t *testing.T) {
	api := newWalletAPI(t)
	objects := api.objects
	c := NewRESTClient(api.srv.URL+"/", "3388000000012345", api.srv.Client())
	ctx := context.Background()

	if err := c.InsertClass(ctx, models.GoogleWalletClass{ID: "issuer.class123", IssuerName: "Example Issuer"}); err != nil {
		t.Fatalf("insert class: %v", err)
	}
	if err := c.InsertClass(ctx, models.GoogleWalletClass{ID: "issuer.exists", IssuerName: "x"}); err != nil {
		t.Fatalf("existing class must not fail: %v", err)
	}
	obj := models.GoogleWalletObject{ID: "issuer.object123", ClassID: "issuer.class123", State: models.StateActive}
	if err := c.InsertObject(ctx, obj); err != nil {
		t.Fatalf("insert object: %v", err)
	}

	got, err := c.GetObject(ctx, "issuer.object123")
	if err != nil || got.ClassID != "issuer.class123" {
		t.Fatalf("get: %+v, %v", got, err)
	}
	if err := c.ExpireObject(ctx, "issuer.object123"); err != nil {
		t.Fatalf("expire: %v", err)
	}
	if objects["issuer.object123"].State != models.StateExpired {
		t.Fatalf("object not expired: %+v", objects["issuer.object123"])
	}

	entries, err := c.ListObjects(ctx)
	if err != nil || len(entries) != 1 || entries[0].IssuerName != "Example Issuer" {
		t.Fatalf("list: %+v, %v", entries, err)
	}
}

func TestRESTClientErrors(t *testing.T) {
	api := newWalletAPI(t)
	srv := api.srv
	c := NewRESTClient(srv.URL, "3388000000012345", srv.Client())
	ctx := context.Background()

	_, err := c.GetObject(ctx, "nope")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	err = c.InsertObject(ctx, models.GoogleWalletObject{ID: "o", ClassID: "missing.class"})
	if !errors.Is(err, apperrors.ErrPlatformCallFailed) || err.Error() != "google wallet api 400: class not found" {
		t.Fatalf("unexpected error %v", err)
	}

	noIssuer := NewRESTClient(srv.URL, "", srv.Client())
	if _, err := noIssuer.ListObjects(ctx); err == nil {
		t.Fatal("listing without issuer id must fail")
	}
}

func TestRESTClientSendsCardTitleAndHeader(t *testing.T) {
	api := newWalletAPI(t)
	c := NewRESTClient(api.srv.URL, "3388000000012345", api.srv.Client())
	obj := models.GoogleWalletObject{
		ID:        "issuer.object123",
		ClassID:   "issuer.class123",
		State:     models.StateActive,
		CardTitle: &models.LocalizedString{DefaultValue: models.TranslatedString{Language: "en-US", Value: "Example Card"}},
		Header:    &models.LocalizedString{DefaultValue: models.TranslatedString{Language: "en-US", Value: "John Doe"}},
	}
	if err := c.InsertObject(context.Background(), obj); err != nil {
		t.Fatalf("insert: %v", err)
	}
	body := string(api.objectBody)
	for _, want := range []string{`"cardTitle":{"defaultValue":{"language":"en-US","value":"Example Card"}}`, `"header":{"defaultValue":{"language":"en-US","value":"John Doe"}}`} {
		if !strings.Contains(body, want) {
			t.Fatalf("request body %s missing %s", body, want)
		}
	}
	got, err := c.GetObject(context.Background(), obj.ID)
	if err != nil || got.CardTitle == nil || got.Header == nil || got.Header.DefaultValue.Value != "John Doe" {
		t.Fatalf("get: %+v, %v", got, err)
	}
}

func TestRESTClientListFollowsPages(t *testing.T) {
	api := newWalletAPI(t)
	c := NewRESTClient(api.srv.URL, "3388000000012345", api.srv.Client())
	ctx := context.Background()
	for _, id := range []string{"issuer.a", "issuer.b", "issuer.c"} {
		if err := c.InsertObject(ctx, models.GoogleWalletObject{ID: id, ClassID: "issuer.class123", State: models.StateActive}); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}
	if err := c.InsertObject(ctx, models.GoogleWalletObject{ID: "issuer.d", ClassID: "issuer.class456", State: models.StateActive}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	entries, err := c.ListObjects(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var ids []string
	for _, e := range entries {
		ids = append(ids, e.Object.ID+"/"+e.IssuerName)
	}
	want := "issuer.a/Example Issuer,issuer.b/Example Issuer,issuer.c/Example Issuer,issuer.d/Second Issuer"
	if got := strings.Join(ids, ","); got != want {
		t.Fatalf("entries = %s, want %s", got, want)
	}
}
