package google

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vbncursed/vkr/wallet-service/internal/capability"
	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/pass"
)

type fakeClient struct {
	classErr     error
	objectErr    error
	classCalls   int
	objectCalls  int
	objects      map[string]models.GoogleWalletObject
	issuerByCls  map[string]string
	lastPatch    map[string]any
	expiredCalls int
}

func newFakeClient() *fakeClient {
	return &fakeClient{objects: map[string]models.GoogleWalletObject{}, issuerByCls: map[string]string{}}
}

func (f *fakeClient) InsertClass(_ context.Context, c models.GoogleWalletClass) error {
	f.classCalls++
	if f.classErr != nil {
		return f.classErr
	}
	f.issuerByCls[c.ID] = c.IssuerName
	return nil
}

func (f *fakeClient) InsertObject(_ context.Context, o models.GoogleWalletObject) error {
	f.objectCalls++
	if f.objectErr != nil {
		return f.objectErr
	}
	f.objects[o.ID] = o
	return nil
}

func (f *fakeClient) GetObject(_ context.Context, id string) (models.GoogleWalletObject, error) {
	o, ok := f.objects[id]
	if !ok {
		return o, apperrors.ErrNotFound
	}
	return o, nil
}

func (f *fakeClient) PatchObject(_ context.Context, id string, patch map[string]any) (models.GoogleWalletObject, error) {
	o, ok := f.objects[id]
	if !ok {
		return o, apperrors.ErrNotFound
	}
	f.lastPatch = patch
	if s, ok := patch["state"].(string); ok {
		o.State = models.ObjectState(s)
		f.objects[id] = o
	}
	return o, nil
}

func (f *fakeClient) ExpireObject(ctx context.Context, id string) error {
	f.expiredCalls++
	_, err := f.PatchObject(ctx, id, map[string]any{"state": string(models.StateExpired)})
	return err
}

func (f *fakeClient) ListObjects(context.Context) ([]ObjectEntry, error) {
	out := []ObjectEntry{}
	for _, o := range f.objects {
		out = append(out, ObjectEntry{Object: o, IssuerName: f.issuerByCls[o.ClassID]})
	}
	return out, nil
}

var android = capability.Device{Platform: models.PlatformAndroid, WalletInstalled: true}

func exampleClass() models.GoogleWalletClass {
	return models.GoogleWalletClass{ID: "issuer.class123", IssuerName: "Example Issuer"}
}

func exampleObject() models.GoogleWalletObject {
	return models.GoogleWalletObject{ID: "issuer.object123", ClassID: "issuer.class123"}
}

func TestAddToGoogleWalletExampleScenario(t *testing.T) {
	client := newFakeClient()
	w := New(client, nil)

	id, saveURL, err := w.AddToGoogleWallet(context.Background(), android, exampleClass(), exampleObject())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id != "issuer.object123" {
		t.Fatalf("unexpected id %q", id)
	}
	if !strings.HasPrefix(saveURL, "https://pay.google.com/gp/v/save/") || !strings.HasSuffix(saveURL, "issuer.object123") {
		t.Fatalf("unexpected save url %q", saveURL)
	}
	if client.objects["issuer.object123"].State != models.StateActive {
		t.Fatalf("object must default to ACTIVE, got %q", client.objects["issuer.object123"].State)
	}
}

func TestAddToGoogleWalletClassFailureShortCircuits(t *testing.T) {
	client := newFakeClient()
	client.classErr = errors.New("class rejected by issuer")
	w := New(client, nil)

	id, saveURL, err := w.AddToGoogleWallet(context.Background(), android, exampleClass(), exampleObject())
	if err == nil || err.Error() != "class rejected by issuer" {
		t.Fatalf("expected class error verbatim, got %v", err)
	}
	if client.objectCalls != 0 {
		t.Fatalf("object port called %d times", client.objectCalls)
	}
	if saveURL != "" || id != "issuer.object123" {
		t.Fatalf("unexpected id %q / url %q", id, saveURL)
	}
}

func TestAddToGoogleWalletObjectFailureShortCircuits(t *testing.T) {
	client := newFakeClient()
	client.objectErr = errors.New("object rejected")
	_, saveURL, err := New(client, nil).AddToGoogleWallet(context.Background(), android, exampleClass(), exampleObject())
	if err == nil || err.Error() != "object rejected" || saveURL != "" {
		t.Fatalf("unexpected result %q, %v", saveURL, err)
	}
	if client.classCalls != 1 || client.objectCalls != 1 {
		t.Fatalf("unexpected call counts class=%d object=%d", client.classCalls, client.objectCalls)
	}
}

func TestCreateValidation(t *testing.T) {
	client := newFakeClient()
	w := New(client, nil)
	ctx := context.Background()

	_, err := w.CreateGoogleClass(ctx, android, models.GoogleWalletClass{ID: "c"})
	if apperrors.FieldOf(err) != "issuerName" {
		t.Fatalf("expected missing issuerName, got %v", err)
	}
	_, err = w.CreateGoogleObject(ctx, android, models.GoogleWalletObject{ID: "o"})
	if apperrors.FieldOf(err) != "classId" {
		t.Fatalf("expected missing classId, got %v", err)
	}
	_, err = w.CreateGoogleObject(ctx, android, models.GoogleWalletObject{ID: "o", ClassID: "c", State: "LOST"})
	if !errors.Is(err, apperrors.ErrInvalidField) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if client.classCalls != 0 || client.objectCalls != 0 {
		t.Fatal("invalid input reached the client")
	}
}

func TestUpdateAndRemoveObject(t *testing.T) {
	client := newFakeClient()
	w := New(client, nil)
	ctx := context.Background()
	if _, _, err := w.AddToGoogleWallet(ctx, android, exampleClass(), exampleObject()); err != nil {
		t.Fatalf("add: %v", err)
	}

	if _, err := w.UpdateGoogleObject(ctx, android, "issuer.object123", map[string]any{"classId": "other"}); !errors.Is(err, apperrors.ErrInvalidField) {
		t.Fatalf("classId must be immutable, got %v", err)
	}
	if _, err := w.UpdateGoogleObject(ctx, android, "issuer.object123", map[string]any{"state": "BROKEN"}); !errors.Is(err, apperrors.ErrInvalidField) {
		t.Fatalf("unknown state must be rejected, got %v", err)
	}
	id, err := w.UpdateGoogleObject(ctx, android, "issuer.object123", map[string]any{"state": "COMPLETED"})
	if err != nil || id != "issuer.object123" {
		t.Fatalf("update: %q, %v", id, err)
	}

	if _, err := w.UpdateGoogleObject(ctx, android, "missing", map[string]any{"state": "COMPLETED"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("missing object: %v", err)
	}

	if _, err := w.RemoveGoogleObject(ctx, android, "issuer.object123"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if client.objects["issuer.object123"].State != models.StateExpired {
		t.Fatalf("expected EXPIRED, got %s", client.objects["issuer.object123"].State)
	}
	_, err = w.RemoveGoogleObject(ctx, android, "missing")
	if err == nil || err.Error() != "Pass not found" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestPassManagement(t *testing.T) {
	client := newFakeClient()
	w := New(client, nil)
	ctx := context.Background()
	if _, _, err := w.AddToGoogleWallet(ctx, android, exampleClass(), exampleObject()); err != nil {
		t.Fatalf("add: %v", err)
	}

	list, err := w.ListPasses(ctx, android)
	if err != nil || len(list.Passes) != 1 {
		t.Fatalf("list: %+v, %v", list, err)
	}
	if p := list.Passes[0]; p.ID != "issuer.object123" || p.Type != "Generic" || p.Description != "Example Issuer" {
		t.Fatalf("unexpected summary %+v", p)
	}

	found, err := w.GetPass(ctx, android, "issuer.object123")
	if err != nil || !found.Success || found.Pass["classId"] != "issuer.class123" || found.Pass["state"] != "ACTIVE" {
		t.Fatalf("unexpected lookup %+v, %v", found, err)
	}
	missing, err := w.GetPass(ctx, android, "nope")
	if err != nil || missing.Success || missing.Pass != nil || missing.Error != "Pass not found" {
		t.Fatalf("unexpected lookup %+v, %v", missing, err)
	}

	if id, err := w.PresentPass(ctx, android, "issuer.object123"); err != nil || id != "issuer.object123" {
		t.Fatalf("present: %q, %v", id, err)
	}
	if _, err := w.PresentPass(ctx, android, "nope"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("present missing: %v", err)
	}
}

func TestPassKitOperationsUnavailableOnAndroid(t *testing.T) {
	w := New(newFakeClient(), nil)
	ctx := context.Background()
	for _, kind := range models.PassKinds {
		var errs []error
		_, err := w.AddPass(ctx, android, kind, pass.Attributes{})
		errs = append(errs, err)
		_, err = w.UpdatePass(ctx, android, kind, "id", pass.Attributes{})
		errs = append(errs, err)
		_, err = w.RemovePass(ctx, android, kind, "id")
		errs = append(errs, err)
		for _, err := range errs {
			if err == nil || !strings.Contains(err.Error(), "not available on Android") || !strings.HasPrefix(err.Error(), string(kind)) {
				t.Fatalf("%s: unexpected error %v", kind, err)
			}
		}
	}
	if _, err := w.UpdateStoredValueBalance(ctx, android, "id", 1); err == nil || !strings.Contains(err.Error(), "not available on Android") {
		t.Fatalf("unexpected balance error %v", err)
	}
	if _, err := w.SharePass(ctx, android, "id", nil); err == nil || !strings.Contains(err.Error(), "not available on Android") {
		t.Fatalf("unexpected share error %v", err)
	}
	if w.IsNFCSEPlatformAvailable(ctx, android) {
		t.Fatal("android never reports NFC & SE")
	}
}

func TestAvailability(t *testing.T) {
	w := New(newFakeClient(), nil)
	ctx := context.Background()
	a := w.IsWalletAvailable(ctx, android)
	if !a.IsAvailable || !a.CanAddPasses || len(a.SupportedPassTypes) != 7 {
		t.Fatalf("unexpected availability %+v", a)
	}
	if w.CanAddPasses(ctx, capability.Device{Platform: models.PlatformAndroid}) {
		t.Fatal("no wallet app means no adding")
	}
}

func TestUpdateObjectRejectsMistypedValues(t *testing.T) {
	client := newFakeClient()
	w := New(client, nil)
	ctx := context.Background()
	if _, _, err := w.AddToGoogleWallet(ctx, android, exampleClass(), exampleObject()); err != nil {
		t.Fatalf("add: %v", err)
	}

	tests := []struct {
		name  string
		patch map[string]any
		field string
	}{
		{"nil patch", nil, "patch"},
		{"string barcode", map[string]any{"barcode": "not-an-object"}, "barcode"},
		{"numeric modules", map[string]any{"textModulesData": 5}, "textModulesData"},
		{"unknown key", map[string]any{"colour": "red"}, "patch"},
		{"null state", map[string]any{"state": nil}, "state"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := w.UpdateGoogleObject(ctx, android, "issuer.object123", tt.patch)
			if !errors.Is(err, apperrors.ErrInvalidField) || apperrors.FieldOf(err) != tt.field {
				t.Fatalf("expected invalid %s, got %v", tt.field, err)
			}
		})
	}
	if client.lastPatch != nil {
		t.Fatalf("rejected patch reached the client: %v", client.lastPatch)
	}
}

func TestApplyPatchMergesOverObject(t *testing.T) {
	o := exampleObject()
	o.State = models.StateActive
	got, err := ApplyPatch(o, map[string]any{
		"barcode": map[string]any{"type": "QR_CODE", "value": "123"},
		"state":   "COMPLETED",
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.ID != o.ID || got.ClassID != o.ClassID || got.State != models.StateCompleted {
		t.Fatalf("unexpected object %+v", got)
	}
	if got.Barcode == nil || got.Barcode.Value != "123" {
		t.Fatalf("barcode not merged: %+v", got.Barcode)
	}
}

func TestAddToGoogleWalletSignedLinkKeepsObjectID(t *testing.T) {
	sa, _ := testServiceAccount(t)
	links, err := NewSaveLinkSigner(sa, nil)
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	_, saveURL, err := New(newFakeClient(), links).AddToGoogleWallet(context.Background(), android, exampleClass(), exampleObject())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.HasPrefix(saveURL, SaveURLBase) || !strings.HasSuffix(saveURL, "#issuer.object123") {
		t.Fatalf("unexpected save url %q", saveURL)
	}
}
