package apple

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/vbncursed/vkr/wallet-service/internal/capability"
	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/pass"
)

type fakeLibrary struct {
	readOnly bool
	down     bool
	addErr   error
	passes   []models.LibraryPass
	addCalls int
}

func (f *fakeLibrary) Available(context.Context) bool    { return !f.down }
func (f *fakeLibrary) CanAddPasses(context.Context) bool { return !f.down && !f.readOnly }

func (f *fakeLibrary) AddPass(_ context.Context, p models.LibraryPass) error {
	f.addCalls++
	if f.addErr != nil {
		return f.addErr
	}
	f.passes = append(f.passes, p)
	return nil
}

func (f *fakeLibrary) Passes(context.Context) ([]models.LibraryPass, error) {
	return f.passes, nil
}

func (f *fakeLibrary) FindPass(_ context.Context, serial string) (models.LibraryPass, error) {
	for _, p := range f.passes {
		if p.SerialNumber == serial {
			return p, nil
		}
	}
	return models.LibraryPass{}, apperrors.ErrNotFound
}

var ios18 = capability.Device{Platform: models.PlatformIOS, OSVersion: "18.2"}

func membership() pass.Attributes {
	return pass.Attributes{
		"passTypeIdentifier": "pass.com.example",
		"serialNumber":       "SN-1",
		"teamIdentifier":     "TEAM1",
		"organizationName":   "Example Org",
		"description":        "Membership",
		"passStyle":          "generic",
		"webServiceURL":      "https://passes.example.com",
		"primaryFields": []any{
			map[string]any{"key": "name", "label": "Name", "value": "John Doe"},
		},
	}
}

func TestAddPKPassStoresDescriptor(t *testing.T) {
	lib := &fakeLibrary{}
	w := New(lib)

	id, err := w.AddPass(context.Background(), ios18, models.KindPKPass, membership())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id != "SN-1" || len(lib.passes) != 1 {
		t.Fatalf("unexpected id %q or library %v", id, lib.passes)
	}
	stored := lib.passes[0]
	if stored.Kind != models.KindPKPass || stored.WebServiceURL != "https://passes.example.com" || stored.OrganizationName != "Example Org" {
		t.Fatalf("unexpected stored row %+v", stored)
	}
	var doc map[string]any
	if err := json.Unmarshal(stored.Descriptor, &doc); err != nil {
		t.Fatalf("descriptor is not json: %v", err)
	}
	if doc["formatVersion"] != float64(1) || doc["generic"] == nil {
		t.Fatalf("unexpected descriptor %v", doc)
	}
}

func TestAddPassMissingFieldNeverCallsLibrary(t *testing.T) {
	lib := &fakeLibrary{}
	attrs := membership()
	delete(attrs, "teamIdentifier")

	_, err := New(lib).AddPass(context.Background(), ios18, models.KindPKPass, attrs)
	if !errors.Is(err, apperrors.ErrMissingField) || apperrors.FieldOf(err) != "teamIdentifier" {
		t.Fatalf("expected missing teamIdentifier, got %v", err)
	}
	if lib.addCalls != 0 {
		t.Fatalf("library called %d times", lib.addCalls)
	}
}

func TestAddPassReadOnlyLibrary(t *testing.T) {
	_, err := New(&fakeLibrary{readOnly: true}).AddPass(context.Background(), ios18, models.KindPKPass, membership())
	if err == nil || err.Error() != "Cannot add passes to library" || !errors.Is(err, apperrors.ErrPlatformCallFailed) {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestAddPassLibraryFailureIsPlatformCallFailed(t *testing.T) {
	_, err := New(&fakeLibrary{addErr: errors.New("duplicate serial")}).AddPass(context.Background(), ios18, models.KindPKPass, membership())
	if !errors.Is(err, apperrors.ErrPlatformCallFailed) || err.Error() != "duplicate serial" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestVariantGating(t *testing.T) {
	old := capability.Device{Platform: models.PlatformIOS, OSVersion: "15.4"}
	_, err := New(&fakeLibrary{}).AddPass(context.Background(), old, models.KindShareable, membership())
	if err == nil || err.Error() != "PKShareablePass requires iOS 16.0 or later" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestStubAddsValidateFirst(t *testing.T) {
	w := New(&fakeLibrary{})
	ctx := context.Background()

	attrs := membership()
	attrs["balance"] = 25.5
	attrs["currencyCode"] = "USD"
	_, err := w.AddPass(ctx, ios18, models.KindStoredValue, attrs)
	if err == nil || err.Error() != "PKStoredValuePass creation not yet implemented" {
		t.Fatalf("unexpected stored value result %v", err)
	}

	delete(attrs, "currencyCode")
	_, err = w.AddPass(ctx, ios18, models.KindStoredValue, attrs)
	if apperrors.FieldOf(err) != "currencyCode" {
		t.Fatalf("expected validation before stub, got %v", err)
	}

	identity := membership()
	identity["documentType"] = "passport"
	identity["issuingAuthority"] = "State"
	identity["documentNumber"] = "X1"
	identity["personalInfo"] = map[string]any{"givenName": "John", "familyName": "Doe"}
	_, err = w.AddPass(ctx, ios18, models.KindIdentityDocument, identity)
	if err == nil || !strings.Contains(err.Error(), "special entitlements") {
		t.Fatalf("unexpected identity result %v", err)
	}
}

func TestRemovePass(t *testing.T) {
	lib := &fakeLibrary{passes: []models.LibraryPass{{SerialNumber: "SN-1", Kind: models.KindPKPass}}}
	w := New(lib)
	ctx := context.Background()

	_, err := w.RemovePass(ctx, ios18, models.KindPKPass, "SN-1")
	if err == nil || err.Error() != "Pass removal must be done by the user through the Wallet app" {
		t.Fatalf("unexpected error %v", err)
	}
	_, err = w.RemovePass(ctx, ios18, models.KindPKPass, "missing")
	if err == nil || err.Error() != "Pass not found" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestUpdateStubs(t *testing.T) {
	w := New(&fakeLibrary{})
	ctx := context.Background()
	for kind, msg := range updateMessages {
		_, err := w.UpdatePass(ctx, ios18, kind, "SN-1", pass.Attributes{"description": "new"})
		if err == nil || err.Error() != msg {
			t.Errorf("%s: got %v, want %q", kind, err, msg)
		}
	}
	_, err := w.UpdatePass(ctx, ios18, models.KindPKPass, "SN-1", pass.Attributes{"description": []any{1}})
	if !errors.Is(err, apperrors.ErrInvalidField) {
		t.Fatalf("malformed partial input must fail decoding, got %v", err)
	}
}

func TestListAndGetPasses(t *testing.T) {
	lib := &fakeLibrary{passes: []models.LibraryPass{
		{SerialNumber: "a", Kind: models.KindPKPass, Description: "Ticket"},
		{SerialNumber: "b", Kind: models.KindSecureElement, Description: "Card", PassTypeIdentifier: "pass.x", WebServiceURL: "https://x"},
		{SerialNumber: "c", Kind: models.KindStoredValue, Description: "Transit"},
	}}
	w := New(lib)
	ctx := context.Background()

	list, err := w.ListPasses(ctx, ios18)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	wantTypes := []string{"PKPass", "PKSecureElementPass", "PKPass"}
	for i, p := range list.Passes {
		if p.Type != wantTypes[i] {
			t.Fatalf("pass %s: type %s, want %s", p.ID, p.Type, wantTypes[i])
		}
	}

	found, err := w.GetPass(ctx, ios18, "b")
	if err != nil || !found.Success || found.Pass["passURL"] != "https://x" || found.Pass["isRemotePass"] != false {
		t.Fatalf("unexpected lookup %+v, %v", found, err)
	}
	missing, err := w.GetPass(ctx, ios18, "zzz")
	if err != nil || missing.Success || missing.Pass != nil || missing.Error != "Pass not found" {
		t.Fatalf("unexpected missing lookup %+v, %v", missing, err)
	}
}

func TestGoogleOperationsUnavailableOnIOS(t *testing.T) {
	w := New(&fakeLibrary{})
	ctx := context.Background()
	errs := []error{}
	_, err := w.CreateGoogleClass(ctx, ios18, models.GoogleWalletClass{ID: "c"})
	errs = append(errs, err)
	_, err = w.CreateGoogleObject(ctx, ios18, models.GoogleWalletObject{ID: "o"})
	errs = append(errs, err)
	_, _, err = w.AddToGoogleWallet(ctx, ios18, models.GoogleWalletClass{}, models.GoogleWalletObject{})
	errs = append(errs, err)
	_, err = w.UpdateGoogleObject(ctx, ios18, "o", nil)
	errs = append(errs, err)
	_, err = w.RemoveGoogleObject(ctx, ios18, "o")
	errs = append(errs, err)
	for i, err := range errs {
		if err == nil || !strings.Contains(err.Error(), "not available on iOS") {
			t.Errorf("operation %d: unexpected error %v", i, err)
		}
	}
}

func TestNFCCredential(t *testing.T) {
	w := New(&fakeLibrary{})
	ctx := context.Background()
	_, err := w.CreateNFCCredential(ctx, capability.Device{Platform: models.PlatformIOS, OSVersion: "17.5"}, nil)
	if err == nil || err.Error() != "NFC & SE Platform requires iOS 18.1 or later" {
		t.Fatalf("unexpected error %v", err)
	}
	_, err = w.CreateNFCCredential(ctx, ios18, nil)
	if !errors.Is(err, apperrors.ErrNotYetImplemented) {
		t.Fatalf("unexpected error %v", err)
	}
	if !w.IsNFCSEPlatformAvailable(ctx, ios18) {
		t.Fatal("18.2 must report NFC & SE")
	}
}
