package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vbncursed/vkr/wallet-service/internal/capability"
	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
	"github.com/vbncursed/vkr/wallet-service/internal/events"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/pass"
	"github.com/vbncursed/vkr/wallet-service/internal/platform/apple"
	"github.com/vbncursed/vkr/wallet-service/internal/platform/google"
)

type memLibrary struct {
	down   bool
	passes []models.LibraryPass
}

func (m *memLibrary) Available(context.Context) bool    { return !m.down }
func (m *memLibrary) CanAddPasses(context.Context) bool { return !m.down }

func (m *memLibrary) AddPass(_ context.Context, p models.LibraryPass) error {
	m.passes = append(m.passes, p)
	return nil
}

func (m *memLibrary) Passes(context.Context) ([]models.LibraryPass, error) { return m.passes, nil }

func (m *memLibrary) FindPass(_ context.Context, serial string) (models.LibraryPass, error) {
	for _, p := range m.passes {
		if p.SerialNumber == serial {
			return p, nil
		}
	}
	return models.LibraryPass{}, apperrors.ErrNotFound
}

type memGoogle struct {
	classErr    error
	objectCalls int
	objects     map[string]models.GoogleWalletObject
}

func (m *memGoogle) InsertClass(context.Context, models.GoogleWalletClass) error { return m.classErr }

func (m *memGoogle) InsertObject(_ context.Context, o models.GoogleWalletObject) error {
	m.objectCalls++
	m.objects[o.ID] = o
	return nil
}

func (m *memGoogle) GetObject(_ context.Context, id string) (models.GoogleWalletObject, error) {
	o, ok := m.objects[id]
	if !ok {
		return o, apperrors.ErrNotFound
	}
	return o, nil
}

func (m *memGoogle) PatchObject(ctx context.Context, id string, _ map[string]any) (models.GoogleWalletObject, error) {
	return m.GetObject(ctx, id)
}

func (m *memGoogle) ExpireObject(ctx context.Context, id string) error {
	_, err := m.GetObject(ctx, id)
	return err
}

func (m *memGoogle) ListObjects(context.Context) ([]google.ObjectEntry, error) { return nil, nil }

type observation struct{ platform, operation, outcome string }

type recorder struct {
	mu  sync.Mutex
	obs []observation
}

func (r *recorder) ObserveOperation(platform, operation, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.obs = append(r.obs, observation{platform, operation, outcome})
}

type fixture struct {
	svc    *Service
	lib    *memLibrary
	google *memGoogle
	rec    *recorder
	events <-chan events.Event
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	lib := &memLibrary{}
	g := &memGoogle{objects: map[string]models.GoogleWalletObject{}}
	rec := &recorder{}
	em := events.NewEmitter()
	ch, cancel := em.Subscribe(16)
	t.Cleanup(cancel)
	svc := New(em, rec, apple.New(lib), google.New(g, nil))
	return fixture{svc: svc, lib: lib, google: g, rec: rec, events: ch}
}

func (f fixture) nextEvent(t *testing.T) events.Event {
	t.Helper()
	select {
	case ev := <-f.events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event emitted")
	}
	return events.Event{}
}

func (f fixture) noEvent(t *testing.T) {
	t.Helper()
	select {
	case ev := <-f.events:
		t.Fatalf("unexpected event %+v", ev)
	default:
	}
}

var (
	iosDev     = capability.Device{Platform: models.PlatformIOS, OSVersion: "17.4"}
	androidDev = capability.Device{Platform: models.PlatformAndroid, WalletInstalled: true}
)

func ticket() pass.Attributes {
	return pass.Attributes{
		"passTypeIdentifier": "pass.com.example.event",
		"serialNumber":       "E-1",
		"teamIdentifier":     "TEAM",
		"organizationName":   "Arena",
		"description":        "Concert",
		"passStyle":          "eventTicket",
	}
}

func TestAddPassEmitsOnSuccess(t *testing.T) {
	f := newFixture(t)
	res, err := f.svc.AddPass(context.Background(), iosDev, models.KindPKPass, ticket())
	if err != nil || !res.Success || res.PassID != "E-1" {
		t.Fatalf("unexpected result %+v, %v", res, err)
	}
	ev := f.nextEvent(t)
	p := ev.Payload.(events.PassPayload)
	if ev.Name != events.PassAdded || ev.Platform != models.PlatformIOS || p.PassID != "E-1" || !p.Success {
		t.Fatalf("unexpected event %+v", ev)
	}
	if got := f.rec.obs[0]; got != (observation{"ios", OpAddPass, "success"}) {
		t.Fatalf("unexpected observation %+v", got)
	}
}

func TestFailedOperationsReturnResultWithoutEvent(t *testing.T) {
	f := newFixture(t)
	attrs := ticket()
	delete(attrs, "serialNumber")
	res, err := f.svc.AddPass(context.Background(), iosDev, models.KindPKPass, attrs)
	if err != nil || res.Success || res.Error != "missing required field: serialNumber" {
		t.Fatalf("unexpected result %+v, %v", res, err)
	}
	f.noEvent(t)
	if f.rec.obs[0].outcome != "missing_field" {
		t.Fatalf("unexpected outcome %+v", f.rec.obs[0])
	}
}

func TestCrossPlatformSymmetry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, kind := range models.PassKinds {
		res, err := f.svc.AddPass(ctx, androidDev, kind, ticket())
		if err != nil || res.Success || !strings.Contains(res.Error, "not available on Android") {
			t.Fatalf("%s on android: %+v, %v", kind, res, err)
		}
	}
	res, err := f.svc.AddToGoogleWallet(ctx, iosDev, models.GoogleWalletClass{ID: "c", IssuerName: "i"}, models.GoogleWalletObject{ID: "o", ClassID: "c"})
	if err != nil || res.Success || !strings.Contains(res.Error, "not available on iOS") {
		t.Fatalf("google on ios: %+v, %v", res, err)
	}
	f.noEvent(t)
}

func TestAddToGoogleWalletEventMatchesResult(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	class := models.GoogleWalletClass{ID: "issuer.class123", IssuerName: "Issuer"}
	obj := models.GoogleWalletObject{ID: "issuer.object123", ClassID: "issuer.class123"}

	res, err := f.svc.AddToGoogleWallet(ctx, androidDev, class, obj)
	if err != nil || !res.Success || res.PassID != "issuer.object123" || !strings.HasSuffix(res.SaveURL, "issuer.object123") {
		t.Fatalf("unexpected result %+v, %v", res, err)
	}
	p := f.nextEvent(t).Payload.(events.PassPayload)
	if p.PassID != res.PassID || p.Success != res.Success {
		t.Fatalf("event %+v disagrees with result %+v", p, res)
	}

	f.google.classErr = errors.New("class quota exceeded")
	res, _ = f.svc.AddToGoogleWallet(ctx, androidDev, class, models.GoogleWalletObject{ID: "issuer.object456", ClassID: "issuer.class123"})
	if res.Success || res.Error != "class quota exceeded" {
		t.Fatalf("unexpected failure result %+v", res)
	}
	p = f.nextEvent(t).Payload.(events.PassPayload)
	if p.Success || p.PassID != "issuer.object456" || p.Error != "class quota exceeded" {
		t.Fatalf("unexpected failure event %+v", p)
	}
	if f.google.objectCalls != 1 {
		t.Fatalf("object port called %d times, want 1", f.google.objectCalls)
	}
}

func TestGoogleUpdateAndRemoveEmit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.google.objects["o1"] = models.GoogleWalletObject{ID: "o1", ClassID: "c1", State: models.StateActive}

	if res, _ := f.svc.UpdateGoogleObject(ctx, androidDev, "o1", map[string]any{"state": "COMPLETED"}); !res.Success {
		t.Fatalf("update: %+v", res)
	}
	if ev := f.nextEvent(t); ev.Name != events.PassUpdated {
		t.Fatalf("unexpected event %s", ev.Name)
	}
	if res, _ := f.svc.RemoveGoogleObject(ctx, androidDev, "o1"); !res.Success || res.PassID != "o1" {
		t.Fatalf("remove: %+v", res)
	}
	if ev := f.nextEvent(t); ev.Name != events.PassRemoved {
		t.Fatalf("unexpected event %s", ev.Name)
	}
}

func TestAvailabilityChangeEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.IsWalletAvailable(ctx, iosDev); err != nil {
		t.Fatal(err)
	}
	f.noEvent(t)

	f.lib.down = true
	a, _ := f.svc.IsWalletAvailable(ctx, iosDev)
	if a.IsAvailable {
		t.Fatal("library is down")
	}
	ev := f.nextEvent(t)
	p := ev.Payload.(events.AvailabilityPayload)
	if ev.Name != events.WalletAvailabilityChanged || p.Available || p.Reason == "" {
		t.Fatalf("unexpected event %+v", ev)
	}

	_, _ = f.svc.IsWalletAvailable(ctx, iosDev)
	f.noEvent(t)
}

func TestUnknownPlatform(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.AddPass(context.Background(), capability.Device{Platform: "web"}, models.KindPKPass, ticket())
	if !errors.Is(err, ErrUnknownPlatform) {
		t.Fatalf("expected ErrUnknownPlatform, got %v", err)
	}
}

func TestGetPassOutcome(t *testing.T) {
	f := newFixture(t)
	lookup, err := f.svc.GetPass(context.Background(), iosDev, "missing")
	if err != nil || lookup.Success || lookup.Error != "Pass not found" {
		t.Fatalf("unexpected lookup %+v, %v", lookup, err)
	}
	if f.rec.obs[0].outcome != "not_found" {
		t.Fatalf("unexpected outcome %+v", f.rec.obs[0])
	}
}

func TestLegacyEvents(t *testing.T) {
	f := newFixture(t)
	f.svc.SetValue("hello")
	if ev := f.nextEvent(t); ev.Name != events.Change || ev.Payload.(events.ChangePayload).Value != "hello" {
		t.Fatalf("unexpected event %+v", ev)
	}
	f.svc.ViewLoaded("https://example.com")
	if ev := f.nextEvent(t); ev.Name != events.Load || ev.Payload.(events.LoadPayload).URL != "https://example.com" {
		t.Fatalf("unexpected event %+v", ev)
	}
}
