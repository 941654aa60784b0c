package service

import (
	"context"
	"sync"

	"github.com/vbncursed/vkr/wallet-service/internal/capability"
	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
	"github.com/vbncursed/vkr/wallet-service/internal/events"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
	"github.com/vbncursed/vkr/wallet-service/internal/pass"
	"github.com/vbncursed/vkr/wallet-service/internal/result"
)

// Service направляет вызовы в фасад платформы устройства, нормализует результат
// и рассылает события
type Service struct {
	facades map[models.Platform]Facade
	events  *events.Emitter
	rec     Recorder

	mu        sync.Mutex
	available map[models.Platform]bool
}

func New(emitter *events.Emitter, rec Recorder, facades ...Facade) *Service {
	if emitter == nil {
		emitter = events.NewEmitter()
	}
	if rec == nil {
		rec = NopRecorder{}
	}
	s := &Service{
		facades:   map[models.Platform]Facade{},
		events:    emitter,
		rec:       rec,
		available: map[models.Platform]bool{},
	}
	for _, f := range facades {
		s.facades[f.Platform()] = f
	}
	return s
}

// Events — шина событий сервиса
func (s *Service) Events() *events.Emitter { return s.events }

func (s *Service) facade(dev capability.Device) (Facade, error) {
	f, ok := s.facades[dev.Platform]
	if !ok {
		return nil, ErrUnknownPlatform
	}
	return f, nil
}

// mutate выполняет мутирующую операцию и при успехе шлёт событие onSuccess (если задано)
func (s *Service) mutate(ctx context.Context, dev capability.Device, name string, onSuccess events.Name,
	call func(ctx context.Context, f Facade) (string, error)) (models.OperationResult, error) {
	f, err := s.facade(dev)
	if err != nil {
		return models.OperationResult{}, err
	}
	ctx, o := s.begin(ctx, string(dev.Platform), name)
	id, opErr := call(ctx, f)
	o.end(opErr)
	if opErr == nil && onSuccess != "" {
		s.events.PassEvent(onSuccess, dev.Platform, id, nil)
	}
	return result.From(id, opErr), nil
}

// IsWalletAvailable — доступность кошелька; смена доступности порождает onWalletAvailabilityChanged
func (s *Service) IsWalletAvailable(ctx context.Context, dev capability.Device) (models.WalletAvailability, error) {
	f, err := s.facade(dev)
	if err != nil {
		return models.WalletAvailability{}, err
	}
	ctx, o := s.begin(ctx, string(dev.Platform), OpIsWalletAvailable)
	out := f.IsWalletAvailable(ctx, dev)
	o.end(nil)
	s.trackAvailability(dev, out.IsAvailable)
	return out, nil
}

func (s *Service) CanAddPasses(ctx context.Context, dev capability.Device) (bool, error) {
	f, err := s.facade(dev)
	if err != nil {
		return false, err
	}
	ctx, o := s.begin(ctx, string(dev.Platform), OpCanAddPasses)
	ok := f.CanAddPasses(ctx, dev)
	o.end(nil)
	return ok, nil
}

// trackAvailability: первый опрос только запоминается, событие — при изменении
func (s *Service) trackAvailability(dev capability.Device, available bool) {
	s.mu.Lock()
	prev, seen := s.available[dev.Platform]
	s.available[dev.Platform] = available
	s.mu.Unlock()
	if !seen || prev == available {
		return
	}
	p := events.AvailabilityPayload{Available: available}
	if !available {
		p.Reason = unavailableReason(dev)
	}
	s.events.Emit(events.WalletAvailabilityChanged, dev.Platform, p)
}

func unavailableReason(dev capability.Device) string {
	if dev.Platform == models.PlatformAndroid {
		return "Google Wallet app is not installed"
	}
	return "Pass library is not available"
}

func (s *Service) AddPass(ctx context.Context, dev capability.Device, kind models.PassKind, attrs pass.Attributes) (models.OperationResult, error) {
	return s.mutate(ctx, dev, OpAddPass, events.PassAdded, func(ctx context.Context, f Facade) (string, error) {
		return f.AddPass(ctx, dev, kind, attrs)
	})
}

func (s *Service) UpdatePass(ctx context.Context, dev capability.Device, kind models.PassKind, id string, attrs pass.Attributes) (models.OperationResult, error) {
	return s.mutate(ctx, dev, OpUpdatePass, events.PassUpdated, func(ctx context.Context, f Facade) (string, error) {
		return f.UpdatePass(ctx, dev, kind, id, attrs)
	})
}

func (s *Service) RemovePass(ctx context.Context, dev capability.Device, kind models.PassKind, id string) (models.OperationResult, error) {
	return s.mutate(ctx, dev, OpRemovePass, events.PassRemoved, func(ctx context.Context, f Facade) (string, error) {
		return f.RemovePass(ctx, dev, kind, id)
	})
}

func (s *Service) UpdateStoredValueBalance(ctx context.Context, dev capability.Device, id string, balance float64) (models.OperationResult, error) {
	return s.mutate(ctx, dev, OpUpdateStoredValueBalance, events.PassUpdated, func(ctx context.Context, f Facade) (string, error) {
		return f.UpdateStoredValueBalance(ctx, dev, id, balance)
	})
}

func (s *Service) SharePass(ctx context.Context, dev capability.Device, id string, recipients []string) (models.OperationResult, error) {
	return s.mutate(ctx, dev, OpSharePass, "", func(ctx context.Context, f Facade) (string, error) {
		return f.SharePass(ctx, dev, id, recipients)
	})
}

func (s *Service) PresentPass(ctx context.Context, dev capability.Device, id string) (models.OperationResult, error) {
	return s.mutate(ctx, dev, OpPresentPass, "", func(ctx context.Context, f Facade) (string, error) {
		return f.PresentPass(ctx, dev, id)
	})
}

// ListPasses — getAllPasses; ошибка порта возвращается как есть
func (s *Service) ListPasses(ctx context.Context, dev capability.Device) (models.PassList, error) {
	f, err := s.facade(dev)
	if err != nil {
		return models.PassList{}, err
	}
	ctx, o := s.begin(ctx, string(dev.Platform), OpGetAllPasses)
	out, err := f.ListPasses(ctx, dev)
	o.end(err)
	return out, err
}

func (s *Service) GetPass(ctx context.Context, dev capability.Device, id string) (models.PassLookup, error) {
	f, err := s.facade(dev)
	if err != nil {
		return models.PassLookup{}, err
	}
	ctx, o := s.begin(ctx, string(dev.Platform), OpGetPassByID)
	out, err := f.GetPass(ctx, dev, id)
	if err == nil && !out.Success {
		o.end(apperrors.NotFound(out.Error))
	} else {
		o.end(err)
	}
	return out, err
}

func (s *Service) CreateGoogleClass(ctx context.Context, dev capability.Device, c models.GoogleWalletClass) (models.OperationResult, error) {
	return s.mutate(ctx, dev, OpCreateGoogleClass, "", func(ctx context.Context, f Facade) (string, error) {
		return f.CreateGoogleClass(ctx, dev, c)
	})
}

func (s *Service) CreateGoogleObject(ctx context.Context, dev capability.Device, obj models.GoogleWalletObject) (models.OperationResult, error) {
	return s.mutate(ctx, dev, OpCreateGoogleObject, "", func(ctx context.Context, f Facade) (string, error) {
		return f.CreateGoogleObject(ctx, dev, obj)
	})
}

// AddToGoogleWallet — составной сценарий. onPassAdded отправляется и при сбое
// создания класса или объекта; событие и результат согласованы по passId и success.
func (s *Service) AddToGoogleWallet(ctx context.Context, dev capability.Device, c models.GoogleWalletClass, obj models.GoogleWalletObject) (models.OperationResult, error) {
	f, err := s.facade(dev)
	if err != nil {
		return models.OperationResult{}, err
	}
	ctx, o := s.begin(ctx, string(dev.Platform), OpAddToGoogleWallet)
	id, saveURL, opErr := f.AddToGoogleWallet(ctx, dev, c, obj)
	o.end(opErr)

	if opErr != nil {
		if apperrors.KindOf(opErr) != apperrors.KindUnsupportedOnPlatform {
			s.events.PassEvent(events.PassAdded, dev.Platform, id, opErr)
		}
		return result.Fail(opErr), nil
	}
	s.events.PassEvent(events.PassAdded, dev.Platform, id, nil)
	res := result.OK(id)
	res.SaveURL = saveURL
	return res, nil
}

func (s *Service) UpdateGoogleObject(ctx context.Context, dev capability.Device, id string, patch map[string]any) (models.OperationResult, error) {
	return s.mutate(ctx, dev, OpUpdateGoogleObject, events.PassUpdated, func(ctx context.Context, f Facade) (string, error) {
		return f.UpdateGoogleObject(ctx, dev, id, patch)
	})
}

func (s *Service) RemoveGoogleObject(ctx context.Context, dev capability.Device, id string) (models.OperationResult, error) {
	return s.mutate(ctx, dev, OpRemoveFromGoogleWallet, events.PassRemoved, func(ctx context.Context, f Facade) (string, error) {
		return f.RemoveGoogleObject(ctx, dev, id)
	})
}

func (s *Service) IsNFCSEPlatformAvailable(ctx context.Context, dev capability.Device) (bool, error) {
	f, err := s.facade(dev)
	if err != nil {
		return false, err
	}
	ctx, o := s.begin(ctx, string(dev.Platform), OpIsNFCSEPlatformAvailable)
	ok := f.IsNFCSEPlatformAvailable(ctx, dev)
	o.end(nil)
	return ok, nil
}

func (s *Service) CreateNFCCredential(ctx context.Context, dev capability.Device, data map[string]any) (models.OperationResult, error) {
	return s.mutate(ctx, dev, OpCreateNFCCredential, "", func(ctx context.Context, f Facade) (string, error) {
		return f.CreateNFCCredential(ctx, dev, data)
	})
}

// SetValue — onChange для устаревшего setValueAsync
func (s *Service) SetValue(value string) {
	s.events.Emit(events.Change, "", events.ChangePayload{Value: value})
}

// ViewLoaded — onLoad от веб-представления
func (s *Service) ViewLoaded(url string) {
	s.events.Emit(events.Load, "", events.LoadPayload{URL: url})
}
