package result

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

func TestFromShapesOutcome(t *testing.T) {
	ok := From("pass-1", nil)
	if !ok.Success || ok.PassID != "pass-1" || ok.Error != "" {
		t.Fatalf("unexpected success result %+v", ok)
	}

	fail := From("pass-1", apperrors.PlatformCall(errors.New("library refused the pass")))
	if fail.Success || fail.PassID != "" || fail.Error != "library refused the pass" {
		t.Fatalf("unexpected failure result %+v", fail)
	}
}

func TestCrossPlatformMessages(t *testing.T) {
	for _, kind := range models.PassKinds {
		msg := NotOnAndroid(kind).Error()
		if !strings.HasPrefix(msg, string(kind)+" ") || !strings.Contains(msg, "not available on Android") {
			t.Fatalf("unexpected android message %q", msg)
		}
	}
	if !strings.Contains(NotOnIOS().Error(), "not available on iOS") {
		t.Fatalf("unexpected ios message %q", NotOnIOS().Error())
	}
	if got := RequiresIOS("PKShareablePass", "16.0").Error(); got != "PKShareablePass requires iOS 16.0 or later" {
		t.Fatalf("unexpected gate message %q", got)
	}
}

func TestOutcomeOf(t *testing.T) {
	tests := []struct {
		err  error
		want Outcome
	}{
		{nil, OutcomeSuccess},
		{apperrors.MissingField("serialNumber"), OutcomeMissingField},
		{apperrors.InvalidField("passStyle", "x"), OutcomeInvalidField},
		{NotOnIOS(), OutcomeUnsupported},
		{apperrors.NotYetImplemented("Pass sharing not yet implemented"), OutcomeNotImplemented},
		{apperrors.PlatformCall(errors.New("boom")), OutcomePlatformFailure},
		{apperrors.NotFound("Pass not found"), OutcomeNotFound},
		{errors.New("plain"), OutcomeUnclassifiedFail},
	}
	for _, tt := range tests {
		if got := OutcomeOf(tt.err); got != tt.want {
			t.Errorf("OutcomeOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}
