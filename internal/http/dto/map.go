package dto

import (
	"math"
	"strings"

	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

// Normalized — получатели без окружающих пробелов
func (r ShareRequest) Normalized() []string {
	out := make([]string, 0, len(r.Recipients))
	for _, rc := range r.Recipients {
		out = append(out, strings.TrimSpace(rc))
	}
	return out
}

func FromCanAdd(ok bool) CanAddPassesResponse { return CanAddPassesResponse{CanAddPasses: ok} }

func FromNFCSE(ok bool) NFCSEResponse { return NFCSEResponse{IsAvailable: ok} }

// Constants — константы устаревшего модуля
func Constants() ConstantsResponse { return ConstantsResponse{PI: math.Pi} }

// EmptyPassList гарантирует passes: [] вместо null
func EmptyPassList(l models.PassList) models.PassList {
	if l.Passes == nil {
		l.Passes = []models.PassSummary{}
	}
	return l
}
