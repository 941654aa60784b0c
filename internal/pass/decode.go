package pass

import (
	"github.com/go-viper/mapstructure/v2"

	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
)

// Decode разбирает Attributes в типизированный ввод варианта по json-тегам.
// Неизвестные ключи игнорируются, несовпадение типов — InvalidField.
func Decode[T any](attrs Attributes) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Squash:  true,
		Result:  &out,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(map[string]any(attrs)); err != nil {
		return out, &apperrors.Error{
			Kind:    apperrors.KindInvalidField,
			Message: "malformed pass attributes: " + err.Error(),
			Cause:   err,
		}
	}
	return out, nil
}
