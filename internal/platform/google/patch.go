package google

import (
	"bytes"
	"encoding/json"
	"errors"

	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
	"github.com/vbncursed/vkr/wallet-service/internal/models"
)

var immutableKeys = []string{"id", "classId"}

// ApplyPatch накладывает частичное обновление на объект и возвращает результат.
// Значения проверяются декодированием в models.GoogleWalletObject.
func ApplyPatch(o models.GoogleWalletObject, patch map[string]any) (models.GoogleWalletObject, error) {
	if patch == nil {
		return o, apperrors.InvalidField("patch", "null")
	}
	for _, key := range immutableKeys {
		if _, ok := patch[key]; ok {
			return o, apperrors.InvalidField(key, "immutable")
		}
	}
	base, err := json.Marshal(o)
	if err != nil {
		return o, err
	}
	merged := map[string]any{}
	if err := json.Unmarshal(base, &merged); err != nil {
		return o, err
	}
	for k, v := range patch {
		merged[k] = v
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return o, apperrors.InvalidField("patch", err.Error())
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var out models.GoogleWalletObject
	if err := dec.Decode(&out); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) && te.Field != "" {
			return o, apperrors.InvalidField(te.Field, te.Value)
		}
		return o, apperrors.InvalidField("patch", err.Error())
	}
	if !out.State.Valid() {
		return o, apperrors.InvalidField("state", string(out.State))
	}
	return out, nil
}
