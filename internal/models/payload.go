package models

// SaveObjectRef — ссылка на объект в payload save-link
type SaveObjectRef struct {
	ID      string `json:"id"`
	ClassID string `json:"classId"`
}

// SavePayload — полезная нагрузка JWT "savetowallet"
type SavePayload struct {
	GenericObjects []SaveObjectRef `json:"genericObjects"`
}
