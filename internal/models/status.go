package models

// ObjectState — состояние объекта Google Wallet
type ObjectState string

const (
	StateActive    ObjectState = "ACTIVE"
	StateCompleted ObjectState = "COMPLETED"
	StateExpired   ObjectState = "EXPIRED"
	StateInactive  ObjectState = "INACTIVE"
)

func (s ObjectState) Valid() bool {
	switch s {
	case StateActive, StateCompleted, StateExpired, StateInactive:
		return true
	}
	return false
}
