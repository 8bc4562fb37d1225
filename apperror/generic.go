package apperror

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrNoData = Error("no records found")
	// attachPlant is the only path with semantic checks of its own
	ErrPlantUnknown  = Error("plant does not exist")
	ErrPlantAttached = Error("plant is already attached to this garden")
)
