package helpers

import "runtime"

// FuncName returns the name of the calling function
// (used to add context when wrapping store errors)
func FuncName() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "?"
	}

	fn := runtime.FuncForPC(pc)
	return fn.Name()
}
