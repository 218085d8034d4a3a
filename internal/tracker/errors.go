package tracker

import "errors"

// Refusal is an operation attempted outside its legal state. Nothing is
// written and the tracker state is unchanged.
type Refusal struct {
	msg string
}

func (r *Refusal) Error() string {
	return r.msg
}

var (
	ErrDayAlreadyOpen      = &Refusal{msg: "a working day is already open, end it before starting a new one"}
	ErrNoOpenDay           = &Refusal{msg: "no working day is open, start your day first"}
	ErrActivityAlreadyOpen = &Refusal{msg: "an activity is already running, end it before starting a new one"}
	ErrNoOpenActivity      = &Refusal{msg: "no activity is running"}
	ErrActivityStillOpen   = &Refusal{msg: "an activity is still running, end it before ending the working day"}
)

// IsRefusal reports whether err is a lifecycle refusal rather than a storage failure
func IsRefusal(err error) bool {
	var r *Refusal
	return errors.As(err, &r)
}
