package must

import (
	"log/slog"
	"os"
)

// Assert exits the program when cond does not hold. Reserved for
// invariants that cannot be recovered from.
func Assert(cond bool, failMessage string) {
	if !cond {
		slog.Error(failMessage)
		os.Exit(1)
	}
}

// NoError exits the program when err is not nil. Reserved for
// initialization paths where the error is unrecoverable, such as a
// corrupt bundled database.
func NoError(err error) {
	if err != nil {
		slog.Error("unrecoverable error", "err", err)
		os.Exit(1)
	}
}
