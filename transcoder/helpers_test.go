package transcoder

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/wippyai/strbridge/errors"
	"github.com/wippyai/strbridge/hostrt"
)

func newRuntime(t testing.TB) *hostrt.Local {
	t.Helper()
	rt := hostrt.NewLocal()
	t.Cleanup(func() {
		_ = rt.Close(context.Background())
	})
	return rt
}

func asError(t *testing.T, err error) *errors.Error {
	t.Helper()
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %T: %v", err, err)
	}
	return e
}
