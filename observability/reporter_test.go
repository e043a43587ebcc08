package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoop_DiscardsEverything(t *testing.T) {
	var r Reporter = Noop{}
	r.Report(errors.New("boom"), Context{Kind: ComposableFailure})
	assert.NoError(t, r.Flush(time.Second))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "composable_failure", ComposableFailure.String())
	assert.Equal(t, "sanitizer_concern", SanitizerConcern.String())
	assert.Equal(t, "recomposition_deadline", RecompositionDeadline.String())
}

func TestNewSentryReporter_EmptyDSNDisablesSending(t *testing.T) {
	r, err := NewSentryReporter("")
	assert.NoError(t, err)
	assert.NotNil(t, r)

	// With an empty DSN, Sentry's own transport is a no-op; Report must
	// not panic even though nothing is actually sent anywhere.
	assert.NotPanics(t, func() {
		r.Report(errors.New("boom"), Context{RootID: "root-1", Kind: SanitizerConcern})
	})
}
