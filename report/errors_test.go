package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorf(t *testing.T) {
	span := &TextSpan{StartLine: 2, StartCol: 4, EndLine: 2, EndCol: 9}
	err := Errorf(span, "unexpected token: `%s`", "then")

	assert.Equal(t, "unexpected token: `then`", err.Error())
	assert.Same(t, span, err.Span)
}

func TestNewSpanOver(t *testing.T) {
	s := NewSpanOver(
		&TextSpan{StartLine: 0, StartCol: 3, EndLine: 0, EndCol: 6},
		&TextSpan{StartLine: 4, StartCol: 1, EndLine: 4, EndCol: 2},
	)

	assert.Equal(t, &TextSpan{StartLine: 0, StartCol: 3, EndLine: 4, EndCol: 2}, s)
}

func TestICEPanicValue(t *testing.T) {
	defer func() {
		x := recover()
		require.NotNil(t, x)

		ierr, ok := x.(*InternalError)
		require.True(t, ok)
		assert.Equal(t, "unknown expression node *ast.BadExpr", ierr.Message)
	}()

	ICE("unknown expression node %s", "*ast.BadExpr")
}

func TestCountsSurviveSilentMode(t *testing.T) {
	InitReporter(LogLevelSilent)
	require.True(t, ShouldProceed())

	ReportCompileError("", "<test>", nil, "bad input")
	ReportCompileWarning("", "<test>", nil, "iffy input")
	ReportCompileWarning("", "<test>", nil, "iffy input")

	assert.False(t, ShouldProceed())
	assert.Equal(t, 1, ErrorCount())
	assert.Equal(t, 2, WarningCount())

	// Re-initializing resets the counts.
	InitReporter(LogLevelSilent)
	assert.True(t, ShouldProceed())
	assert.Zero(t, ErrorCount())
	assert.Zero(t, WarningCount())
}
