package run

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_ForwardTopLevelReferenceResolvesInOneCall(t *testing.T) {
	var out bytes.Buffer
	session := NewSession(&out)
	result := session.Source("var x = 1; print x;")
	require.False(t, result.HasErrors(), "unexpected errors: %+v", result.SyntaxErrors)
	assert.Equal(t, "1\n", out.String())
}

func TestSource_LaterCallSeesEarlierCallsTopLevelDeclarations(t *testing.T) {
	var out bytes.Buffer
	session := NewSession(&out)
	require.False(t, session.Source("var x = 1;").HasErrors())
	result := session.Source("print x;")
	require.False(t, result.HasErrors(), "unexpected errors: %+v", result.SyntaxErrors)
	assert.Equal(t, "1\n", out.String())
}

func TestSource_LaterCallSeesEarlierFunctionDeclaration(t *testing.T) {
	var out bytes.Buffer
	session := NewSession(&out)
	require.False(t, session.Source("fun greet() { print \"hi\"; }").HasErrors())
	result := session.Source("greet();")
	require.False(t, result.HasErrors(), "unexpected errors: %+v", result.SyntaxErrors)
	assert.Equal(t, "hi\n", out.String())
}

func TestSource_ScanErrorReportsSyntaxStage(t *testing.T) {
	session := NewSession(&bytes.Buffer{})
	result := session.Source(`"unterminated`)
	assert.Equal(t, StageSyntax, result.Stage)
	assert.True(t, result.HasErrors())
}

func TestSource_ParseErrorReportsSyntaxStage(t *testing.T) {
	session := NewSession(&bytes.Buffer{})
	result := session.Source("1 = 2;")
	assert.Equal(t, StageSyntax, result.Stage)
}

func TestSource_ResolveErrorReportsResolveStage(t *testing.T) {
	session := NewSession(&bytes.Buffer{})
	result := session.Source("print nonexistent;")
	assert.Equal(t, StageResolve, result.Stage)
}

func TestSource_RuntimeErrorReportsRuntimeStage(t *testing.T) {
	session := NewSession(&bytes.Buffer{})
	result := session.Source(`print 1 + "two";`)
	assert.Equal(t, StageRuntime, result.Stage)
	require.NotNil(t, result.RuntimeErr)
}

func TestSource_SuccessfulRunHasNoErrors(t *testing.T) {
	var out bytes.Buffer
	session := NewSession(&out)
	result := session.Source(`print "hello";`)
	assert.False(t, result.HasErrors())
	assert.Equal(t, "hello\n", out.String())
}
