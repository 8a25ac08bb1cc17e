package diagnostic

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name     string
		diag     Diagnostic
		expected string
	}{
		{
			name:     "message only",
			diag:     Diagnostic{Message: "graph is nil"},
			expected: "graph is nil",
		},
		{
			name:     "code and type",
			diag:     Diagnostic{Code: "type_not_found", Message: "type not found", Type: "catalog.Ordr"},
			expected: "catalog.Ordr: [type_not_found] type not found",
		},
		{
			name: "field with suggestions",
			diag: Diagnostic{
				Code:        "field_not_found",
				Message:     `no field "Note"`,
				Type:        "catalog.Order",
				Field:       "Note",
				Suggestions: []string{"Notes"},
			},
			expected: `catalog.Order.Note: [field_not_found] no field "Note" (did you mean Notes?)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.diag.String())
		})
	}
}

func TestDiagnostics_Order(t *testing.T) {
	var d Diagnostics

	d.AddInfo("i1", "info", "", "")
	d.AddWarning("w1", "warning", "", "")
	d.AddError("e1", "error", "", "")
	d.AddError("e2", "error", "", "")

	assert.Equal(t, []string{"e1", "e2", "w1", "i1"}, d.Codes())
	assert.True(t, d.HasErrors())
	assert.Equal(t, "2 errors, 1 warning, 1 info", d.Summary())
}

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics
	require.NoError(t, d.Error())

	d.AddWarning("w", "only a warning", "", "")
	require.NoError(t, d.Error())

	d.AddError("a", "first", "T", "")
	d.AddError("b", "second", "T", "F")

	err := d.Error()
	require.Error(t, err)
	assert.Equal(t, "T: [a] first\nT.F: [b] second", err.Error())
}

func TestDiagnostics_Merge(t *testing.T) {
	var a, b Diagnostics

	a.AddError("a", "a", "", "")
	b.AddWarning("b", "b", "", "")
	b.AddInfo("c", "c", "", "")

	a.Merge(b)
	assert.Equal(t, "1 error, 1 warning, 1 info", a.Summary())
}

func TestDiagnostics_Write(t *testing.T) {
	var d Diagnostics

	d.AddWarning("unused", "nothing to do", "catalog.Order", "Notes")
	d.AddError("bad", "broken", "", "")

	var buf bytes.Buffer
	require.NoError(t, d.Write(&buf))

	assert.Equal(t, "error   [bad] broken\nwarning catalog.Order.Notes: [unused] nothing to do\n", buf.String())
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(9).String())
}
