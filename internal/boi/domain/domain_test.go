package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttributeMap(t *testing.T) {
	attrs, err := ParseAttributeMap(`{"ID_Number":"123456782","CardNo":42,"Phone":null,"Active":true,"Extra":{"a": 1}}`)
	require.NoError(t, err)

	assert.Equal(t, "123456782", attrs["ID_Number"].String())
	assert.Equal(t, KindString, attrs["ID_Number"].Kind())

	assert.Equal(t, "42", attrs["CardNo"].String())
	assert.Equal(t, KindNumber, attrs["CardNo"].Kind())

	assert.True(t, attrs["Phone"].IsNull())
	assert.Equal(t, "", attrs["Phone"].String())

	assert.Equal(t, "true", attrs["Active"].String())
	assert.Equal(t, `{"a":1}`, attrs["Extra"].String())
}

func TestParseAttributeMap_LargeNumbersKeepDigits(t *testing.T) {
	attrs, err := ParseAttributeMap(`{"EmployeeNumber":12345678901234567890}`)
	require.NoError(t, err)
	assert.Equal(t, "12345678901234567890", attrs["EmployeeNumber"].String())
}

func TestParseAttributeMap_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "not-json"},
		{"empty", ""},
		{"array", `[1,2]`},
		{"truncated", `{"a":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAttributeMap(tt.input)
			assert.Error(t, err)
		})
	}

	t.Run("null", func(t *testing.T) {
		_, err := ParseAttributeMap("null")
		assert.ErrorIs(t, err, ErrEmptyCardData)
	})
}

func TestValue_MarshalJSON(t *testing.T) {
	attrs := AttributeMap{
		"s": StringValue("x"),
		"n": NumberValue("7"),
		"z": NullValue(),
	}

	b, err := json.Marshal(attrs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"x","n":7,"z":null}`, string(b))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "CREATE", OperationCreate.String())
	assert.Equal(t, "SUSPEND", OperationSuspend.String())
	assert.Equal(t, "99", Operation(99).String())

	assert.True(t, OperationPrint.IsCreateOrUpdate())
	assert.False(t, OperationDelete.IsCreateOrUpdate())
	assert.False(t, OperationRenewCert.IsCreateOrUpdate())
}

func TestParseOperation(t *testing.T) {
	tests := []struct {
		input   string
		want    Operation
		wantErr bool
	}{
		{"2", OperationUpdate, false},
		{"update", OperationUpdate, false},
		{"REVOKE_CERT", OperationRevokeCert, false},
		{"0", 0, true},
		{"bogus", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOperation(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHrRecord_ImageIsBase64(t *testing.T) {
	b, err := json.Marshal(HrRecord{Id: "1", Factory: "0000", Image: []byte{0xff, 0xd8}})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"Image":"/9g="`)
}
