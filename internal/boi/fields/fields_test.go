package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comda/boi-proxy/internal/boi/domain"
	"github.com/comda/boi-proxy/pkg/config"
)

func testTable() *Table {
	return NewTable(config.CardFieldsConfig{
		IdNumber:       "ID_Number",
		EmployeeNumber: "Employee_Number",
		CardNumber:     "CardNo",
		PhoneNumber:    "Phone",
		Photo:          "Photo",
		PhotoBase64:    "PhotoBase64",
	})
}

func TestResolve(t *testing.T) {
	table := testTable()
	attrs := domain.AttributeMap{
		"ID_Number": domain.StringValue("123456782"),
		"CardNo":    domain.NumberValue("1001"),
		"Phone":     domain.NullValue(),
	}

	assert.Equal(t, "123456782", table.Resolve(attrs, IdNumber))
	assert.Equal(t, "1001", table.Resolve(attrs, CardNumber))

	t.Run("null is empty", func(t *testing.T) {
		assert.Equal(t, "", table.Resolve(attrs, PhoneNumber))
	})

	t.Run("absent is empty", func(t *testing.T) {
		assert.Equal(t, "", table.Resolve(attrs, EmployeeNumber))
	})

	t.Run("unmapped role is empty", func(t *testing.T) {
		assert.Equal(t, "", table.Resolve(attrs, UPN))
	})

	t.Run("literal role name is not used as key", func(t *testing.T) {
		assert.Equal(t, "", table.Resolve(domain.AttributeMap{"id_number": domain.StringValue("x")}, IdNumber))
	})

	t.Run("nil map", func(t *testing.T) {
		assert.Equal(t, "", table.Resolve(nil, IdNumber))
	})
}

func TestPhoto(t *testing.T) {
	table := testTable()

	tests := []struct {
		name  string
		attrs domain.AttributeMap
		want  string
	}{
		{
			name:  "raw only",
			attrs: domain.AttributeMap{"Photo": domain.StringValue("raw")},
			want:  "raw",
		},
		{
			name: "base64 wins",
			attrs: domain.AttributeMap{
				"Photo":       domain.StringValue("raw"),
				"PhotoBase64": domain.StringValue("b64"),
			},
			want: "b64",
		},
		{
			name: "empty base64 falls back",
			attrs: domain.AttributeMap{
				"Photo":       domain.StringValue("raw"),
				"PhotoBase64": domain.StringValue(""),
			},
			want: "raw",
		},
		{
			name:  "neither",
			attrs: domain.AttributeMap{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Photo(tt.attrs))
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "CardNo", testTable().Key(CardNumber))
}
