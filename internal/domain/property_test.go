package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyageur/backend/internal/domain"
)

// TestFlexInt_Unmarshal covers the coercion cases the frontend actually sends:
// plain numbers, numeric strings, floats, and empty values.
func TestFlexInt_Unmarshal(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "number", in: `3`, want: 3},
		{name: "numeric string", in: `"3"`, want: 3},
		{name: "float", in: `3.0`, want: 3},
		{name: "float string", in: `"3.0"`, want: 3},
		{name: "empty string", in: `""`, want: 0},
		{name: "null", in: `null`, want: 0},
		{name: "garbage", in: `"three"`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f domain.FlexInt
			err := json.Unmarshal([]byte(tc.in), &f)
			if tc.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.Int())
		})
	}
}

// TestProperty_DecodeCoercesNumericStrings verifies coercion end to end
// through a propertyData-shaped blob.
func TestProperty_DecodeCoercesNumericStrings(t *testing.T) {
	blob := `{"name":"Seaside Loft","beds":"2","baths":1,"square_feet":"850"}`

	var p domain.Property
	require.NoError(t, json.Unmarshal([]byte(blob), &p))

	assert.Equal(t, 2, p.Beds.Int())
	assert.Equal(t, 1, p.Baths.Int())
	assert.Equal(t, 850, p.SquareFeet.Int())
}
