package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		valid   bool
		wantErr bool
	}{
		{name: "date literal", input: `"2025-07-01"`, want: "2025-07-01", valid: true},
		{name: "timestamp", input: `"2025-06-30T18:30:00.000Z"`, want: "2025-06-30", valid: true},
		{name: "null", input: `null`},
		{name: "empty", input: `""`},
		{name: "garbage", input: `"yesterday"`, wantErr: true},
		{name: "number", input: `20250701`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.valid, d.Valid)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDate_MarshalInsideRecord(t *testing.T) {
	rec := MortalityRecord{ID: 7, DateOfDeath: MustParseDate("2025-02-28")}

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"tag_number":null,"branding_id":null,"date_of_death":"2025-02-28","cause_of_death":null}`, string(out))
}
