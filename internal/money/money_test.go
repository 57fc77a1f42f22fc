package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "plain decimal", input: "12.34", want: 1234},
		{name: "decimal comma", input: "12,34", want: 1234},
		{name: "no fraction", input: "120", want: 12000},
		{name: "single fraction digit", input: "12.3", want: 1230},
		{name: "third decimal rounds down", input: "12.344", want: 1234},
		{name: "third decimal rounds up", input: "12.346", want: 1235},
		{name: "currency prefix", input: "RM38.02", want: 3802},
		{name: "lowercase currency and spaces", input: "rm 1 250.00", want: 125000},
		{name: "thousands separator", input: "1,234.56", want: 123456},
		{name: "zero", input: "0", want: 0},
		{name: "empty", input: "", wantErr: true},
		{name: "negative", input: "-5.00", wantErr: true},
		{name: "explicit plus", input: "+5.00", wantErr: true},
		{name: "garbage", input: "12.3a", wantErr: true},
		{name: "two dots", input: "1.2.3", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "12.34", Format(1234))
	assert.Equal(t, "0.05", Format(5))
	assert.Equal(t, "0.00", Format(0))
	assert.Equal(t, "-3.50", Format(-350))
	assert.Equal(t, "1250.00", Format(125000))
}
