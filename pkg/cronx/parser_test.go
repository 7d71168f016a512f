package cronx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{"6필드 (초 포함)", "0 */30 * * * *", false},
		{"Descriptor @every", "@every 1h", false},
		{"Descriptor @daily", "@daily", false},
		{"5필드는 지원하지 않음", "*/5 * * * *", true},
		{"범위 초과", "99 * * * * *", true},
		{"빈 문자열", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
