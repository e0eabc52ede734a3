package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeJSON(t *testing.T) {
	type out struct {
		Summary string `json:"summary"`
	}

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain", `{"summary":"좋아요"}`, "좋아요", false},
		{"fenced", "```json\n{\"summary\":\"fenced\"}\n```", "fenced", false},
		{"prose around", "추천 결과입니다:\n{\"summary\":\"ok\"}\n감사합니다", "ok", false},
		{"no object", "죄송합니다. 추천할 수 없습니다.", "", true},
		{"broken object", `{"summary": }`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got out
			err := DecodeJSON(tt.raw, &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.Summary)
		})
	}
}
