package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/licache/internal/core/domain"
)

func TestRecord_Merge(t *testing.T) {
	base := domain.Record{
		Name:    "foo",
		Version: "1.0",
		License: "mit",
		Fields:  map[string]string{"homepage": "https://example.com", "reviewed": "yes"},
		Text:    "MIT License",
	}

	tests := []struct {
		name string
		over domain.Record
		want domain.Record
	}{
		{
			name: "empty overlay keeps everything",
			over: domain.Record{},
			want: base,
		},
		{
			name: "set fields win",
			over: domain.Record{Version: "2.0", License: "apache-2.0", Text: "Apache License"},
			want: domain.Record{
				Name:    "foo",
				Version: "2.0",
				License: "apache-2.0",
				Fields:  map[string]string{"homepage": "https://example.com", "reviewed": "yes"},
				Text:    "Apache License",
			},
		},
		{
			name: "fields merge key by key",
			over: domain.Record{Fields: map[string]string{"homepage": "https://foo.dev", "purl": "pkg:npm/foo@2.0", "reviewed": ""}},
			want: domain.Record{
				Name:    "foo",
				Version: "1.0",
				License: "mit",
				Fields: map[string]string{
					"homepage": "https://foo.dev",
					"purl":     "pkg:npm/foo@2.0",
					"reviewed": "yes",
				},
				Text: "MIT License",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Merge(tt.over))
		})
	}

	assert.Equal(t, "yes", base.Fields["reviewed"], "receiver must not be mutated")
	assert.Equal(t, "https://example.com", base.Fields["homepage"], "receiver must not be mutated")
}

func TestRecord_Merge_IntoEmpty(t *testing.T) {
	got := domain.Record{}.Merge(domain.Record{Name: "foo", Fields: map[string]string{"purl": "pkg:golang/foo"}})
	assert.Equal(t, domain.Record{Name: "foo", Fields: map[string]string{"purl": "pkg:golang/foo"}}, got)
}

func TestRecord_HasVersion(t *testing.T) {
	var missing *domain.Record
	assert.False(t, missing.HasVersion())
	assert.False(t, (&domain.Record{}).HasVersion())
	assert.True(t, (&domain.Record{Version: "1.0"}).HasVersion())
}
