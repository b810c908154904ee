package s3

import (
	"agenda/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetObjectNameFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://cdn.agenda.test/"
	cfg.External.S3.APIEndpoint = "https://s3.agenda.test"
	cfg.External.S3.BucketName = "agenda"

	svc := &s3Impl{Config: cfg}

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "public url",
			url:  "https://cdn.agenda.test/service/abc.png",
			want: "abc.png",
		},
		{
			name: "api endpoint url",
			url:  "https://s3.agenda.test/agenda/service/abc.png",
			want: "abc.png",
		},
		{
			name: "foreign url",
			url:  "https://elsewhere.test/service/abc.png",
			want: "",
		},
		{
			name: "domain only",
			url:  "https://cdn.agenda.test/",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.GetObjectNameFromURL("", tt.url))
		})
	}

	assert.Equal(t, "https://cdn.agenda.test/service/abc.png", svc.objectURL("service/abc.png"))
}
