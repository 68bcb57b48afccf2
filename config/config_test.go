package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":     "9090",
		"BAD_INT":  "nine",
		"SECURE":   "true",
		"EMPTY":    "",
		"TIMEOUT":  "15",
		"ORIGINS":  "https://a.dev, ,https://b.dev",
		"BAD_BOOL": "maybe",
	}

	if got := GetString(c, "PORT", "8080"); got != "9090" {
		t.Errorf("GetString = %q", got)
	}
	if got := GetString(c, "EMPTY", "fallback"); got != "fallback" {
		t.Errorf("GetString empty = %q, want fallback", got)
	}
	if got := GetInt(c, "BAD_INT", 3); got != 3 {
		t.Errorf("GetInt bad = %d", got)
	}
	if got := GetBool(c, "SECURE", false); !got {
		t.Error("GetBool = false, want true")
	}
	if got := GetBool(c, "BAD_BOOL", true); !got {
		t.Error("GetBool should fall back on parse errors")
	}
	if got := GetSeconds(c, "TIMEOUT", time.Minute); got != 15*time.Second {
		t.Errorf("GetSeconds = %v", got)
	}
	if got := GetSeconds(c, "MISSING", time.Minute); got != time.Minute {
		t.Errorf("GetSeconds default = %v", got)
	}
	origins := GetList(c, "ORIGINS")
	if len(origins) != 2 || origins[0] != "https://a.dev" || origins[1] != "https://b.dev" {
		t.Errorf("GetList = %v", origins)
	}
	if GetString(nil, "PORT", "8080") != "8080" {
		t.Error("nil config should return default")
	}
}

func TestMergeKeepsExistingKeys(t *testing.T) {
	base := map[string]string{"JWT_SECRET": "from-env"}
	merged := Merge(base, map[string]string{"JWT_SECRET": "from-ssm", "RESEND_API_KEY": "re_123"})

	if merged["JWT_SECRET"] != "from-env" {
		t.Errorf("JWT_SECRET = %q, env should win", merged["JWT_SECRET"])
	}
	if merged["RESEND_API_KEY"] != "re_123" {
		t.Errorf("RESEND_API_KEY = %q", merged["RESEND_API_KEY"])
	}
}

type fakeSSM struct {
	pages [][]types.Parameter
	calls int
}

func (f *fakeSSM) GetParametersByPath(ctx context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestLoadSSMParameters(t *testing.T) {
	client := &fakeSSM{pages: [][]types.Parameter{
		{{Name: aws.String("/portfolio/prod/jwt_secret"), Value: aws.String("s3cr3t")}},
		{{Name: aws.String("/portfolio/prod/RESEND_API_KEY"), Value: aws.String("re_1")}},
	}}

	values, err := LoadSSMParameters(context.Background(), client, "/portfolio/prod")
	if err != nil {
		t.Fatalf("LoadSSMParameters: %v", err)
	}
	if client.calls != 2 {
		t.Errorf("expected 2 page calls, got %d", client.calls)
	}
	if values["JWT_SECRET"] != "s3cr3t" || values["RESEND_API_KEY"] != "re_1" {
		t.Errorf("unexpected values %v", values)
	}
}
