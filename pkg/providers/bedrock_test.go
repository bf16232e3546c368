package providers

import (
	"errors"
	"net/http"
	"reflect"
	"testing"
)

func TestBedrockAdapter_BuildTargetURL(t *testing.T) {
	adapter := NewBedrockAdapter()

	tests := []struct {
		name    string
		subPath string
		want    string
	}{
		{
			name:    "invoke model",
			subPath: "us-east-1/model/anthropic.claude-v2/invoke",
			want:    "https://bedrock-runtime.us-east-1.amazonaws.com/model/anthropic.claude-v2/invoke",
		},
		{
			name:    "region only",
			subPath: "eu-west-1",
			want:    "https://bedrock-runtime.eu-west-1.amazonaws.com/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := adapter.BuildTargetURL("acct", "aws-bedrock", tt.subPath, "")
			if err != nil {
				t.Fatalf("BuildTargetURL() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BuildTargetURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBedrockAdapter_InvalidPath(t *testing.T) {
	adapter := NewBedrockAdapter()

	_, err := adapter.BuildTargetURL("acct", "aws-bedrock", "", "")
	var invalid *InvalidPathError
	if !errors.As(err, &invalid) {
		t.Fatalf("BuildTargetURL(\"\") error = %v, want *InvalidPathError", err)
	}
}

func TestBedrockAdapter_TransformHeaders_PreservesSignature(t *testing.T) {
	adapter := NewBedrockAdapter()

	in := http.Header{}
	in.Set("authorization", "AWS4-HMAC-SHA256 Credential=AKIA.../20240101/us-east-1/bedrock/aws4_request, SignedHeaders=host;x-amz-date, Signature=abc123")
	in.Set("x-amz-date", "20240101T000000Z")
	in.Set("x-amz-content-sha256", "e3b0c44298fc1c149afbf4c8996fb924")
	in.Set("content-type", "application/json")
	in.Set("cf-aig-authorization", "Bearer gw")

	got := adapter.TransformHeaders(in)

	want := http.Header{}
	want.Set("authorization", "AWS4-HMAC-SHA256 Credential=AKIA.../20240101/us-east-1/bedrock/aws4_request, SignedHeaders=host;x-amz-date, Signature=abc123")
	want.Set("x-amz-date", "20240101T000000Z")
	want.Set("x-amz-content-sha256", "e3b0c44298fc1c149afbf4c8996fb924")
	want.Set("content-type", "application/json")

	if !reflect.DeepEqual(got, want) {
		t.Errorf("TransformHeaders() = %v, want %v", got, want)
	}
}
