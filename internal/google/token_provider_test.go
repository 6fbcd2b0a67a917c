package google

import (
	"context"
	"testing"
)

func TestStaticTokenProvider(t *testing.T) {
	token, err := StaticTokenProvider("ya29.bearer").AccessToken(context.Background())
	if err != nil {
		t.Fatalf("AccessToken() error = %v", err)
	}
	if token != "ya29.bearer" {
		t.Errorf("AccessToken() = %q, want %q", token, "ya29.bearer")
	}

	if _, err := StaticTokenProvider("").AccessToken(context.Background()); err == nil {
		t.Error("AccessToken() should fail for an empty token")
	}
}

func TestNewFileTokenProviderDefaultsAccount(t *testing.T) {
	p := NewFileTokenProvider("")
	if p.account != DefaultAccount {
		t.Errorf("account = %q, want %q", p.account, DefaultAccount)
	}
}

func TestFileTokenProviderInvalidAccount(t *testing.T) {
	p := NewFileTokenProvider("bad account")

	if p.HasToken() {
		t.Error("HasToken() should return false for an invalid account name")
	}

	if _, err := p.AccessToken(context.Background()); err == nil {
		t.Error("AccessToken() should fail for an invalid account name")
	}
}
