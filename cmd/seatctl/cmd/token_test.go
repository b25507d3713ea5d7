package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	var out bytes.Buffer
	tokenCmd.SetOut(&out)
	tokenCmd.SetArgs(nil)
	if err := tokenCmd.Flags().Set("role", "admin"); err != nil {
		t.Fatal(err)
	}
	if err := tokenCmd.RunE(tokenCmd, []string{"ops-1"}); err != nil {
		t.Fatalf("token: %v", err)
	}
	raw := strings.TrimSpace(out.String())
	tok, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) { return []byte("cli-secret"), nil })
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["sub"] != "ops-1" || claims["role"] != "ADMIN" {
		t.Fatalf("claims = %v", claims)
	}

	if err := tokenCmd.Flags().Set("role", "owner"); err != nil {
		t.Fatal(err)
	}
	if err := tokenCmd.RunE(tokenCmd, []string{"x"}); err == nil {
		t.Fatal("unknown role accepted")
	}
}
