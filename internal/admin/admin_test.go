package admin

import "testing"

func TestHashAndVerifyToken(t *testing.T) {
	hash, err := HashToken("open-sesame")
	if err != nil {
		t.Fatalf("HashToken: %v", err)
	}
	if hash == "open-sesame" {
		t.Fatal("token stored in plain text")
	}
	if !VerifyAdminToken(hash, "open-sesame") {
		t.Error("valid token rejected")
	}
	if VerifyAdminToken(hash, "open-sesame!") {
		t.Error("wrong token accepted")
	}
	if VerifyAdminToken("", "open-sesame") {
		t.Error("empty hash accepted")
	}
	if VerifyAdminToken(hash, "") {
		t.Error("empty token accepted")
	}
}

func TestHashTokenRejectsEmpty(t *testing.T) {
	if _, err := HashToken(""); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestLogAdminActionWithoutDB(t *testing.T) {
	if err := LogAdminAction(nil, "127.0.0.1", "/api/v1/admin/prizes/x", "set_prizes", nil, true); err != nil {
		t.Errorf("LogAdminAction(nil db) = %v", err)
	}
}
