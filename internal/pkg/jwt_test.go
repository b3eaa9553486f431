package pkg

import "testing"

func TestGenerateAndParseAccess(t *testing.T) {
	pair, err := GeneratePair(42)
	if err != nil {
		t.Fatalf("GeneratePair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("empty token in pair")
	}

	claims, err := ParseAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
}

func TestParseAccessRejectsGarbage(t *testing.T) {
	if _, err := ParseAccess("not-a-token"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestParseAccessRejectsRefreshToken(t *testing.T) {
	pair, err := GeneratePair(1)
	if err != nil {
		t.Fatalf("GeneratePair: %v", err)
	}
	// refresh 用的是另一把密钥，不能当 access 用
	if _, err = ParseAccess(pair.RefreshToken); err == nil {
		t.Error("refresh token must not parse as access token")
	}
}

func TestRefreshPair(t *testing.T) {
	pair, err := GeneratePair(7)
	if err != nil {
		t.Fatalf("GeneratePair: %v", err)
	}
	next, err := RefreshPair(pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshPair: %v", err)
	}
	claims, err := ParseAccess(next.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccess: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, want 7", claims.UserID)
	}
}

func TestRefreshPairRejectsAccessToken(t *testing.T) {
	pair, err := GeneratePair(7)
	if err != nil {
		t.Fatalf("GeneratePair: %v", err)
	}
	if _, err = RefreshPair(pair.AccessToken); err == nil {
		t.Error("access token must not refresh")
	}
}
