package gate

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("1234")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}
	if !Verify("1234", hash) {
		t.Fatal("correct pin rejected")
	}
	if Verify("4321", hash) {
		t.Fatal("wrong pin accepted")
	}
	if Verify("", hash) {
		t.Fatal("empty attempt accepted")
	}
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("1234")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Hash("1234")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two hashes of the same pin must differ")
	}
}

func TestHashEmptyPIN(t *testing.T) {
	if _, err := Hash(""); !errors.Is(err, ErrInvalidPIN) {
		t.Fatalf("err = %v, want ErrInvalidPIN", err)
	}
}

func TestVerifyLegacySHA256(t *testing.T) {
	// sha256("1234"), as written by the v1 app.
	legacy := "03ac674216f3e15c761ee1a5e255f067953623c8b388b4459e13f978d7c846f4"
	if !Verify("1234", legacy) {
		t.Fatal("legacy hash rejected")
	}
	if Verify("4321", legacy) {
		t.Fatal("wrong pin accepted against legacy hash")
	}
}

func TestVerifyMalformedStored(t *testing.T) {
	for _, stored := range []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=3,p=2$badsalt",
		"$argon2id$v=0$m=65536,t=3,p=2$AAAA$AAAA",
	} {
		if Verify("1234", stored) {
			t.Fatalf("malformed stored value %q verified", stored)
		}
	}
}

func TestGateAttempts(t *testing.T) {
	hash, err := Hash("1234")
	if err != nil {
		t.Fatal(err)
	}

	g := New(3)
	for i := 0; i < 2; i++ {
		ok, err := g.Verify("0000", hash)
		if ok || err != nil {
			t.Fatalf("attempt %d: ok=%v err=%v", i+1, ok, err)
		}
	}
	// Third wrong attempt exhausts the budget.
	if _, err := g.Verify("0000", hash); !errors.Is(err, ErrAuthExhausted) {
		t.Fatalf("err = %v, want ErrAuthExhausted", err)
	}
	// And so does every call after it, even with the right pin.
	if _, err := g.Verify("1234", hash); !errors.Is(err, ErrAuthExhausted) {
		t.Fatalf("post-exhaustion err = %v, want ErrAuthExhausted", err)
	}

	g.Reset()
	if ok, err := g.Verify("1234", hash); !ok || err != nil {
		t.Fatalf("after reset: ok=%v err=%v", ok, err)
	}
}

func TestGateSuccessRestoresBudget(t *testing.T) {
	hash, err := Hash("1234")
	if err != nil {
		t.Fatal(err)
	}

	g := New(3)
	if _, err := g.Verify("0000", hash); err != nil {
		t.Fatal(err)
	}
	if ok, err := g.Verify("1234", hash); !ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if g.Remaining() != 3 {
		t.Fatalf("remaining = %d, want full budget", g.Remaining())
	}
}
