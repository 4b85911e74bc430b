package whisper

import (
	"reflect"
	"testing"
)

func TestLanguageToken(t *testing.T) {
	tests := []struct {
		name         string
		multilingual bool
		vocab        int
		code         string
		want         int
	}{
		{"multilingual en", true, 51865, "en", 50259},
		{"multilingual ru", true, 51865, "ru", 50263},
		{"multilingual name", true, 51865, "russian", 50263},
		{"english-only en", false, 51864, "en", 50258},
		{"english-only ru", false, 51864, "ru", 50262},
		{"v3 cantonese", true, 51866, "yue", 50358},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &fakeModel{name: "m", multilingual: tt.multilingual, vocab: tt.vocab}
			got, err := LanguageToken(model, tt.code)
			if err != nil {
				t.Fatalf("LanguageToken error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("LanguageToken(%q) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

func TestLanguageTokenErrors(t *testing.T) {
	model := newFakeModel(true)
	for _, code := range []string{"", "klingon", "yue"} {
		if _, err := LanguageToken(model, code); err == nil {
			t.Errorf("LanguageToken(%q) expected error", code)
		}
	}
}

func TestLanguageTokens(t *testing.T) {
	got, err := LanguageTokens(newFakeModel(true), []string{"ru", "en"})
	if err != nil {
		t.Fatalf("LanguageTokens error: %v", err)
	}
	if want := []int{50263, 50259}; !reflect.DeepEqual(got, want) {
		t.Fatalf("LanguageTokens = %v, want %v", got, want)
	}
	if _, err := LanguageTokens(newFakeModel(true), []string{"ru", "xx"}); err == nil {
		t.Fatal("expected unknown code to fail")
	}
}
