package domain_test

import (
	"errors"
	"testing"

	"github.com/doeshing/hateshield/internal/domain"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		raw     string
		want    domain.Classification
		wantErr bool
	}{
		{raw: "safe", want: domain.ClassificationSafe},
		{raw: " TOXIC ", want: domain.ClassificationToxic},
		{raw: "Hate Speech", want: domain.ClassificationHateSpeech},
		{raw: "hate-speech", want: domain.ClassificationHateSpeech},
		{raw: "Offensive", want: domain.ClassificationOffensive},
		{raw: "spam", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := domain.ParseClassification(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrUnknownClassification) {
					t.Fatalf("expected ErrUnknownClassification, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassificationLabelAndFlag(t *testing.T) {
	if got := domain.ClassificationHateSpeech.Label(); got != "HATE SPEECH" {
		t.Errorf("Label() = %q", got)
	}
	if domain.ClassificationSafe.IsFlagged() {
		t.Error("safe must not be flagged")
	}
	for _, c := range []domain.Classification{domain.ClassificationOffensive, domain.ClassificationHateSpeech, domain.ClassificationToxic} {
		if !c.IsFlagged() {
			t.Errorf("%s should be flagged", c)
		}
	}
	if domain.Classification("Toxic").Valid() {
		t.Error("non-normalised value should not be valid")
	}
}
