package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectDescription(t *testing.T) {
	tests := []struct {
		name       string
		paragraphs []string
		want       string
	}{
		{
			name:       "paragraph after heading marker",
			paragraphs: []string{"Title", "KAVRAMSAL TANIM", "Target description", "Extra"},
			want:       "Target description",
		},
		{
			name:       "marker matched case-insensitively inside a longer paragraph",
			paragraphs: []string{"Title", "Intro", "Intro 2", "1. Kavramsal tanim", "Defined here"},
			want:       "Defined here",
		},
		{
			name:       "first marker wins",
			paragraphs: []string{"Title", "KAVRAMSAL TANIM", "First", "KAVRAMSAL TANIM", "Second"},
			want:       "First",
		},
		{
			name:       "marker as last paragraph falls back to third",
			paragraphs: []string{"Title", "Second", "Third", "KAVRAMSAL TANIM"},
			want:       "Third",
		},
		{
			name:       "no marker falls back to third",
			paragraphs: []string{"Title", "Second", "Third", "Fourth"},
			want:       "Third",
		},
		{
			name:       "no marker, two paragraphs",
			paragraphs: []string{"Title", "Second"},
			want:       "Second",
		},
		{
			name:       "only title",
			paragraphs: []string{"Title"},
			want:       "",
		},
		{
			name: "empty document",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectDescription(tt.paragraphs, HeadingMarker))
		})
	}
}

func TestSelectDescriptionTurkishDotlessI(t *testing.T) {
	paragraphs := []string{"Başlık", "Kavramsal Tanım", "Açıklama"}
	assert.Equal(t, "Açıklama", SelectDescription(paragraphs, HeadingMarker))
}
