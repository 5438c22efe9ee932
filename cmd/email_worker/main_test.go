package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/acara-auth/pkg/mailer"
)

func TestDecodeJob(t *testing.T) {
	job := mailer.EmailJob{From: "no-reply@acara.id", To: "ada@x.io", Subject: "Aktivasi Akun Anda", Text: "t", HTML: "<p>h</p>"}
	body, err := json.Marshal(job)
	require.NoError(t, err)

	msg, err := decodeJob(body)
	require.NoError(t, err)
	assert.Equal(t, job.Message(), msg)
}

func TestDecodeJobRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"to":`},
		{"no recipient", `{"subject":"s","text":"t"}`},
		{"no subject", `{"to":"a@b.c","text":"t"}`},
		{"no body", `{"to":"a@b.c","subject":"s"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeJob([]byte(tt.body))
			assert.Error(t, err)
		})
	}
}
