package services

import (
	"testing"

	"github.com/P3chys/content-tools/internal/config"
	"github.com/P3chys/content-tools/internal/supabasetest"
)

const testKey = "test-service-key"

func newTestClient(t *testing.T) (*SupabaseClient, *supabasetest.Server) {
	t.Helper()
	srv := supabasetest.New(t)
	client := NewSupabaseClient(&config.Config{SupabaseURL: srv.URL + "/", SupabaseKey: testKey})
	return client, srv
}
