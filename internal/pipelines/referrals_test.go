package pipelines

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeReferrals(t *testing.T, path string, valid int, extra ...string) {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("İsim;T.C. No;Şifre;Ref\n")
	for i := 0; i < valid; i++ {
		fmt.Fprintf(&sb, "Kişi %d;%011d;pw%d;REF%d\n", i, i, i, i)
	}
	for _, line := range extra {
		sb.WriteString(line + "\n")
	}
	writeFile(t, path, sb.String())
}

func TestReferralImporterBatches(t *testing.T) {
	b := newBackend(t)
	writeReferrals(t, b.cfg.ReferralsFile, 1200, "eksik;satır", "Boş;   ;pw;REF", "Boş ref;123;pw;")

	summary, err := NewReferralImporter(b.cfg, b.records).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1203, summary.Rows)
	assert.Equal(t, 1200, summary.Success)
	assert.Equal(t, 3, summary.Errors)

	calls := b.srv.Calls(http.MethodPost, "/rest/v1/tc_referans")
	require.Len(t, calls, 3)

	var sizes []int
	for _, call := range calls {
		var batch []map[string]string
		require.NoError(t, json.Unmarshal(call.Body, &batch))
		sizes = append(sizes, len(batch))
	}
	assert.Equal(t, []int{500, 500, 200}, sizes)

	rows := b.srv.Rows("tc_referans")
	require.Len(t, rows, 1200)
	assert.Equal(t, "00000000000", rows[0]["tc_kimlik"])
	assert.Equal(t, "REF0", rows[0]["referans_kodu"])
}

func TestReferralImporterFailedBatchCountsWholeBatch(t *testing.T) {
	b := newBackend(t)
	writeReferrals(t, b.cfg.ReferralsFile, 1200)

	posts := 0
	b.srv.Fail = func(method, _ string) int {
		if method != http.MethodPost {
			return 0
		}
		posts++
		if posts == 2 {
			return http.StatusConflict
		}
		return 0
	}

	summary, err := NewReferralImporter(b.cfg, b.records).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 700, summary.Success)
	assert.Equal(t, 500, summary.Errors)
	assert.Len(t, b.srv.Rows("tc_referans"), 700)
}

func TestReferralImporterHeaderOnly(t *testing.T) {
	b := newBackend(t)
	writeReferrals(t, b.cfg.ReferralsFile, 0)

	summary, err := NewReferralImporter(b.cfg, b.records).Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Rows)
	assert.Empty(t, b.srv.Calls(http.MethodPost, "/rest/v1/"))
}

func TestReferralImporterMissingFile(t *testing.T) {
	b := newBackend(t)

	_, err := NewReferralImporter(b.cfg, b.records).Run(context.Background())
	assert.ErrorIs(t, err, ErrMissingInput)
}
