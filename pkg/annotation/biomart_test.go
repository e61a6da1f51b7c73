package annotation

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumyai/geneloc/pkg/model"
)

const martTSV = "HGNC symbol\tChromosome/scaffold name\tGene start (bp)\tGene end (bp)\tStrand\n" +
	"BRCA1\t17\t43044295\t43125364\t-1\n" +
	"TP53\t17\t7661779\t7687538\t-1\n" +
	"MYC\t8\t127735434\t127742951\t1\n" +
	"[success]\n"

func humanProfile(t *testing.T) model.SpeciesProfile {
	t.Helper()
	p, err := model.ResolveSpecies("human")
	require.NoError(t, err)
	return p
}

// fakeMart answers every query with body and records the decoded XML query.
func fakeMart(t *testing.T, status int, body string, seen *martQuery) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, martServicePath, r.URL.Path)
		assert.NoError(t, r.ParseForm())

		if seen != nil {
			raw := strings.TrimPrefix(r.PostForm.Get("query"), xml.Header+"<!DOCTYPE Query>")
			assert.NoError(t, xml.Unmarshal([]byte(raw), seen))
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBioMartLookup(t *testing.T) {
	var seen martQuery
	srv := fakeMart(t, http.StatusOK, martTSV, &seen)
	client := NewBioMartClient(WithHost(srv.URL))

	table, err := client.Lookup(context.Background(), []string{"BRCA1", "TP53", "MYC"}, humanProfile(t))
	require.NoError(t, err)

	require.Len(t, table, 3)
	assert.Equal(t, model.GeneLocationRecord{Symbol: "MYC", Chromosome: "8", Start: 127735434, End: 127742951, Strand: 1}, table[2])

	assert.Equal(t, "hsapiens_gene_ensembl", seen.Dataset.Name)
	require.Len(t, seen.Dataset.Filters, 1)
	assert.Equal(t, "hgnc_symbol", seen.Dataset.Filters[0].Name)
	assert.Equal(t, "BRCA1,TP53,MYC", seen.Dataset.Filters[0].Value)

	var attrs []string
	for _, a := range seen.Dataset.Attributes {
		attrs = append(attrs, a.Name)
	}
	assert.Equal(t, []string{"hgnc_symbol", "chromosome_name", "start_position", "end_position", "strand"}, attrs)
}

func TestBioMartLookupNoRows(t *testing.T) {
	srv := fakeMart(t, http.StatusOK, "HGNC symbol\tChromosome/scaffold name\tGene start (bp)\tGene end (bp)\tStrand\n[success]\n", nil)

	table, err := NewBioMartClient(WithHost(srv.URL)).Lookup(context.Background(), []string{"NOTAGENE"}, humanProfile(t))
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestBioMartLookupErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"http status", http.StatusServiceUnavailable, "down for maintenance"},
		{"query error", http.StatusOK, "Query ERROR: caught BioMart::Exception::Usage: Filter hgnc_symbolx NOT FOUND"},
		{"truncated", http.StatusOK, "HGNC symbol\tChromosome\tStart\tEnd\tStrand\nTP53\t17\t7661779"},
		{"malformed", http.StatusOK, "a\tb\tc\td\te\nTP53\t17\tx\t1\t1\n[success]"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := fakeMart(t, tc.status, tc.body, nil)
			_, err := NewBioMartClient(WithHost(srv.URL)).Lookup(context.Background(), []string{"TP53"}, humanProfile(t))

			var martErr *MartError
			require.True(t, errors.As(err, &martErr), "got %v", err)
			if tc.status != http.StatusOK {
				assert.Equal(t, tc.status, martErr.StatusCode)
			}
		})
	}
}

func TestBioMartLookupTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := NewBioMartClient(WithHost(srv.URL), WithTimeout(50*time.Millisecond))
	_, err := client.Lookup(context.Background(), []string{"TP53"}, humanProfile(t))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBioMartEndpointUsesProfileHost(t *testing.T) {
	mouse, err := model.ResolveSpecies("mouse")
	require.NoError(t, err)

	c := NewBioMartClient()
	assert.Equal(t, "https://nov2020.archive.ensembl.org/biomart/martservice", c.endpoint(mouse))

	c = NewBioMartClient(WithHost("http://mirror.local/"))
	assert.Equal(t, "http://mirror.local/biomart/martservice", c.endpoint(mouse))
}

func TestBuildQueryRejectsEmptySymbols(t *testing.T) {
	_, err := BuildQuery(humanProfile(t), nil)
	assert.ErrorIs(t, err, model.ErrNoGenes)
}
