package annotation

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yumyai/geneloc/pkg/db"
	"github.com/yumyai/geneloc/pkg/model"
	"go.uber.org/zap"
)

const (
	Version          = "0.1.0"
	martServicePath  = "/biomart/martservice"
	completionStamp  = "[success]"
	defaultTimeout   = 60 * time.Second
	maxErrorBodySize = 512
)

// Attributes requested after the species' symbol attribute.
var locationAttributes = []string{"chromosome_name", "start_position", "end_position", "strand"}

// MartError is a failed BioMart request: a non-2xx answer, a "Query ERROR"
// body or a truncated transfer.
type MartError struct {
	StatusCode int
	Message    string
}

func (e *MartError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("biomart: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("biomart: %s", e.Message)
}

// BioMartClient queries the Ensembl BioMart martservice.
type BioMartClient struct {
	host       string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     *zap.Logger
}

// NewBioMartClient builds a client. Without WithHost the profile's MartHost
// decides which Ensembl release answers.
func NewBioMartClient(opts ...Option) *BioMartClient {
	c := &BioMartClient{
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		userAgent:  fmt.Sprintf("geneloc/%s", Version),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *BioMartClient) Lookup(ctx context.Context, symbols []string, profile model.SpeciesProfile) (model.LocationTable, error) {
	query, err := BuildQuery(profile, symbols)
	if err != nil {
		return nil, err
	}

	endpoint := c.endpoint(profile)
	c.logger.Debug("Querying BioMart",
		zap.String("endpoint", endpoint),
		zap.String("dataset", profile.Dataset),
		zap.Int("symbols", len(symbols)))

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	form := url.Values{"query": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build biomart request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("biomart request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read biomart response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &MartError{StatusCode: resp.StatusCode, Message: truncate(string(body))}
	}

	table, err := parseMartResponse(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("BioMart answered",
		zap.Int("rows", len(table)),
		zap.Duration("duration", time.Since(start)))
	return table, nil
}

func (c *BioMartClient) endpoint(profile model.SpeciesProfile) string {
	host := c.host
	if host == "" {
		host = profile.MartHost
	}
	return strings.TrimSuffix(host, "/") + martServicePath
}

func parseMartResponse(body []byte) (model.LocationTable, error) {
	text := strings.TrimRight(string(body), "\r\n")
	if strings.Contains(text, "Query ERROR") || strings.HasPrefix(text, "ERROR") {
		return nil, &MartError{Message: truncate(text)}
	}

	if !strings.HasSuffix(text, completionStamp) {
		return nil, &MartError{Message: "incomplete response, completion stamp missing"}
	}
	text = strings.TrimSuffix(text, completionStamp)

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	table, _, err := db.DecodeLocations(bytes.NewReader([]byte(text)), '\t')
	if err != nil {
		return nil, &MartError{Message: fmt.Sprintf("malformed TSV: %v", err)}
	}
	return table, nil
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxErrorBodySize {
		return s[:maxErrorBodySize] + "..."
	}
	return s
}

type martQuery struct {
	XMLName              xml.Name    `xml:"Query"`
	VirtualSchemaName    string      `xml:"virtualSchemaName,attr"`
	Formatter            string      `xml:"formatter,attr"`
	Header               string      `xml:"header,attr"`
	UniqueRows           string      `xml:"uniqueRows,attr"`
	CompletionStamp      string      `xml:"completionStamp,attr"`
	DatasetConfigVersion string      `xml:"datasetConfigVersion,attr"`
	Dataset              martDataset `xml:"Dataset"`
}

type martDataset struct {
	Name       string          `xml:"name,attr"`
	Interface  string          `xml:"interface,attr"`
	Filters    []martFilter    `xml:"Filter"`
	Attributes []martAttribute `xml:"Attribute"`
}

type martFilter struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type martAttribute struct {
	Name string `xml:"name,attr"`
}

// BuildQuery renders the BioMart XML query selecting symbol, chromosome,
// start, end and strand, filtered on the profile's symbol attribute.
func BuildQuery(profile model.SpeciesProfile, symbols []string) (string, error) {
	if len(symbols) == 0 {
		return "", model.ErrNoGenes
	}

	attrs := []martAttribute{{Name: profile.SymbolAttribute}}
	for _, a := range locationAttributes {
		attrs = append(attrs, martAttribute{Name: a})
	}

	q := martQuery{
		VirtualSchemaName:    "default",
		Formatter:            "TSV",
		Header:               "1",
		UniqueRows:           "1",
		CompletionStamp:      "1",
		DatasetConfigVersion: "0.6",
		Dataset: martDataset{
			Name:       profile.Dataset,
			Interface:  "default",
			Filters:    []martFilter{{Name: profile.SymbolAttribute, Value: strings.Join(symbols, ",")}},
			Attributes: attrs,
		},
	}

	out, err := xml.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("encode biomart query: %w", err)
	}
	return xml.Header + "<!DOCTYPE Query>" + string(out), nil
}
