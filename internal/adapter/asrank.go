package adapter

import (
	"context"
	"fmt"
	"strings"

	"spooffinder/internal/domain"
)

// ASRankClient fetches AS ranking data from the CAIDA ASRank API.
type ASRankClient struct {
	client  *Client
	baseURL string
}

// NewASRankClient creates an ASRankClient rooted at baseURL.
func NewASRankClient(client *Client, baseURL string) *ASRankClient {
	return &ASRankClient{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// Rank returns the rank record for asn. A transport failure or a null/
// missing asn node both yield nil: without a resolvable rank record the ASN
// counts as having no data at all.
func (a *ASRankClient) Rank(ctx context.Context, asn domain.ASN) *domain.RankRecord {
	var payload struct {
		Data struct {
			ASN *struct {
				Name string `json:"asnName"`
				Rank *int64 `json:"rank"`
			} `json:"asn"`
		} `json:"data"`
	}

	endpoint := fmt.Sprintf("%s/v2/restful/asns/%s", a.baseURL, asn)
	if !a.client.FetchJSON(ctx, endpoint, &payload) {
		return nil
	}
	if payload.Data.ASN == nil {
		return nil
	}

	name := payload.Data.ASN.Name
	if name == "" {
		name = "Unknown"
	}
	return &domain.RankRecord{Name: name, Rank: payload.Data.ASN.Rank}
}
