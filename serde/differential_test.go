package serde

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalog struct {
	Title    string             `json:"title"`
	Products []product          `json:"products"`
	Totals   map[string]float64 `json:"totals"`
	Owner    *Person            `json:"owner,omitempty"`
	Flags    []bool             `json:"flags"`
}

type product struct {
	SKU   string   `json:"sku"`
	Price float64  `json:"price"`
	Stock int64    `json:"stock"`
	Tags  []string `json:"tags,omitempty"`
}

func sampleCatalog() catalog {
	return catalog{
		Title: "spring <sale> & \"more\"\t✓",
		Products: []product{
			{SKU: "a-1", Price: 19.99, Stock: 3, Tags: []string{"new"}},
			{SKU: "b-2", Price: 0.1, Stock: -7},
			{SKU: "c-3", Price: 1e21, Stock: 1 << 40},
		},
		Totals: map[string]float64{"eu": 12.5, "us": 1e-9, "apac": 0},
		Owner:  &Person{Name: "Dana", Age: 41, Active: true},
		Flags:  []bool{true, false},
	}
}

func TestDifferential_EncodeMatchesGoJSON(t *testing.T) {
	in := sampleCatalog()

	ours := marshal(t, in)

	var back catalog
	require.NoError(t, json.Unmarshal([]byte(ours), &back))
	assert.Equal(t, in, back)

	// Same document once both sides are normalized to generic values.
	theirs, err := json.Marshal(in)
	require.NoError(t, err)

	var a, b any
	require.NoError(t, json.Unmarshal([]byte(ours), &a))
	require.NoError(t, json.Unmarshal(theirs, &b))
	assert.Equal(t, b, a)
}

func TestDifferential_DecodeMatchesGoJSON(t *testing.T) {
	theirs, err := json.Marshal(sampleCatalog())
	require.NoError(t, err)

	var ours, want catalog
	require.NoError(t, UnmarshalBytes(theirs, &ours))
	require.NoError(t, json.Unmarshal(theirs, &want))
	assert.Equal(t, want, ours)
}
