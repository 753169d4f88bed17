package common

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSearchConfig_ScalarOrListParams(t *testing.T) {
	var cfg SearchConfig
	payload := `{"ftsQuery": "rain", "ftsStartSel": ["<em>", "<i>"], "ftsMinWords": 5, "ftsMaxWords": [10, 20]}`
	if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(cfg.FTSQuery, Scalars{"rain"}) {
		t.Fatalf("FTSQuery = %v", cfg.FTSQuery)
	}
	if !reflect.DeepEqual(cfg.FTSStartSel, Scalars{"<em>", "<i>"}) {
		t.Fatalf("FTSStartSel = %v", cfg.FTSStartSel)
	}
	if !reflect.DeepEqual(cfg.FTSMinWords, Ints{5}) {
		t.Fatalf("FTSMinWords = %v", cfg.FTSMinWords)
	}
	if !reflect.DeepEqual(cfg.FTSMaxWords, Ints{10, 20}) {
		t.Fatalf("FTSMaxWords = %v", cfg.FTSMaxWords)
	}
}

func TestSearchConfig_ScalarOrListRejectsObjects(t *testing.T) {
	var cfg SearchConfig
	if err := json.Unmarshal([]byte(`{"ftsQuery": {"q": "x"}}`), &cfg); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestSearchConfig_OrderKeys(t *testing.T) {
	cfg := SearchConfig{OrderBy: []string{"name", "^created", "", "^"}}
	got := cfg.OrderKeys()
	want := []OrderKey{
		{Property: "name"},
		{Property: "created", Descending: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("OrderKeys = %v, want %v", got, want)
	}
}

func TestSearchConfig_OrderKeysNil(t *testing.T) {
	var cfg *SearchConfig
	if keys := cfg.OrderKeys(); keys != nil {
		t.Fatalf("expected nil, got %v", keys)
	}
}
