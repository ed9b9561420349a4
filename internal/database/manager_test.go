package database

import "testing"

func TestStatsWithoutPools(t *testing.T) {
	stats := (&DBManager{}).Stats()

	if _, ok := stats["primary"]; ok {
		t.Error("expected no primary entry without a pool")
	}
	replicas, ok := stats["replicas"].([]map[string]interface{})
	if !ok {
		t.Fatalf("expected replicas slice, got %T", stats["replicas"])
	}
	if len(replicas) != 0 {
		t.Errorf("expected no replicas, got %d", len(replicas))
	}
}
