package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, tool, status string) float64 {
	t.Helper()
	var m dto.Metric
	if err := RequestsTotal.WithLabelValues(tool, status).Write(&m); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestRecordRequest(t *testing.T) {
	before := counterValue(t, "fourmeme_get_token_price", "success")

	RecordRequest("fourmeme_get_token_price", 0.05, true)

	after := counterValue(t, "fourmeme_get_token_price", "success")
	if after != before+1 {
		t.Errorf("success counter = %v, want %v", after, before+1)
	}
}

func TestRecordRequest_Error(t *testing.T) {
	before := counterValue(t, "trader_buy_token", "error")

	RecordRequest("trader_buy_token", 1.5, false)

	after := counterValue(t, "trader_buy_token", "error")
	if after != before+1 {
		t.Errorf("error counter = %v, want %v", after, before+1)
	}
}

func TestRecordBitqueryCall(t *testing.T) {
	var m dto.Metric
	RecordBitqueryCall("token_price", 0.2, true)
	if err := BitqueryRequestsTotal.WithLabelValues("token_price", "success").Write(&m); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	if m.GetCounter().GetValue() < 1 {
		t.Error("expected bitquery success counter to be incremented")
	}
}

func TestRecordChainCall(t *testing.T) {
	var m dto.Metric
	RecordChainCall("getAmountsOut", 0.1, false)
	if err := ChainRPCRequestsTotal.WithLabelValues("getAmountsOut", "error").Write(&m); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	if m.GetCounter().GetValue() < 1 {
		t.Error("expected chain RPC error counter to be incremented")
	}
}

func TestRecordSwap(t *testing.T) {
	var m dto.Metric
	RecordSwap("buy", true, 185000)
	if err := SwapsSubmitted.WithLabelValues("buy", "success").Write(&m); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	if m.GetCounter().GetValue() < 1 {
		t.Error("expected buy success counter to be incremented")
	}
}

func TestRecordSwap_FailedWithoutGas(t *testing.T) {
	var m dto.Metric
	RecordSwap("sell", false, 0)
	if err := SwapsSubmitted.WithLabelValues("sell", "failed").Write(&m); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	if m.GetCounter().GetValue() < 1 {
		t.Error("expected sell failed counter to be incremented")
	}
}

func TestRecordCacheAccess(t *testing.T) {
	var hits, misses dto.Metric

	if err := CacheHits.Write(&hits); err != nil {
		t.Fatalf("failed to read hits: %v", err)
	}
	before := hits.GetCounter().GetValue()

	RecordCacheAccess(true)
	RecordCacheAccess(false)

	if err := CacheHits.Write(&hits); err != nil {
		t.Fatalf("failed to read hits: %v", err)
	}
	if hits.GetCounter().GetValue() != before+1 {
		t.Error("expected one additional cache hit")
	}
	if err := CacheMisses.Write(&misses); err != nil {
		t.Fatalf("failed to read misses: %v", err)
	}
	if misses.GetCounter().GetValue() < 1 {
		t.Error("expected at least one cache miss")
	}
}

func TestSetCacheSize(t *testing.T) {
	SetCacheSize(42)

	var m dto.Metric
	if err := CacheSize.Write(&m); err != nil {
		t.Fatalf("failed to read gauge: %v", err)
	}
	if m.GetGauge().GetValue() != 42 {
		t.Errorf("cache size gauge = %v, want 42", m.GetGauge().GetValue())
	}
}
