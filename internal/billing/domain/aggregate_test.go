package domain

import (
	"errors"
	"testing"
)

func activityLine(childQty, adultQty int64, childPrice, adultPrice, vat string) LineItem {
	item, err := Recalculate(LineItem{Kind: ItemKindActivity, Activity: &ActivityItem{
		ItemName:      "Activity",
		ChildQty:      childQty,
		AdultQty:      adultQty,
		ChildPrice:    d(childPrice),
		AdultPrice:    d(adultPrice),
		VATPercentage: d(vat),
	}})
	if err != nil {
		panic(err)
	}
	return item
}

func TestAggregateEmpty(t *testing.T) {
	totals, err := Aggregate(nil, InvoiceTypeActivities)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if !totals.Subtotal.IsZero() || !totals.Tax.IsZero() || !totals.Total.IsZero() {
		t.Fatalf("empty aggregate = %+v, want zeros", totals)
	}
}

func TestAggregateActivityInvoice(t *testing.T) {
	items := []LineItem{
		activityLine(2, 1, "50", "80", "5"),
		activityLine(0, 4, "0", "120", "5"),
	}

	totals, err := Aggregate(items, InvoiceTypeActivities)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	// 180 + 480 pre-tax, 5% vat on each line.
	if !totals.Subtotal.Equal(d("660")) {
		t.Fatalf("subtotal = %s, want 660", totals.Subtotal)
	}
	if !totals.Tax.Equal(d("33")) {
		t.Fatalf("tax = %s, want 33", totals.Tax)
	}
	if !totals.Total.Equal(d("693")) {
		t.Fatalf("total = %s, want 693", totals.Total)
	}
	if !totals.Total.Equal(totals.Subtotal.Add(totals.Tax)) {
		t.Fatalf("total %s != subtotal %s + tax %s", totals.Total, totals.Subtotal, totals.Tax)
	}
}

func TestAggregateFlightInvoiceCarriesNoTax(t *testing.T) {
	flight, err := Recalculate(LineItem{Kind: ItemKindFlight, Flight: &FlightItem{
		GuestName: "Omar",
		BuyPrice:  d("300"),
		SellPrice: d("450"),
	}})
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}

	totals, err := Aggregate([]LineItem{flight}, InvoiceTypeFlights)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if !totals.Tax.IsZero() {
		t.Fatalf("flight invoice tax = %s, want 0", totals.Tax)
	}
	if !totals.Total.Equal(d("450")) {
		t.Fatalf("total = %s, want 450", totals.Total)
	}
	if !totals.Subtotal.Equal(d("450")) {
		t.Fatalf("subtotal = %s, want 450", totals.Subtotal)
	}
}

func TestAggregateRejectsMixedKinds(t *testing.T) {
	hotel, err := Recalculate(LineItem{Kind: ItemKindHotel, Hotel: &HotelItem{
		HotelName:     "Fairmont",
		CheckInDate:   date("2024-03-01"),
		CheckOutDate:  date("2024-03-04"),
		Guests:        2,
		PricePerNight: d("200"),
		VATPercentage: d("5"),
	}})
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}

	items := []LineItem{activityLine(2, 1, "50", "80", "5"), hotel}
	if _, err := Aggregate(items, InvoiceTypeActivities); !errors.Is(err, ErrItemKindMismatch) {
		t.Fatalf("expected kind mismatch, got %v", err)
	}
}

func TestAggregateRejectsUnknownInvoiceType(t *testing.T) {
	if _, err := Aggregate(nil, InvoiceType("cruise")); !errors.Is(err, ErrInvalidInvoiceType) {
		t.Fatalf("expected invalid invoice type, got %v", err)
	}
}

func TestAggregateAdditivity(t *testing.T) {
	items := []LineItem{
		activityLine(2, 1, "50", "80", "5"),
		activityLine(1, 2, "30", "60", "5"),
		activityLine(0, 3, "0", "99.99", "5"),
		activityLine(4, 0, "25.25", "0", "5"),
	}

	whole, err := Aggregate(items, InvoiceTypeActivities)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	for k := 0; k <= len(items); k++ {
		head, err := Aggregate(items[:k], InvoiceTypeActivities)
		if err != nil {
			t.Fatalf("aggregate head: %v", err)
		}
		tail, err := Aggregate(items[k:], InvoiceTypeActivities)
		if err != nil {
			t.Fatalf("aggregate tail: %v", err)
		}
		combined := head.Add(tail)
		if !combined.Subtotal.Equal(whole.Subtotal) ||
			!combined.Tax.Equal(whole.Tax) ||
			!combined.Total.Equal(whole.Total) {
			t.Fatalf("split at %d: %+v != %+v", k, combined, whole)
		}
	}
}

func TestRecalculateAndAggregateRefreshesStaleTotals(t *testing.T) {
	stale := activityLine(2, 1, "50", "80", "5")
	// Simulate a field edit without recomputation.
	stale.Activity.AdultQty = 3

	items, totals, err := RecalculateAndAggregate([]LineItem{stale}, InvoiceTypeActivities)
	if err != nil {
		t.Fatalf("recalculate and aggregate: %v", err)
	}
	if !items[0].Activity.AdultTotal.Equal(d("240")) {
		t.Fatalf("adult total = %s, want 240", items[0].Activity.AdultTotal)
	}
	if !totals.Total.Equal(d("357")) {
		t.Fatalf("total = %s, want 357", totals.Total)
	}
}

func TestTotalsRound(t *testing.T) {
	totals := Totals{Subtotal: d("10.005"), Tax: d("0.5025"), Total: d("10.5075")}
	rounded := totals.Round()
	if !rounded.Subtotal.Equal(d("10.01")) || !rounded.Tax.Equal(d("0.50")) || !rounded.Total.Equal(d("10.51")) {
		t.Fatalf("rounded = %+v", rounded)
	}
}
