package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(value string) decimal.Decimal {
	out, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return out
}

func date(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestRecalculateActivity(t *testing.T) {
	item := LineItem{Kind: ItemKindActivity, Activity: &ActivityItem{
		ItemName:      "Desert Safari",
		ChildQty:      2,
		AdultQty:      1,
		ChildPrice:    d("50"),
		AdultPrice:    d("80"),
		VATPercentage: d("5"),
	}}

	out, err := Recalculate(item)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}

	a := out.Activity
	if !a.ChildTotal.Equal(d("100")) {
		t.Fatalf("child total = %s, want 100", a.ChildTotal)
	}
	if !a.AdultTotal.Equal(d("80")) {
		t.Fatalf("adult total = %s, want 80", a.AdultTotal)
	}
	if !a.VATAmount.Equal(d("9")) {
		t.Fatalf("vat amount = %s, want 9", a.VATAmount)
	}
	if !a.Total.Equal(d("189")) {
		t.Fatalf("total = %s, want 189", a.Total)
	}
}

func TestRecalculateHotel(t *testing.T) {
	item := LineItem{Kind: ItemKindHotel, Hotel: &HotelItem{
		HotelName:     "Atlantis The Palm",
		CheckInDate:   date("2024-03-01"),
		CheckOutDate:  date("2024-03-04"),
		Guests:        2,
		PricePerNight: d("200"),
		VATPercentage: d("5"),
	}}

	out, err := Recalculate(item)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}

	h := out.Hotel
	if h.Nights != 3 {
		t.Fatalf("nights = %d, want 3", h.Nights)
	}
	if !h.VATAmount.Equal(d("30")) {
		t.Fatalf("vat amount = %s, want 30", h.VATAmount)
	}
	if !h.Total.Equal(d("630")) {
		t.Fatalf("total = %s, want 630", h.Total)
	}
}

func TestRecalculateHotelReversedDates(t *testing.T) {
	item := LineItem{Kind: ItemKindHotel, Hotel: &HotelItem{
		HotelName:     "Address Downtown",
		CheckInDate:   date("2024-03-04"),
		CheckOutDate:  date("2024-03-01"),
		Guests:        1,
		PricePerNight: d("350"),
		VATPercentage: d("5"),
	}}

	out, err := Recalculate(item)
	if err != nil {
		t.Fatalf("reversed dates must not fail calculation: %v", err)
	}
	if out.Hotel.Nights != 0 {
		t.Fatalf("nights = %d, want 0", out.Hotel.Nights)
	}
	if !out.Hotel.Total.IsZero() {
		t.Fatalf("total = %s, want 0", out.Hotel.Total)
	}
}

func TestRecalculateFlightIgnoresBuyPrice(t *testing.T) {
	item := LineItem{Kind: ItemKindFlight, Flight: &FlightItem{
		FlightType: FlightTypeOneWay,
		GuestName:  "Sara Khan",
		BuyPrice:   d("300"),
		SellPrice:  d("450"),
	}}

	out, err := Recalculate(item)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if !out.Flight.Total.Equal(d("450")) {
		t.Fatalf("total = %s, want sell price 450", out.Flight.Total)
	}
	if !out.VATAmount().IsZero() {
		t.Fatalf("flight lines must not carry vat, got %s", out.VATAmount())
	}
}

func TestRecalculateIdempotent(t *testing.T) {
	item := LineItem{Kind: ItemKindActivity, Activity: &ActivityItem{
		ItemName:      "Dhow Cruise",
		ChildQty:      3,
		AdultQty:      2,
		ChildPrice:    d("45.50"),
		AdultPrice:    d("89.99"),
		VATPercentage: d("5"),
	}}

	once, err := Recalculate(item)
	if err != nil {
		t.Fatalf("first recalculate: %v", err)
	}
	twice, err := Recalculate(once)
	if err != nil {
		t.Fatalf("second recalculate: %v", err)
	}

	if !once.Activity.Total.Equal(twice.Activity.Total) ||
		!once.Activity.VATAmount.Equal(twice.Activity.VATAmount) ||
		!once.Activity.ChildTotal.Equal(twice.Activity.ChildTotal) ||
		!once.Activity.AdultTotal.Equal(twice.Activity.AdultTotal) {
		t.Fatalf("recalculation is not idempotent: %+v vs %+v", once.Activity, twice.Activity)
	}
}

func TestRecalculateRejectsNegativeInputs(t *testing.T) {
	cases := []struct {
		name string
		item LineItem
		want error
	}{
		{
			name: "negative child qty",
			item: LineItem{Kind: ItemKindActivity, Activity: &ActivityItem{ChildQty: -1}},
			want: ErrNegativeQuantity,
		},
		{
			name: "negative adult price",
			item: LineItem{Kind: ItemKindActivity, Activity: &ActivityItem{AdultPrice: d("-10")}},
			want: ErrNegativePrice,
		},
		{
			name: "negative vat",
			item: LineItem{Kind: ItemKindHotel, Hotel: &HotelItem{VATPercentage: d("-5")}},
			want: ErrNegativeVATRate,
		},
		{
			name: "negative sell price",
			item: LineItem{Kind: ItemKindFlight, Flight: &FlightItem{SellPrice: d("-1")}},
			want: ErrNegativePrice,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Recalculate(tc.item)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRecalculateMissingVariant(t *testing.T) {
	_, err := Recalculate(LineItem{Kind: ItemKindHotel})
	if !errors.Is(err, ErrInvalidItemKind) {
		t.Fatalf("expected invalid item kind, got %v", err)
	}
	_, err = Recalculate(LineItem{Kind: "bus"})
	if !errors.Is(err, ErrInvalidItemKind) {
		t.Fatalf("expected invalid item kind, got %v", err)
	}
}

func TestStayNightsPartialDayRoundsUp(t *testing.T) {
	checkIn := time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	if got := StayNights(&checkIn, &checkOut); got != 3 {
		t.Fatalf("nights = %d, want 3", got)
	}
}

func TestStayNightsMissingDates(t *testing.T) {
	checkIn := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := StayNights(nil, nil); got != 0 {
		t.Fatalf("nights = %d, want 0", got)
	}
	if got := StayNights(&checkIn, nil); got != 0 {
		t.Fatalf("nights = %d, want 0", got)
	}
}

func TestValidateItemReversedStay(t *testing.T) {
	item := LineItem{Kind: ItemKindHotel, Hotel: &HotelItem{
		HotelName:     "Jumeirah Beach Hotel",
		CheckInDate:   date("2024-05-10"),
		CheckOutDate:  date("2024-05-08"),
		Guests:        2,
		PricePerNight: d("500"),
	}}
	if err := ValidateItem(item); !errors.Is(err, ErrInvalidStayRange) {
		t.Fatalf("expected invalid stay range, got %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	checkIn := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	item := LineItem{Kind: ItemKindHotel, Hotel: &HotelItem{
		HotelName:    "Rixos Premium",
		CheckInDate:  &checkIn,
		CheckOutDate: &checkOut,
	}}

	clone := item.Clone()
	clone.Hotel.HotelName = "changed"
	*clone.Hotel.CheckInDate = checkIn.AddDate(0, 1, 0)

	if item.Hotel.HotelName != "Rixos Premium" {
		t.Fatalf("clone shares hotel struct with source")
	}
	if !item.Hotel.CheckInDate.Equal(checkIn) {
		t.Fatalf("clone shares date pointer with source")
	}
}
