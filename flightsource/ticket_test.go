package flightsource

import (
	"reflect"
	"testing"
)

func TestTicketRoundTrip(t *testing.T) {
	in := TicketData{
		Dataset: "frames",
		SQL:     "SELECT * FROM dataset LIMIT 10",
		Columns: []string{"id", "img"},
	}

	encoded, err := EncodeTicket(in)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeTicket(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(*got, in) {
		t.Errorf("round trip = %+v, want %+v", *got, in)
	}
}

func TestEncodeTicketEmptyDataset(t *testing.T) {
	if _, err := EncodeTicket(TicketData{}); err == nil {
		t.Fatal("want error for empty dataset name")
	}
}

func TestDecodeTicketInvalid(t *testing.T) {
	tests := []struct {
		name   string
		ticket []byte
	}{
		{name: "empty", ticket: nil},
		{name: "garbage", ticket: []byte{0xc1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTicket(tt.ticket); err == nil {
				t.Fatal("want error")
			}
		})
	}
}
